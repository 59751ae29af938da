// Copyright 2013 Alexandre Fiori
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Server that accepts connections from FreeSWITCH and controls incoming
// calls. The handshake (connect/myevents) is owned by the library; this
// handler receives a ready CallContext.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ash30/eslrs/eventsocket"
)

const audioFile = "/opt/freeswitch/sounds/en/us/callie/misc/8000/sorry.wav"

func main() {
	cfg := eventsocket.Config{
		SubscribeMyEvents: true,
		EventFormat:       eventsocket.FormatPlain,
	}
	if err := eventsocket.ListenAndServe(context.Background(), ":9090", cfg, handler); err != nil {
		log.Fatal(err)
	}
}

func handler(c *eventsocket.Connection, info *eventsocket.CallContext) {
	ctx := context.Background()
	uuid, _ := info.Header("Unique-ID")
	fmt.Println("new call:", c.RemoteAddr(), "uuid:", uuid)

	answer, err := eventsocket.Execute("", "answer", "")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := c.SendRecv(ctx, answer); err != nil {
		log.Fatal(err)
	}

	playback, err := eventsocket.ExecuteLocked("", "playback", audioFile)
	if err != nil {
		log.Fatal(err)
	}
	reply, err := c.SendRecv(ctx, playback)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply)

	for {
		ev, err := c.Recv(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("\nNew event")
		fmt.Println(ev)
		// Subscribed in plain format: the per-event fields live in the
		// nested header block of the body, not the top-level framing
		// headers Event.Header reads.
		p, err := ev.Cast().Plain()
		if err != nil {
			continue
		}
		app, _ := p.Header("Application")
		resp, _ := p.Header("Application-Response")
		if app == "playback" && resp == "FILE PLAYED" {
			exitCmd := eventsocket.Exit()
			c.SendRecv(ctx, exitCmd)
			return
		}
	}
}
