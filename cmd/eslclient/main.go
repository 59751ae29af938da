// Copyright 2013 Alexandre Fiori
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Event Socket client that connects to FreeSWITCH to originate a new call,
// demonstrating Inbound Dial, event subscription, and caller-side bgapi
// job-UUID correlation (a library Open Question SPEC_FULL.md resolves as
// caller-side, not the library's, responsibility).
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ash30/eslrs/eventsocket"
)

const dest = "sofia/internal/1000%127.0.0.1"
const dialplan = "&socket(localhost:9090 async)"

func main() {
	ctx := context.Background()
	c, err := eventsocket.Dial(ctx, "localhost:8021", "ClueCon")
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	cmd, err := eventsocket.EventsJSON("ALL")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := c.SendRecv(ctx, cmd); err != nil {
		log.Fatal(err)
	}

	bgCmd, err := eventsocket.BGAPI(fmt.Sprintf("originate %s %s", dest, dialplan))
	if err != nil {
		log.Fatal(err)
	}
	reply, err := c.SendRecv(ctx, bgCmd)
	if err != nil {
		log.Fatal(err)
	}
	jobUUID, _ := reply.Header("Job-UUID")
	fmt.Println("originate job:", jobUUID)

	for {
		ev, err := c.Recv(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("\nNew event")
		fmt.Println(ev)

		// Subscribed via EventsJSON, so the body is text/event-json: the
		// per-event fields live in the JSON payload, not the top-level
		// framing headers Header() reads.
		body, err := ev.Cast().JSON()
		if err != nil {
			continue
		}
		if body.Get("Event-Name").String() == "BACKGROUND_JOB" {
			if body.Get("Job-UUID").String() == jobUUID {
				fmt.Println("matched background job result for", jobUUID)
			}
		}
		if body.Get("Answer-State").String() == "hangup" {
			break
		}
	}
}
