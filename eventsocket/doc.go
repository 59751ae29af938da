// Copyright 2013 Alexandre Fiori
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package eventsocket implements the FreeSWITCH Event Socket Layer (ESL),
// a line-oriented text protocol over TCP used to control a soft-switch
// and receive telephony events.
//
// It supports both inbound and outbound event socket connections: acting
// as a client that dials FreeSWITCH and authenticates (Dial), or as a
// server that FreeSWITCH dials per call and that drives call control for
// that leg (ListenAndServe/Handshake).
//
// Reference:
// https://freeswitch.org/confluence/display/FREESWITCH/Event+Socket+Library
// https://freeswitch.org/confluence/display/FREESWITCH/Event+Socket+Outbound
package eventsocket
