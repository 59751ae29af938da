package eventsocket

import (
	"bufio"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshake_CapturesCallContext(t *testing.T) {
	clientConn, peerConn := net.Pipe()
	br := bufio.NewReader(peerConn)

	go func() {
		line, _ := br.ReadString('\n')
		if strings.TrimRight(line, "\r\n") != "connect" {
			return
		}
		br.ReadString('\n') // blank line terminator
		peerConn.Write([]byte("Content-Type: command/reply\nUnique-ID: abc-123\nChannel-State: CS_EXECUTE\n\n"))
	}()

	c, info, err := Handshake(clientConn, Config{})
	require.NoError(t, err)
	defer c.Close()

	id, ok := info.Header("Unique-ID")
	assert.True(t, ok)
	assert.Equal(t, "abc-123", id)
	assert.Same(t, info, c.Info())
}

func TestHandshake_SubscribesMyEvents(t *testing.T) {
	clientConn, peerConn := net.Pipe()
	br := bufio.NewReader(peerConn)

	readLine := func() string {
		line, _ := br.ReadString('\n')
		return strings.TrimRight(line, "\r\n")
	}
	consumeBlank := func() { br.ReadString('\n') }

	go func() {
		if readLine() != "connect" {
			return
		}
		consumeBlank()
		peerConn.Write([]byte("Content-Type: command/reply\nUnique-ID: abc-123\n\n"))

		if readLine() != "myevents plain" {
			return
		}
		consumeBlank()
		peerConn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK\n\n"))
	}()

	c, _, err := Handshake(clientConn, Config{SubscribeMyEvents: true})
	require.NoError(t, err)
	defer c.Close()
}

func TestHandshake_MyEventsUsesConfiguredFormat(t *testing.T) {
	clientConn, peerConn := net.Pipe()
	br := bufio.NewReader(peerConn)

	readLine := func() string {
		line, _ := br.ReadString('\n')
		return strings.TrimRight(line, "\r\n")
	}
	consumeBlank := func() { br.ReadString('\n') }

	var gotMyEvents string
	go func() {
		if readLine() != "connect" {
			return
		}
		consumeBlank()
		peerConn.Write([]byte("Content-Type: command/reply\nUnique-ID: abc-123\n\n"))

		gotMyEvents = readLine()
		consumeBlank()
		peerConn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK\n\n"))
	}()

	c, _, err := Handshake(clientConn, Config{SubscribeMyEvents: true, EventFormat: FormatJSON})
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "myevents json", gotMyEvents)
}

func TestHandshake_MissingUniqueID(t *testing.T) {
	clientConn, peerConn := net.Pipe()
	br := bufio.NewReader(peerConn)

	go func() {
		line, _ := br.ReadString('\n')
		if strings.TrimRight(line, "\r\n") != "connect" {
			return
		}
		br.ReadString('\n')
		peerConn.Write([]byte("Content-Type: command/reply\nChannel-State: CS_EXECUTE\n\n"))
	}()

	_, _, err := Handshake(clientConn, Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandshake)
}

func TestCallContext_UniqueID(t *testing.T) {
	cc := &CallContext{raw: rawWith(map[string]string{"Unique-ID": "550e8400-e29b-41d4-a716-446655440000"}, "")}
	id, err := cc.UniqueID()
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
}

func TestCallContext_UniqueID_Invalid(t *testing.T) {
	cc := &CallContext{raw: rawWith(map[string]string{"Unique-ID": "not-a-uuid"}, "")}
	_, err := cc.UniqueID()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
}
