package eventsocket

import (
	"bufio"
	"net"
	"strings"
	"testing"
)

// testPeer drives the far end of a net.Pipe as a scripted FreeSWITCH
// stand-in: it reads command lines the Connection under test writes, and
// writes raw framed messages back.
type testPeer struct {
	t    *testing.T
	conn net.Conn
	br   *bufio.Reader
}

// newTestConnection wires a Connection directly to a testPeer over
// net.Pipe, bypassing Dial/Handshake so dispatcher behavior can be
// exercised without an auth round-trip. eventBuffer 0 uses the default.
func newTestConnection(t *testing.T, eventBuffer int) (*Connection, *testPeer) {
	t.Helper()
	clientSide, peerSide := net.Pipe()
	c := newConnection(clientSide, eventBuffer, nil)
	c.start()
	t.Cleanup(func() { c.Close() })
	return c, &testPeer{t: t, conn: peerSide, br: bufio.NewReader(peerSide)}
}

// readCommandLine reads one command's header block (no body) and returns
// its joined lines with '\n', stripping the trailing blank-line
// terminator.
func (p *testPeer) readCommandLine() string {
	p.t.Helper()
	var lines []string
	for {
		line, err := p.br.ReadString('\n')
		if err != nil {
			p.t.Fatalf("readCommandLine: %v", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// writeRaw writes s verbatim to the wire.
func (p *testPeer) writeRaw(s string) {
	p.t.Helper()
	if _, err := p.conn.Write([]byte(s)); err != nil {
		p.t.Fatalf("writeRaw: %v", err)
	}
}

func (p *testPeer) close() {
	p.conn.Close()
}
