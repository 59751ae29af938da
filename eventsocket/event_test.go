package eventsocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawWith(headers map[string]string, body string) *RawEvent {
	r := newRawEvent()
	for k, v := range headers {
		r.add(k, v)
	}
	r.Body = []byte(body)
	return r
}

func TestEvent_ContentTypePredicates(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventJSON}, ""))
	assert.True(t, ev.IsJSON())
	assert.False(t, ev.IsPlain())
	assert.False(t, ev.IsXML())
	assert.False(t, ev.IsReply())
}

func TestEvent_IsReply(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeAPIResponse}, "ok"))
	assert.True(t, ev.IsReply())
}

func TestEvent_ReplyOK(t *testing.T) {
	ok := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeCommandReply, "Reply-Text": "+OK accepted"}, ""))
	assert.True(t, ok.ReplyOK())

	bad := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeCommandReply, "Reply-Text": "-ERR invalid"}, ""))
	assert.False(t, bad.ReplyOK())
}

func TestCast_JSON(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventJSON}, `{"Event-Name":"X"}`))
	v, err := ev.Cast().JSON()
	require.NoError(t, err)
	assert.Equal(t, "X", v.Get("Event-Name").String())
}

func TestCast_JSON_Malformed(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventJSON}, `{not json`))
	_, err := ev.Cast().JSON()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedBody)
	// the event itself remains usable raw
	assert.Equal(t, []byte(`{not json`), ev.Bytes())
}

func TestCast_Plain(t *testing.T) {
	body := "Event-Name: CHANNEL_HANGUP\nUnique-ID: abc-123\nVariable_foo: a%20b\n\n"
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventPlain}, body))
	p, err := ev.Cast().Plain()
	require.NoError(t, err)
	name, ok := p.Header("Event-Name")
	assert.True(t, ok)
	assert.Equal(t, "CHANNEL_HANGUP", name)
	decoded, _ := p.Header("Variable_foo")
	assert.Equal(t, "a b", decoded)
}

func TestCast_Plain_FallsBackToOuter(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{
		"Content-Type": ContentTypeEventPlain,
		"Outer-Only":   "yes",
	}, "Event-Name: X\n\n"))
	p, err := ev.Cast().Plain()
	require.NoError(t, err)
	v, ok := p.Header("Outer-Only")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
}

func TestCast_XML(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventXML}, `<event><Event-Name>X</Event-Name></event>`))
	node, err := ev.Cast().XML()
	require.NoError(t, err)
	child := node.Child("Event-Name")
	require.NotNil(t, child)
	assert.Equal(t, "X", child.Content)
}

func TestCast_XML_Malformed(t *testing.T) {
	ev := newEvent(rawWith(map[string]string{"Content-Type": ContentTypeEventXML}, `<not-closed>`))
	_, err := ev.Cast().XML()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedBody)
}
