package eventsocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_WireForm(t *testing.T) {
	cmd, err := API("status")
	require.NoError(t, err)
	assert.Equal(t, "api status\n\n", string(cmd.Bytes()))
}

func TestBGAPI_WireForm(t *testing.T) {
	cmd, err := BGAPI("originate foo bar")
	require.NoError(t, err)
	assert.Equal(t, "bgapi originate foo bar\n\n", string(cmd.Bytes()))
}

func TestEventsJSON_WireForm(t *testing.T) {
	cmd, err := EventsJSON("ALL")
	require.NoError(t, err)
	assert.Equal(t, "event json ALL\n\n", string(cmd.Bytes()))
}

func TestEventsPlain_WireForm(t *testing.T) {
	cmd, err := EventsPlain("CHANNEL_ANSWER CHANNEL_HANGUP")
	require.NoError(t, err)
	assert.Equal(t, "event plain CHANNEL_ANSWER CHANNEL_HANGUP\n\n", string(cmd.Bytes()))
}

func TestFilter_WireForm(t *testing.T) {
	cmd, err := Filter("Unique-ID", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "filter Unique-ID abc-123\n\n", string(cmd.Bytes()))
}

func TestAuth_WireForm(t *testing.T) {
	cmd, err := Auth("ClueCon")
	require.NoError(t, err)
	assert.Equal(t, "auth ClueCon\n\n", string(cmd.Bytes()))
}

func TestLiteralCommands_WireForm(t *testing.T) {
	assert.Equal(t, "connect\n\n", string(Connect().Bytes()))
	assert.Equal(t, "myevents\n\n", string(MyEvents().Bytes()))
	assert.Equal(t, "exit\n\n", string(Exit().Bytes()))
	assert.Equal(t, "linger\n\n", string(Linger().Bytes()))
}

func TestMyEventsFormat_WireForm(t *testing.T) {
	assert.Equal(t, "myevents plain\n\n", string(MyEventsFormat(FormatPlain).Bytes()))
	assert.Equal(t, "myevents json\n\n", string(MyEventsFormat(FormatJSON).Bytes()))
	assert.Equal(t, "myevents xml\n\n", string(MyEventsFormat(FormatXML).Bytes()))
}

func TestExecute_WireForm(t *testing.T) {
	cmd, err := Execute("abc-123", "playback", "/tmp/test.wav")
	require.NoError(t, err)
	s := string(cmd.Bytes())
	assert.Contains(t, s, "sendmsg abc-123\n")
	assert.Contains(t, s, "call-command: execute\n")
	assert.Contains(t, s, "execute-app-name: playback\n")
	assert.Contains(t, s, "execute-app-arg: /tmp/test.wav\n")
	assert.True(t, len(s) >= 2 && s[len(s)-2:] == "\n\n")
}

func TestExecute_EmptyUUID(t *testing.T) {
	cmd, err := Execute("", "answer", "")
	require.NoError(t, err)
	assert.Contains(t, string(cmd.Bytes()), "sendmsg\n")
}

func TestCommand_RejectsEmbeddedNewline(t *testing.T) {
	_, err := API("status\r\nsome-injected: header")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestCommand_RejectsEmbeddedNewlineInExecuteArg(t *testing.T) {
	_, err := Execute("abc-123", "playback", "/tmp/test.wav\nevil: true")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestCommand_EmptySendMsgValuesOmitted(t *testing.T) {
	cmd, err := SendMsg("abc-123", map[string]string{
		"call-command": "hangup",
		"hangup-cause": "",
	})
	require.NoError(t, err)
	s := string(cmd.Bytes())
	assert.Contains(t, s, "call-command: hangup\n")
	assert.NotContains(t, s, "hangup-cause")
}
