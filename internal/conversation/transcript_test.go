package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscript(t *testing.T) {
	tr := NewTranscript("Hello!")

	require.Equal(t, 1, tr.Len())
	msg := tr.Last()
	assert.Equal(t, FromBot, msg.Origin)
	assert.Equal(t, "Hello!", msg.Text)
	assert.False(t, msg.At.IsZero())
}

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript("greeting")

	tr.AppendUser("hi")
	tr.AppendBot("Hello! How can I help you?")
	tr.AppendUser("weather")

	msgs := tr.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []Origin{FromBot, FromUser, FromBot, FromUser},
		[]Origin{msgs[0].Origin, msgs[1].Origin, msgs[2].Origin, msgs[3].Origin})
	assert.Equal(t, "weather", msgs[3].Text)
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	tr := NewTranscript("greeting")
	tr.AppendUser("hi")

	msgs := tr.Messages()
	msgs[1].Text = "tampered"

	assert.Equal(t, "hi", tr.Messages()[1].Text)
}

func TestTranscript_Reset(t *testing.T) {
	tr := NewTranscript("old greeting")
	tr.AppendUser("a")
	tr.AppendBot("b")

	tr.Reset("new greeting")

	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, FromBot, msgs[0].Origin)
	assert.Equal(t, "new greeting", msgs[0].Text)
}

func TestTranscript_OnAppend(t *testing.T) {
	tr := NewTranscript("greeting")

	var seen []Message
	tr.OnAppend(func(m Message) {
		seen = append(seen, m)
		// Listeners may read the transcript without deadlocking.
		_ = tr.Len()
	})

	tr.AppendUser("hi")
	tr.AppendBot("hello")
	tr.Reset("greeting again")

	require.Len(t, seen, 3)
	assert.Equal(t, "hi", seen[0].Text)
	assert.Equal(t, "hello", seen[1].Text)
	assert.Equal(t, "greeting again", seen[2].Text)
}
