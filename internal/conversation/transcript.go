// Package conversation holds the chat transcript shown in the panel.
package conversation

import (
	"sync"
	"time"
)

// Origin identifies who produced a turn.
type Origin string

const (
	// FromUser marks a turn typed or tapped by the user.
	FromUser Origin = "user"
	// FromBot marks a reply produced by the resolver.
	FromBot Origin = "bot"
)

// Message is one turn of the transcript. Values are never mutated once appended.
type Message struct {
	Origin Origin    `json:"from"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Transcript is an append-only, insertion-ordered message log.
// Reset is the only operation that discards turns; it leaves a single
// greeting turn behind.
type Transcript struct {
	mu        sync.RWMutex
	messages  []Message
	listeners []func(Message)
	now       func() time.Time
}

// NewTranscript creates a transcript holding only the greeting turn.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{now: time.Now}
	t.messages = []Message{{Origin: FromBot, Text: greeting, At: t.now()}}
	return t
}

// OnAppend registers fn to be called after every append, including the
// greeting written by Reset. Consumers use it to scroll to the newest turn.
func (t *Transcript) OnAppend(fn func(Message)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// AppendUser appends a user turn and returns it.
func (t *Transcript) AppendUser(text string) Message {
	return t.append(FromUser, text)
}

// AppendBot appends a bot turn and returns it.
func (t *Transcript) AppendBot(text string) Message {
	return t.append(FromBot, text)
}

// Reset discards every turn and re-initializes with a single greeting.
func (t *Transcript) Reset(greeting string) {
	msg := Message{Origin: FromBot, Text: greeting, At: t.now()}

	t.mu.Lock()
	t.messages = []Message{msg}
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, msg)
}

// Messages returns a copy of the turns, oldest first.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the newest turn.
func (t *Transcript) Last() Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.messages[len(t.messages)-1]
}

func (t *Transcript) append(origin Origin, text string) Message {
	msg := Message{Origin: origin, Text: text, At: t.now()}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, msg)
	return msg
}

// notify runs outside the lock so listeners may read the transcript.
func notify(listeners []func(Message), msg Message) {
	for _, fn := range listeners {
		fn(msg)
	}
}
