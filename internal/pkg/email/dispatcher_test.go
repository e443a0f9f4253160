package email

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	fail bool
}

func (r *recordingSender) Send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 8, zerolog.Nop())

	d.Enqueue(Message{To: "a@example.com", Subject: "first"})
	d.Enqueue(Message{To: "b@example.com", Subject: "second"})
	d.Close()

	sent := sender.messages()
	assert.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewDispatcher(sender, 4, zerolog.Nop())

	// A failing sender must never panic or surface to the caller
	d.Enqueue(Message{To: "a@example.com", Subject: "doomed"})
	d.Close()

	assert.Empty(t, sender.messages())
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, 4, zerolog.Nop())
	d.Close()
	assert.NotPanics(t, func() { d.Close() })
}
