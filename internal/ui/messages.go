package ui

import (
	"sync"
	"time"
)

// Message is a status line message
type Message struct {
	Text      string
	Error     bool
	Timestamp time.Time
}

// MessageLog keeps the last status messages. The newest one is shown in the
// status line until it expires.
type MessageLog struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	seq      int
}

// NewMessageLog creates a log of at most maxSize messages, each shown for ttl
func NewMessageLog(maxSize int, ttl time.Duration) *MessageLog {
	return &MessageLog{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (ml *MessageLog) add(text string, isErr bool) {
	if text == "" {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.seq++
	ml.messages = append(ml.messages, Message{Text: text, Error: isErr, Timestamp: ml.now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Info records an informational message
func (ml *MessageLog) Info(text string) {
	ml.add(text, false)
}

// Error records an error message
func (ml *MessageLog) Error(text string) {
	ml.add(text, true)
}

// Current returns the newest message if it has not expired
func (ml *MessageLog) Current() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	last := ml.messages[len(ml.messages)-1]
	if ml.ttl > 0 && ml.now().Sub(last.Timestamp) > ml.ttl {
		return Message{}, false
	}
	return last, true
}

// Last returns the newest message regardless of age
func (ml *MessageLog) Last() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	return ml.messages[len(ml.messages)-1], true
}

// Seq returns the number of messages recorded so far, including dropped ones
func (ml *MessageLog) Seq() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return ml.seq
}

// All returns a copy of the messages, oldest first
func (ml *MessageLog) All() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]Message, len(ml.messages))
	copy(result, ml.messages)
	return result
}

// Clear drops all messages
func (ml *MessageLog) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = ml.messages[:0]
}
