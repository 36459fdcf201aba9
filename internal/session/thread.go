package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/curiobooks/curio/internal/curation"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation. Assistant entries start as
// streaming placeholders and are resolved in place once the response or an
// error arrives; messages are never removed within a session.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Books     []curation.Book
	Streaming bool
	Err       string
}

// OverlapPolicy controls what happens when a query is submitted while a
// prior one is still pending. The data model supports racing submissions
// (each resolves against its own placeholder ID); blocking is the default
// because it is what users expect from a single input box.
type OverlapPolicy int

const (
	OverlapBlock OverlapPolicy = iota
	OverlapAllow
)

// ErrBusy is returned by Submit under OverlapBlock while a request is
// still pending.
var ErrBusy = fmt.Errorf("a request is already in flight")

// defaultSummary is shown when the backend returns results without an
// LLM summary.
const defaultSummary = "추천 결과를 찾았어요. 아래 목록을 확인해 주세요."

// Thread is the ordered conversation state. It is safe for concurrent use:
// resolution callbacks run off the UI goroutine.
type Thread struct {
	mu       sync.RWMutex
	policy   OverlapPolicy
	messages []Message
	pending  int
}

// NewThread creates an empty thread with the given overlap policy.
func NewThread(policy OverlapPolicy) *Thread {
	return &Thread{policy: policy}
}

// Submit appends a user message and an assistant placeholder atomically and
// returns the placeholder's ID for later resolution. A blank query returns
// curation.ErrBlankQuery; under OverlapBlock a submission while another is
// pending returns ErrBusy.
func (t *Thread) Submit(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", curation.ErrBlankQuery
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.policy == OverlapBlock && t.pending > 0 {
		return "", ErrBusy
	}

	assistantID := uuid.NewString()
	t.messages = append(t.messages,
		Message{ID: uuid.NewString(), Role: RoleUser, Content: query},
		Message{ID: assistantID, Role: RoleAssistant, Streaming: true},
	)
	t.pending++
	return assistantID, nil
}

// Resolve fills the placeholder identified by id with the response summary
// (or a default text when absent) and the returned books, and clears the
// streaming flag. Unknown IDs are ignored: a late response for a message
// that no longer exists must not corrupt newer state.
func (t *Thread) Resolve(id string, resp *curation.Response) {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := t.findLocked(id)
	if msg == nil || !msg.Streaming {
		return
	}
	content := ""
	var books []curation.Book
	if resp != nil {
		content = resp.Content
		books = resp.Results
	}
	if content == "" {
		content = defaultSummary
	}
	msg.Content = content
	msg.Books = books
	msg.Streaming = false
	msg.Err = ""
	t.pending--
}

// Fail marks the placeholder identified by id as failed, leaving its
// content empty.
func (t *Thread) Fail(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := t.findLocked(id)
	if msg == nil || !msg.Streaming {
		return
	}
	msg.Streaming = false
	if err != nil {
		msg.Err = err.Error()
	} else {
		msg.Err = "request failed"
	}
	t.pending--
}

// Messages returns a copy of the conversation in order.
func (t *Thread) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.messages) == 0 {
		return nil
	}
	dup := make([]Message, len(t.messages))
	copy(dup, t.messages)
	return dup
}

// Pending reports how many submissions are awaiting resolution.
func (t *Thread) Pending() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pending
}

func (t *Thread) findLocked(id string) *Message {
	for i := range t.messages {
		if t.messages[i].ID == id {
			return &t.messages[i]
		}
	}
	return nil
}
