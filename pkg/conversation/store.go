package conversation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrEmptyInput is returned by Submit for empty or whitespace-only text.
	ErrEmptyInput = errors.New("conversation: empty input")
	// ErrReplyPending is returned by Submit under PolicyBlock while a reply is outstanding.
	ErrReplyPending = errors.New("conversation: reply pending")
)

// Ticket identifies one scheduled reply.
type Ticket uint64

// Policy decides how Submit behaves while a reply is pending.
type Policy int

const (
	// PolicyBlock rejects submissions until the pending reply arrives.
	PolicyBlock Policy = iota
	// PolicyQueue accepts submissions and schedules one reply per submission.
	PolicyQueue
)

func (p Policy) String() string {
	switch p {
	case PolicyBlock:
		return "block"
	case PolicyQueue:
		return "queue"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return PolicyBlock, nil
	case "queue":
		return PolicyQueue, nil
	default:
		return PolicyBlock, fmt.Errorf("unknown submit policy %q", s)
	}
}

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	Messages []Message
	Pending  bool
	Draft    string
}

// Empty reports whether the conversation has not started yet.
func (s Snapshot) Empty() bool {
	return len(s.Messages) == 0
}

// LastFrom returns the newest message authored by sender.
func (s Snapshot) LastFrom(sender Sender) (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == sender {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// Store owns the messages, the pending flag and the draft input.
type Store struct {
	mu          sync.Mutex
	messages    []Message
	draft       string
	outstanding map[Ticket]string
	nextTicket  Ticket
	policy      Policy
	responder   Responder
	now         func() time.Time

	observers    map[int]func(Snapshot)
	nextObserver int
}

// Option configures a Store.
type Option func(*Store)

// WithPolicy sets the submit policy.
func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithResponder sets the reply source.
func WithResponder(r Responder) Option {
	return func(s *Store) { s.responder = r }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store. The default responder is an empty Canned reply.
func NewStore(opts ...Option) *Store {
	s := &Store{
		outstanding: make(map[Ticket]string),
		responder:   Canned(""),
		now:         time.Now,
		observers:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit appends a user message with text, clears the draft and marks a reply
// as pending. The returned ticket must be passed to ReceiveReply once the
// simulated delay has elapsed.
func (s *Store) Submit(text string) (Ticket, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyInput
	}

	s.mu.Lock()
	if s.policy == PolicyBlock && len(s.outstanding) > 0 {
		s.mu.Unlock()
		return 0, ErrReplyPending
	}
	s.messages = append(s.messages, newMessage(SenderUser, text, s.now()))
	s.draft = ""
	s.nextTicket++
	ticket := s.nextTicket
	s.outstanding[ticket] = text
	snap, observers := s.snapshotLocked(), s.observerList()
	s.mu.Unlock()

	notify(observers, snap)
	return ticket, nil
}

// ReceiveReply appends the chatbot reply for ticket. It returns false and
// changes nothing when the ticket is unknown or was cancelled.
func (s *Store) ReceiveReply(ticket Ticket) (Message, bool) {
	s.mu.Lock()
	prompt, ok := s.outstanding[ticket]
	if !ok {
		s.mu.Unlock()
		return Message{}, false
	}
	delete(s.outstanding, ticket)
	msg := newMessage(SenderChatbot, s.responder.Reply(prompt), s.now())
	s.messages = append(s.messages, msg)
	snap, observers := s.snapshotLocked(), s.observerList()
	s.mu.Unlock()

	notify(observers, snap)
	return msg, true
}

// SetDraftInput replaces the uncommitted input buffer.
func (s *Store) SetDraftInput(text string) {
	s.mu.Lock()
	if s.draft == text {
		s.mu.Unlock()
		return
	}
	s.draft = text
	snap, observers := s.snapshotLocked(), s.observerList()
	s.mu.Unlock()

	notify(observers, snap)
}

// Draft returns the uncommitted input buffer.
func (s *Store) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Pending reports whether a reply is outstanding.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outstanding) > 0
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Cancel voids every outstanding ticket and returns how many were dropped.
func (s *Store) Cancel() int {
	s.mu.Lock()
	dropped := len(s.outstanding)
	if dropped == 0 {
		s.mu.Unlock()
		return 0
	}
	clear(s.outstanding)
	snap, observers := s.snapshotLocked(), s.observerList()
	s.mu.Unlock()

	notify(observers, snap)
	return dropped
}

// SetResponder swaps the reply source for replies received from now on.
func (s *Store) SetResponder(r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = r
}

// SetPolicy changes the submit policy.
func (s *Store) SetPolicy(p Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
}

// Policy returns the submit policy.
func (s *Store) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called after every mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return Snapshot{
		Messages: messages,
		Pending:  len(s.outstanding) > 0,
		Draft:    s.draft,
	}
}

func (s *Store) observerList() []func(Snapshot) {
	if len(s.observers) == 0 {
		return nil
	}
	list := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		list = append(list, fn)
	}
	return list
}

func notify(observers []func(Snapshot), snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
