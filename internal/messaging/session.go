package messaging

import (
	"sort"
	"sync"
	"time"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

// Thread is the ordered message list of the currently open conversation.
type Thread struct {
	Partner  common.RosterEntry `json:"partner"`
	Messages []Message          `json:"messages"`
}

// Session holds the client-side messaging state for one viewer: the derived
// conversation list and the currently open thread. The realtime reconciler
// merges push events into it through Apply; Send folds its result through the
// exact same path, so the two can never diverge in ordering logic.
//
// Push transports deliver on their own goroutines, so the session guards its
// state with a mutex. The send-vs-push race for the sender's own message is
// resolved by dedupe on message id.
type Session struct {
	mu     sync.Mutex
	viewer common.ParticipantRef

	conversations []Conversation
	roster        map[common.ParticipantRef]common.RosterEntry

	// seen tracks message ids already merged, making Apply idempotent under
	// the feed's at-least-once delivery.
	seen map[string]struct{}

	thread        *Thread
	threadVisible bool

	// epoch is the latest-wins guard: a thread history load completed for a
	// stale epoch is discarded instead of overwriting the current selection.
	epoch          uint64
	pendingPartner *common.ParticipantRef

	degraded bool

	now        func() time.Time
	onAutoRead func(partner common.ParticipantRef)
	onChange   func()
}

func NewSession(viewer common.ParticipantRef) *Session {
	return &Session{
		viewer: viewer,
		roster: make(map[common.ParticipantRef]common.RosterEntry),
		seen:   make(map[string]struct{}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Session) Viewer() common.ParticipantRef {
	return s.viewer
}

// SetAutoReadFunc registers the callback invoked when an incoming message is
// read immediately because its thread is open and visible. The façade wires
// this to the store's read-state flush.
func (s *Session) SetAutoReadFunc(fn func(partner common.ParticipantRef)) {
	s.mu.Lock()
	s.onAutoRead = fn
	s.mu.Unlock()
}

// SetOnChange registers a callback invoked after a push event mutates the
// session, so a hosting view can re-render without polling.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Reset replaces the session state from a fresh history fetch. Used for cold
// start and for full resync after a transport drop; it never produces
// duplicate state because the seen set is rebuilt from the history itself.
func (s *Session) Reset(msgs []Message, roster []common.RosterEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = make(map[common.ParticipantRef]common.RosterEntry, len(roster))
	for _, entry := range roster {
		s.roster[entry.Ref()] = entry
	}
	s.conversations = DeriveConversations(s.viewer, msgs, roster)
	s.seen = make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if m.Touches(s.viewer) {
			s.seen[m.ID] = struct{}{}
		}
	}
	s.thread = nil
	s.pendingPartner = nil
	s.epoch++
	s.degraded = false
}

// Conversations returns a snapshot of the conversation list, most recently
// active first.
func (s *Session) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Conversation(nil), s.conversations...)
}

// Thread returns a snapshot of the open thread, or nil when none is open.
func (s *Session) Thread() *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return nil
	}
	return &Thread{
		Partner:  s.thread.Partner,
		Messages: append([]Message(nil), s.thread.Messages...),
	}
}

// StartChat materializes a provisional conversation with a not-yet-messaged
// counterpart. It is superseded by the derived conversation as soon as the
// first message round-trips. No-op if a conversation for the pair exists.
func (s *Session) StartChat(partner common.RosterEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster[partner.Ref()] = partner
	if s.findConversation(common.PairKeyOf(s.viewer, partner.Ref())) != nil {
		return
	}
	s.conversations = append(s.conversations, Conversation{
		Partner:   partner,
		StartedAt: s.now(),
	})
	sortConversations(s.conversations)
}

// BeginOpen records a new thread selection and returns the epoch the
// eventual history load must present to CompleteOpen.
func (s *Session) BeginOpen(partner common.ParticipantRef) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.pendingPartner = &partner
	s.thread = nil
	s.threadVisible = false
	return s.epoch
}

// CompleteOpen installs a loaded thread history. It reports false, changing
// nothing, when the load is stale: the viewer has since selected a different
// partner (or resynced).
func (s *Session) CompleteOpen(epoch uint64, partner common.RosterEntry, msgs []Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.pendingPartner == nil || !s.pendingPartner.Equal(partner.Ref()) {
		return false
	}
	s.pendingPartner = nil
	s.roster[partner.Ref()] = partner

	ordered := dedupeAndSort(msgs)
	s.thread = &Thread{Partner: partner, Messages: ordered}
	s.threadVisible = true
	for _, m := range ordered {
		s.seen[m.ID] = struct{}{}
	}

	if len(ordered) > 0 {
		key := common.PairKeyOf(s.viewer, partner.Ref())
		conv := s.findConversation(key)
		if conv == nil {
			s.conversations = append(s.conversations, Conversation{Partner: partner})
			conv = &s.conversations[len(s.conversations)-1]
		}
		last := ordered[len(ordered)-1]
		if conv.LastMessage == nil || last.After(*conv.LastMessage) {
			conv.LastMessage = &last
			conv.UpdatedAt = last.CreatedAt
		}
		conv.StartedAt = time.Time{}
		sortConversations(s.conversations)
	}
	return true
}

// CloseThread drops the open thread. The conversation list is unaffected.
func (s *Session) CloseThread() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thread = nil
	s.pendingPartner = nil
	s.epoch++
	s.threadVisible = false
}

// SetThreadVisible toggles whether the open thread is on screen, which
// controls auto-read of incoming messages.
func (s *Session) SetThreadVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadVisible = visible
}

// Apply merges one insert event into the session. Events for other pairs are
// discarded; redelivered events are no-ops; out-of-order arrivals land at the
// position dictated by created_at, not at the tail.
func (s *Session) Apply(msg Message) {
	if !msg.Touches(s.viewer) {
		return
	}

	s.mu.Lock()
	if _, dup := s.seen[msg.ID]; dup {
		s.mu.Unlock()
		return
	}
	s.seen[msg.ID] = struct{}{}

	key := msg.Pair()
	autoRead := false
	if s.thread != nil && common.PairKeyOf(s.viewer, s.thread.Partner.Ref()) == key {
		if msg.Unread(s.viewer) && s.threadVisible {
			now := s.now()
			msg.ReadAt = &now
			autoRead = true
		}
		s.insertIntoThread(msg)
	}

	conv := s.findConversation(key)
	if conv == nil {
		counterpart := msg.Counterpart(s.viewer)
		entry, ok := s.roster[counterpart]
		if !ok {
			entry = common.FallbackEntry(counterpart)
		}
		s.conversations = append(s.conversations, Conversation{Partner: entry})
		conv = &s.conversations[len(s.conversations)-1]
	}
	conv.StartedAt = time.Time{}
	if conv.LastMessage == nil || msg.After(*conv.LastMessage) {
		last := msg
		conv.LastMessage = &last
		conv.UpdatedAt = msg.CreatedAt
	}
	if msg.Unread(s.viewer) && !autoRead {
		conv.UnreadCount++
	}
	sortConversations(s.conversations)

	readFn, changeFn := s.onAutoRead, s.onChange
	s.mu.Unlock()

	if autoRead && readFn != nil {
		readFn(msg.Sender)
	}
	if changeFn != nil {
		changeFn()
	}
}

// MarkRead zeroes the unread count for the pair and stamps read_at on open
// thread messages from the counterpart. Safe to call when nothing is unread.
func (s *Session) MarkRead(partner common.ParticipantRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := common.PairKeyOf(s.viewer, partner)
	if conv := s.findConversation(key); conv != nil {
		conv.UnreadCount = 0
	}
	if s.thread != nil && common.PairKeyOf(s.viewer, s.thread.Partner.Ref()) == key {
		now := s.now()
		for i := range s.thread.Messages {
			m := &s.thread.Messages[i]
			if m.Recipient.Equal(s.viewer) && m.ReadAt == nil {
				t := now
				m.ReadAt = &t
			}
		}
	}
}

// SetDegraded flags lost push connectivity. Derived state stays untouched; a
// resync through Reset clears the flag.
func (s *Session) SetDegraded(degraded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded = degraded
}

func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// findConversation returns a pointer into the conversation slice; callers
// must finish with it before the next re-sort. Caller holds the lock.
func (s *Session) findConversation(key common.PairKey) *Conversation {
	for i := range s.conversations {
		if s.conversations[i].Pair(s.viewer) == key {
			return &s.conversations[i]
		}
	}
	return nil
}

// insertIntoThread places msg at its created_at position, skipping ids
// already present. Caller holds the lock.
func (s *Session) insertIntoThread(msg Message) {
	msgs := s.thread.Messages
	for i := range msgs {
		if msgs[i].ID == msg.ID {
			return
		}
	}
	i := sort.Search(len(msgs), func(i int) bool { return msgs[i].After(msg) })
	msgs = append(msgs, Message{})
	copy(msgs[i+1:], msgs[i:])
	msgs[i] = msg
	s.thread.Messages = msgs
}

func dedupeAndSort(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	ids := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if _, dup := ids[m.ID]; dup {
			continue
		}
		ids[m.ID] = struct{}{}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].After(out[i]) })
	return out
}
