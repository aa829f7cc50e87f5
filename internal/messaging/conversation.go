package messaging

import (
	"sort"
	"time"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

// Conversation is derived state, never stored: one entry per distinct
// counterpart of the viewer. A provisional conversation (started locally,
// no message yet) has a nil LastMessage and a zero UpdatedAt.
type Conversation struct {
	Partner     common.RosterEntry `json:"partner"`
	LastMessage *Message           `json:"last_message,omitempty"`
	UnreadCount int                `json:"unread_count"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// StartedAt is the local creation instant of a provisional conversation.
	// Zero once a real message exists.
	StartedAt time.Time `json:"-"`
}

// Provisional reports whether no message has round-tripped for the pair yet.
func (c *Conversation) Provisional() bool {
	return c.LastMessage == nil
}

// Pair returns the canonical key of the conversation relative to the viewer.
func (c *Conversation) Pair(viewer common.ParticipantRef) common.PairKey {
	return common.PairKeyOf(viewer, c.Partner.Ref())
}

// DeriveConversations folds the viewer's message history into one
// Conversation per distinct counterpart. It is a pure function: deriving
// twice from the same inputs yields identical output, order included.
func DeriveConversations(viewer common.ParticipantRef, msgs []Message, roster []common.RosterEntry) []Conversation {
	byRef := make(map[common.ParticipantRef]common.RosterEntry, len(roster))
	for _, entry := range roster {
		byRef[entry.Ref()] = entry
	}

	partitions := make(map[common.PairKey]*Conversation)
	var order []common.PairKey
	for i := range msgs {
		msg := msgs[i]
		if !msg.Touches(viewer) {
			continue
		}
		key := msg.Pair()
		conv, ok := partitions[key]
		if !ok {
			counterpart := msg.Counterpart(viewer)
			entry, found := byRef[counterpart]
			if !found {
				entry = common.FallbackEntry(counterpart)
			}
			conv = &Conversation{Partner: entry}
			partitions[key] = conv
			order = append(order, key)
		}
		if conv.LastMessage == nil || msg.After(*conv.LastMessage) {
			last := msg
			conv.LastMessage = &last
			conv.UpdatedAt = msg.CreatedAt
		}
		if msg.Unread(viewer) {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, key := range order {
		out = append(out, *partitions[key])
	}
	sortConversations(out)
	return out
}

// sortConversations orders the list most recently active first. Provisional
// conversations rank below anything with real traffic, newest started first.
func sortConversations(convs []Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		a, b := &convs[i], &convs[j]
		if a.Provisional() != b.Provisional() {
			return !a.Provisional()
		}
		if a.Provisional() {
			return a.StartedAt.After(b.StartedAt)
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.LastMessage.ID > b.LastMessage.ID
	})
}
