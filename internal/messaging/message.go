package messaging

import (
	"time"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

// Message is an immutable record in the flat, append-only message log.
// CreatedAt is assigned once at insert; ReadAt is set once by the recipient's
// side and never unset.
type Message struct {
	ID        string                `json:"id"`
	Sender    common.ParticipantRef `json:"sender"`
	Recipient common.ParticipantRef `json:"recipient"`
	Content   string                `json:"content"`
	CreatedAt time.Time             `json:"created_at"`
	ReadAt    *time.Time            `json:"read_at,omitempty"`
}

// Pair returns the canonical key for the message's participant pair.
func (m Message) Pair() common.PairKey {
	return common.PairKeyOf(m.Sender, m.Recipient)
}

// Touches reports whether the viewer is sender or recipient.
func (m Message) Touches(viewer common.ParticipantRef) bool {
	return m.Sender.Equal(viewer) || m.Recipient.Equal(viewer)
}

// Counterpart returns the other side of the message relative to the viewer.
func (m Message) Counterpart(viewer common.ParticipantRef) common.ParticipantRef {
	if m.Sender.Equal(viewer) {
		return m.Recipient
	}
	return m.Sender
}

// Unread reports whether the message is unread mail for the viewer. Messages
// the viewer sent never count.
func (m Message) Unread(viewer common.ParticipantRef) bool {
	return m.Recipient.Equal(viewer) && m.ReadAt == nil
}

// After reports whether m sorts after o in conversation order: created_at
// ascending with id as a stable lexicographic tie-break.
func (m Message) After(o Message) bool {
	if !m.CreatedAt.Equal(o.CreatedAt) {
		return m.CreatedAt.After(o.CreatedAt)
	}
	return m.ID > o.ID
}
