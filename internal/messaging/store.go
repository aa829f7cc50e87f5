package messaging

import (
	"context"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

// MessageStore is the persistence contract the messaging core depends on.
// Implemented by the GORM repository in internal/dbmysql.
type MessageStore interface {
	// Insert persists a new message and returns it with the server-assigned
	// id and created_at.
	Insert(ctx context.Context, msg *Message) (*Message, error)

	// QueryByPair returns up to window most recent messages between the two
	// participants, oldest-first within the page.
	QueryByPair(ctx context.Context, a, b common.ParticipantRef, window int) ([]Message, error)

	// QueryAllForViewer returns every message where the viewer is sender or
	// recipient, oldest-first.
	QueryAllForViewer(ctx context.Context, viewer common.ParticipantRef) ([]Message, error)

	// MarkRead sets read_at now on all unread messages from sender addressed
	// to recipient. No-op when nothing is unread.
	MarkRead(ctx context.Context, recipient, sender common.ParticipantRef) error
}

// Directory resolves the roster of addressable counterparts for a viewer.
type Directory interface {
	AddressableCounterparts(ctx context.Context, viewer common.ParticipantRef) ([]common.RosterEntry, error)
}

// InsertFeed is the push stream of newly persisted messages, delivered
// at-least-once and not necessarily in creation order.
type InsertFeed interface {
	// Subscribe registers a handler for insert events and returns its
	// teardown. The handler may be invoked from the transport's goroutine.
	Subscribe(fn func(Message)) (unsubscribe func())
}
