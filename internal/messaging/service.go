package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

const defaultThreadPageSize = 50

// Service is the messaging façade: the public operations UI-facing code
// composes the deriver, reconciler and directory through.
type Service interface {
	// ListConversations resolves the roster, loads the viewer's full message
	// history and derives the conversation list. When the directory is down
	// it still returns conversations (with placeholder partners) alongside
	// ErrDirectoryUnavailable, so history is never silently hidden.
	ListConversations(ctx context.Context, viewer common.ParticipantRef) ([]Conversation, error)

	// Counterparts returns the roster of participants the viewer may start a
	// chat with.
	Counterparts(ctx context.Context, viewer common.ParticipantRef) ([]common.RosterEntry, error)

	// OpenThread loads the most recent page of the pair's history,
	// oldest-first, installs it in the session and flushes read state for
	// the now-visible unread messages. A load that completes after the
	// viewer selected a different partner is discarded and returns nil.
	OpenThread(ctx context.Context, viewer, partner common.ParticipantRef, sess *Session) (*Thread, error)

	// Send persists a message and folds it into the session through the
	// same merge path an incoming push event takes.
	Send(ctx context.Context, viewer, partner common.ParticipantRef, content string, sess *Session) (*Message, error)

	// MarkRead flips read_at on all unread messages from the counterpart
	// addressed to the viewer. Monotonic; no-op when nothing is unread.
	MarkRead(ctx context.Context, viewer, counterpart common.ParticipantRef, sess *Session) error

	// Resync rebuilds the session from a fresh directory + history fetch.
	// Safe recovery after a transport drop; produces no duplicate state.
	Resync(ctx context.Context, sess *Session) error

	// Attach subscribes the session to the insert feed and wires its
	// auto-read flush. The returned teardown must be called when the
	// hosting view unmounts, or reconciler callbacks leak across remounts.
	Attach(sess *Session) (unsubscribe func())
}

type service struct {
	store    MessageStore
	dir      Directory
	feed     InsertFeed
	pageSize int
	log      zerolog.Logger
}

func NewService(store MessageStore, dir Directory, feed InsertFeed, pageSize int, log zerolog.Logger) Service {
	if pageSize <= 0 {
		pageSize = defaultThreadPageSize
	}
	return &service{
		store:    store,
		dir:      dir,
		feed:     feed,
		pageSize: pageSize,
		log:      log,
	}
}

func (s *service) ListConversations(ctx context.Context, viewer common.ParticipantRef) ([]Conversation, error) {
	roster, dirErr := s.roster(ctx, viewer)

	msgs, err := s.store.QueryAllForViewer(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return DeriveConversations(viewer, msgs, roster), dirErr
}

func (s *service) Counterparts(ctx context.Context, viewer common.ParticipantRef) ([]common.RosterEntry, error) {
	roster, err := s.dir.AddressableCounterparts(ctx, viewer)
	if err != nil {
		// Degrade to no counterparts rather than failing the page.
		return nil, fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	return roster, nil
}

func (s *service) OpenThread(ctx context.Context, viewer, partner common.ParticipantRef, sess *Session) (*Thread, error) {
	var epoch uint64
	if sess != nil {
		epoch = sess.BeginOpen(partner)
	}

	msgs, err := s.store.QueryByPair(ctx, viewer, partner, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	entry := s.resolvePartner(ctx, viewer, partner)
	thread := &Thread{Partner: entry, Messages: dedupeAndSort(msgs)}

	if sess != nil {
		if !sess.CompleteOpen(epoch, entry, thread.Messages) {
			// Stale load: the viewer moved on while we were fetching.
			return nil, nil
		}
	}

	if hasUnread(thread.Messages, viewer) {
		if err := s.MarkRead(ctx, viewer, partner, sess); err != nil {
			s.log.Warn().Err(err).
				Str("viewer", viewer.String()).
				Str("partner", partner.String()).
				Msg("read flush on thread open failed")
		} else {
			now := time.Now().UTC()
			for i := range thread.Messages {
				if thread.Messages[i].Unread(viewer) {
					t := now
					thread.Messages[i].ReadAt = &t
				}
			}
		}
	}

	return thread, nil
}

func (s *service) Send(ctx context.Context, viewer, partner common.ParticipantRef, content string, sess *Session) (*Message, error) {
	if err := common.ValidateContent(content); err != nil {
		return nil, err
	}
	if viewer.Equal(partner) {
		return nil, fmt.Errorf("%w: sender and recipient are the same participant", common.ErrSendRejected)
	}

	msg := &Message{
		Sender:    viewer,
		Recipient: partner,
		Content:   strings.TrimSpace(content),
	}
	persisted, err := s.store.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	// Same merge-and-dedupe path as an incoming push event; the redelivered
	// feed copy of this insert becomes a no-op.
	if sess != nil {
		sess.Apply(*persisted)
	}
	return persisted, nil
}

func (s *service) MarkRead(ctx context.Context, viewer, counterpart common.ParticipantRef, sess *Session) error {
	if err := s.store.MarkRead(ctx, viewer, counterpart); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	if sess != nil {
		sess.MarkRead(counterpart)
	}
	return nil
}

func (s *service) Resync(ctx context.Context, sess *Session) error {
	viewer := sess.Viewer()
	roster, dirErr := s.roster(ctx, viewer)

	msgs, err := s.store.QueryAllForViewer(ctx, viewer)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	sess.Reset(msgs, roster)
	return dirErr
}

func (s *service) Attach(sess *Session) func() {
	viewer := sess.Viewer()
	sess.SetAutoReadFunc(func(partner common.ParticipantRef) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.MarkRead(ctx, viewer, partner); err != nil {
			s.log.Warn().Err(err).
				Str("viewer", viewer.String()).
				Str("partner", partner.String()).
				Msg("auto-read flush failed")
		}
	})
	return s.feed.Subscribe(sess.Apply)
}

// roster resolves counterparts, degrading to an empty roster (with the
// sentinel error for the caller) when the directory is down.
func (s *service) roster(ctx context.Context, viewer common.ParticipantRef) ([]common.RosterEntry, error) {
	roster, err := s.dir.AddressableCounterparts(ctx, viewer)
	if err != nil {
		s.log.Warn().Err(err).Str("viewer", viewer.String()).Msg("directory unavailable")
		return nil, fmt.Errorf("%w: %v", common.ErrDirectoryUnavailable, err)
	}
	return roster, nil
}

func (s *service) resolvePartner(ctx context.Context, viewer, partner common.ParticipantRef) common.RosterEntry {
	roster, err := s.dir.AddressableCounterparts(ctx, viewer)
	if err == nil {
		for _, entry := range roster {
			if entry.Ref().Equal(partner) {
				return entry
			}
		}
	}
	return common.FallbackEntry(partner)
}

func hasUnread(msgs []Message, viewer common.ParticipantRef) bool {
	for i := range msgs {
		if msgs[i].Unread(viewer) {
			return true
		}
	}
	return false
}
