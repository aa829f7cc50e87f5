package dbmysql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/push"
)

// messageRepository implements messaging.MessageStore over MySQL and
// publishes an insert event to the push feed after every successful write.
type messageRepository struct {
	db   *gorm.DB
	feed push.Publisher
	log  zerolog.Logger
}

func NewMessageRepository(db *gorm.DB, feed push.Publisher, log zerolog.Logger) messaging.MessageStore {
	return &messageRepository{db: db, feed: feed, log: log}
}

func (r *messageRepository) Insert(ctx context.Context, msg *messaging.Message) (*messaging.Message, error) {
	if msg.Sender.Equal(msg.Recipient) {
		return nil, fmt.Errorf("sender and recipient must differ")
	}

	row := fromDomain(msg)
	row.MessageID = uuid.NewString()
	row.CreatedAt = time.Now().UTC()
	row.ReadAt = nil

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}

	persisted := row.toDomain()
	if err := r.feed.Publish(ctx, persisted); err != nil {
		// The row is durable; a failed publish only delays delivery until
		// the next resync.
		r.log.Warn().Err(err).Str("message_id", persisted.ID).Msg("insert event publish failed")
	}
	return &persisted, nil
}

func (r *messageRepository) QueryByPair(ctx context.Context, a, b common.ParticipantRef, window int) ([]messaging.Message, error) {
	var rows []*Message
	err := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND sender_role = ? AND recipient_id = ? AND recipient_role = ?) OR (sender_id = ? AND sender_role = ? AND recipient_id = ? AND recipient_role = ?)",
			a.ID, string(a.Role), b.ID, string(b.Role),
			b.ID, string(b.Role), a.ID, string(a.Role),
		).
		Order("created_at DESC, message_id DESC").
		Limit(window).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// Most recent page, returned oldest-first.
	msgs := make([]messaging.Message, len(rows))
	for i, row := range rows {
		msgs[len(rows)-1-i] = row.toDomain()
	}
	return msgs, nil
}

func (r *messageRepository) QueryAllForViewer(ctx context.Context, viewer common.ParticipantRef) ([]messaging.Message, error) {
	var rows []*Message
	err := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND sender_role = ?) OR (recipient_id = ? AND recipient_role = ?)",
			viewer.ID, string(viewer.Role),
			viewer.ID, string(viewer.Role),
		).
		Order("created_at ASC, message_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]messaging.Message, len(rows))
	for i, row := range rows {
		msgs[i] = row.toDomain()
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, recipient, sender common.ParticipantRef) error {
	return r.db.WithContext(ctx).
		Model(&Message{}).
		Where(
			"recipient_id = ? AND recipient_role = ? AND sender_id = ? AND sender_role = ? AND read_at IS NULL",
			recipient.ID, string(recipient.Role),
			sender.ID, string(sender.Role),
		).
		Update("read_at", time.Now().UTC()).Error
}
