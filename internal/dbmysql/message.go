package dbmysql

import (
	"time"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

// Message is the persisted row of the flat, append-only message log.
// Rows are immutable after insert except for the monotonic read_at stamp.
type Message struct {
	MessageID     string     `gorm:"primaryKey;column:message_id;size:36"`
	SenderID      string     `gorm:"column:sender_id;size:64;not null;index:idx_sender"`
	SenderRole    string     `gorm:"column:sender_role;size:16;not null;index:idx_sender"`
	RecipientID   string     `gorm:"column:recipient_id;size:64;not null;index:idx_recipient"`
	RecipientRole string     `gorm:"column:recipient_role;size:16;not null;index:idx_recipient"`
	Content       string     `gorm:"column:content;type:text;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at;index"`
	ReadAt        *time.Time `gorm:"column:read_at"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) toDomain() messaging.Message {
	return messaging.Message{
		ID:        m.MessageID,
		Sender:    common.ParticipantRef{ID: m.SenderID, Role: common.Role(m.SenderRole)},
		Recipient: common.ParticipantRef{ID: m.RecipientID, Role: common.Role(m.RecipientRole)},
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		ReadAt:    m.ReadAt,
	}
}

func fromDomain(m *messaging.Message) *Message {
	return &Message{
		MessageID:     m.ID,
		SenderID:      m.Sender.ID,
		SenderRole:    string(m.Sender.Role),
		RecipientID:   m.Recipient.ID,
		RecipientRole: string(m.Recipient.Role),
		Content:       m.Content,
		CreatedAt:     m.CreatedAt,
		ReadAt:        m.ReadAt,
	}
}
