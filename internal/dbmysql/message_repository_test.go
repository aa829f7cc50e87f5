package dbmysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

type capturingPublisher struct {
	published []messaging.Message
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, msg messaging.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

var (
	opRef  = common.ParticipantRef{ID: "office", Role: common.RoleOperator}
	patRef = common.ParticipantRef{ID: "pat-a", Role: common.RolePatient}
)

func messageColumns() []string {
	return []string{
		"message_id", "sender_id", "sender_role",
		"recipient_id", "recipient_role", "content", "created_at", "read_at",
	}
}

func TestMessageRepository_Insert(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	feed := &capturingPublisher{}
	repo := NewMessageRepository(db, feed, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO `messages` (`message_id`,`sender_id`,`sender_role`,`recipient_id`,`recipient_role`,`content`,`created_at`,`read_at`) VALUES (?,?,?,?,?,?,?,?)")).
		WithArgs(sqlmock.AnyArg(), "office", "operator", "pat-a", "patient", "hello", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	persisted, err := repo.Insert(context.Background(), &messaging.Message{
		Sender:    opRef,
		Recipient: patRef,
		Content:   "hello",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, persisted.ID)
	assert.WithinDuration(t, time.Now().UTC(), persisted.CreatedAt, time.Second)
	assert.Nil(t, persisted.ReadAt)

	require.Len(t, feed.published, 1)
	assert.Equal(t, persisted.ID, feed.published[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Insert_RejectsSelfPair(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, &capturingPublisher{}, zerolog.Nop())

	_, err := repo.Insert(context.Background(), &messaging.Message{
		Sender:    opRef,
		Recipient: opRef,
		Content:   "hello me",
	})
	assert.Error(t, err)
}

func TestMessageRepository_Insert_PublishFailureDoesNotFailInsert(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	feed := &capturingPublisher{err: assert.AnError}
	repo := NewMessageRepository(db, feed, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `messages`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	persisted, err := repo.Insert(context.Background(), &messaging.Message{
		Sender:    opRef,
		Recipient: patRef,
		Content:   "hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, persisted.ID)
}

func TestMessageRepository_QueryByPair_ReturnsPageOldestFirst(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, &capturingPublisher{}, zerolog.Nop())

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// The store query pages newest-first; the repository reverses it.
	rows := sqlmock.NewRows(messageColumns()).
		AddRow("m2", "pat-a", "patient", "office", "operator", "newer", now.Add(time.Minute), nil).
		AddRow("m1", "office", "operator", "pat-a", "patient", "older", now, nil)

	mock.ExpectQuery("SELECT (.+) FROM `messages`").
		WithArgs(
			"office", "operator", "pat-a", "patient",
			"pat-a", "patient", "office", "operator",
		).
		WillReturnRows(rows)

	msgs, err := repo.QueryByPair(context.Background(), opRef, patRef, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
	assert.Equal(t, opRef, msgs[0].Sender)
	assert.Equal(t, patRef, msgs[0].Recipient)
}

func TestMessageRepository_QueryAllForViewer(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, &capturingPublisher{}, zerolog.Nop())

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	readAt := now.Add(time.Minute)
	rows := sqlmock.NewRows(messageColumns()).
		AddRow("m1", "office", "operator", "pat-a", "patient", "hi", now, readAt).
		AddRow("m2", "pat-a", "patient", "office", "operator", "hello", now.Add(time.Minute), nil)

	mock.ExpectQuery("SELECT (.+) FROM `messages`").
		WithArgs("office", "operator", "office", "operator").
		WillReturnRows(rows)

	msgs, err := repo.QueryAllForViewer(context.Background(), opRef)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[0].ReadAt)
	assert.True(t, msgs[0].ReadAt.Equal(readAt))
	assert.Nil(t, msgs[1].ReadAt)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, &capturingPublisher{}, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `messages` SET `read_at`=?")).
		WithArgs(sqlmock.AnyArg(), "office", "operator", "pat-a", "patient").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.MarkRead(context.Background(), opRef, patRef)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead_NothingUnread(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, &capturingPublisher{}, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `messages`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.MarkRead(context.Background(), opRef, patRef))
}
