package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
)

var (
	operator   = common.ParticipantRef{ID: "office", Role: common.RoleOperator}
	patientA   = common.ParticipantRef{ID: "pat-a", Role: common.RolePatient}
	patientB   = common.ParticipantRef{ID: "pat-b", Role: common.RolePatient}
	caregiverC = common.ParticipantRef{ID: "cg-c", Role: common.RoleCaregiver}

	baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

func entry(ref common.ParticipantRef, name string) common.RosterEntry {
	return common.RosterEntry{ID: ref.ID, Role: ref.Role, DisplayName: name}
}

func testMsg(id string, from, to common.ParticipantRef, content string, at time.Time) Message {
	return Message{ID: id, Sender: from, Recipient: to, Content: content, CreatedAt: at}
}

func readMsg(id string, from, to common.ParticipantRef, content string, at time.Time) Message {
	m := testMsg(id, from, to, content, at)
	readAt := at.Add(time.Minute)
	m.ReadAt = &readAt
	return m
}

func TestDeriveConversations_ColdStart(t *testing.T) {
	msgs := []Message{
		readMsg("m1", operator, patientA, "hi", baseTime),
		testMsg("m2", patientA, operator, "hello", baseTime.Add(time.Minute)),
	}
	roster := []common.RosterEntry{entry(patientA, "Alice Adams")}

	convs := DeriveConversations(operator, msgs, roster)

	require.Len(t, convs, 1)
	assert.Equal(t, "Alice Adams", convs[0].Partner.DisplayName)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "hello", convs[0].LastMessage.Content)
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, baseTime.Add(time.Minute), convs[0].UpdatedAt)
}

func TestDeriveConversations_Idempotent(t *testing.T) {
	msgs := []Message{
		testMsg("m1", patientA, operator, "one", baseTime),
		testMsg("m2", operator, patientB, "two", baseTime.Add(time.Second)),
		testMsg("m3", caregiverC, operator, "three", baseTime.Add(2*time.Second)),
	}
	roster := []common.RosterEntry{
		entry(patientA, "Alice Adams"),
		entry(patientB, "Bob Brown"),
		entry(caregiverC, "Carol Carter"),
	}

	first := DeriveConversations(operator, msgs, roster)
	second := DeriveConversations(operator, msgs, roster)

	assert.Equal(t, first, second)
}

func TestDeriveConversations_LastMessageTieBreak(t *testing.T) {
	// Equal created_at: the lexicographically higher id wins.
	msgs := []Message{
		testMsg("m-b", patientA, operator, "later id", baseTime),
		testMsg("m-a", operator, patientA, "earlier id", baseTime),
	}

	convs := DeriveConversations(operator, msgs, nil)

	require.Len(t, convs, 1)
	assert.Equal(t, "m-b", convs[0].LastMessage.ID)
}

func TestDeriveConversations_UnreadOnlyCountsViewerInbound(t *testing.T) {
	msgs := []Message{
		testMsg("m1", operator, patientA, "sent, unread by them", baseTime),
		testMsg("m2", patientA, operator, "inbound unread", baseTime.Add(time.Second)),
		readMsg("m3", patientA, operator, "inbound read", baseTime.Add(2*time.Second)),
	}

	convs := DeriveConversations(operator, msgs, nil)

	require.Len(t, convs, 1)
	assert.Equal(t, 1, convs[0].UnreadCount)
}

func TestDeriveConversations_FallbackPartnerForStaleCounterpart(t *testing.T) {
	msgs := []Message{testMsg("m1", caregiverC, operator, "still here", baseTime)}

	convs := DeriveConversations(operator, msgs, []common.RosterEntry{entry(patientA, "Alice Adams")})

	require.Len(t, convs, 1)
	assert.Equal(t, caregiverC, convs[0].Partner.Ref())
	assert.Equal(t, "Former participant", convs[0].Partner.DisplayName)
}

func TestDeriveConversations_OrderedByActivity(t *testing.T) {
	msgs := []Message{
		testMsg("m1", patientA, operator, "old", baseTime),
		testMsg("m2", patientB, operator, "newer", baseTime.Add(time.Hour)),
		testMsg("m3", caregiverC, operator, "newest", baseTime.Add(2*time.Hour)),
	}

	convs := DeriveConversations(operator, msgs, nil)

	require.Len(t, convs, 3)
	assert.Equal(t, caregiverC, convs[0].Partner.Ref())
	assert.Equal(t, patientB, convs[1].Partner.Ref())
	assert.Equal(t, patientA, convs[2].Partner.Ref())
}

func TestDeriveConversations_IgnoresMessagesNotTouchingViewer(t *testing.T) {
	msgs := []Message{testMsg("m1", patientA, caregiverC, "not ours", baseTime)}

	convs := DeriveConversations(operator, msgs, nil)

	assert.Empty(t, convs)
}

func TestDeriveConversations_DirectionIndependentKeying(t *testing.T) {
	// Both directions of the same pair must land in one conversation.
	msgs := []Message{
		testMsg("m1", operator, patientA, "out", baseTime),
		testMsg("m2", patientA, operator, "in", baseTime.Add(time.Second)),
		testMsg("m3", operator, patientA, "out again", baseTime.Add(2*time.Second)),
	}

	convs := DeriveConversations(operator, msgs, nil)

	require.Len(t, convs, 1)
	assert.Equal(t, "m3", convs[0].LastMessage.ID)
}
