package common

import (
	"fmt"
	"strings"
)

// Role namespaces participant ids. Two participants are the same entity only
// if both id and role match.
type Role string

const (
	RoleOperator  Role = "operator"
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOperator:
		return RoleOperator, nil
	case RolePatient:
		return RolePatient, nil
	case RoleCaregiver:
		return RoleCaregiver, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParticipantRef identifies one side of a conversation.
type ParticipantRef struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (p ParticipantRef) Equal(o ParticipantRef) bool {
	return p.ID == o.ID && p.Role == o.Role
}

func (p ParticipantRef) String() string {
	return string(p.Role) + ":" + p.ID
}

// PairKey identifies an unordered participant pair. The same two participants
// always produce the same key regardless of which side is the viewer.
type PairKey string

func PairKeyOf(a, b ParticipantRef) PairKey {
	x, y := a.String(), b.String()
	if y < x {
		x, y = y, x
	}
	return PairKey(x + "|" + y)
}

// RosterEntry is a directory listing for an addressable counterpart. It is
// sourced from the patient/caregiver directories, never persisted by the
// messaging core itself.
type RosterEntry struct {
	ID          string  `json:"id"`
	Role        Role    `json:"role"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

func (e RosterEntry) Ref() ParticipantRef {
	return ParticipantRef{ID: e.ID, Role: e.Role}
}

// FallbackEntry stands in for a counterpart that is no longer in the roster,
// so stale conversations keep rendering instead of failing.
func FallbackEntry(ref ParticipantRef) RosterEntry {
	return RosterEntry{ID: ref.ID, Role: ref.Role, DisplayName: "Former participant"}
}
