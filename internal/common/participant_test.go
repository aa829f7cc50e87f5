package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyOf_DirectionIndependent(t *testing.T) {
	a := ParticipantRef{ID: "office", Role: RoleOperator}
	b := ParticipantRef{ID: "pat-42", Role: RolePatient}

	assert.Equal(t, PairKeyOf(a, b), PairKeyOf(b, a))
}

func TestPairKeyOf_RoleNamespacesIDs(t *testing.T) {
	// The same id under different roles is a different participant.
	patient := ParticipantRef{ID: "42", Role: RolePatient}
	caregiver := ParticipantRef{ID: "42", Role: RoleCaregiver}
	operator := ParticipantRef{ID: "office", Role: RoleOperator}

	assert.NotEqual(t, PairKeyOf(operator, patient), PairKeyOf(operator, caregiver))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "operator", want: RoleOperator},
		{in: "Patient", want: RolePatient},
		{in: " caregiver ", want: RoleCaregiver},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("hello"))
	assert.ErrorIs(t, ValidateContent(""), ErrSendRejected)
	assert.ErrorIs(t, ValidateContent("   \n\t"), ErrSendRejected)
	assert.ErrorIs(t, ValidateContent(strings.Repeat("x", maxContentLength+1)), ErrSendRejected)
}
