// Package directory resolves who a participant may address. The operator
// stands in for the business as an explicit well-known roster entry rather
// than special-cased conditionals.
package directory

import (
	"context"
	"fmt"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/dbmysql"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

type service struct {
	patients   dbmysql.PatientRepository
	caregivers dbmysql.CaregiverRepository
	operator   common.RosterEntry
}

// NewService builds the participant directory. operator is the well-known
// entry every patient and caregiver may address.
func NewService(patients dbmysql.PatientRepository, caregivers dbmysql.CaregiverRepository, operator common.RosterEntry) messaging.Directory {
	return &service{
		patients:   patients,
		caregivers: caregivers,
		operator:   operator,
	}
}

// AddressableCounterparts resolves the viewer's roster: the operator may
// address every patient and caregiver; patients and caregivers address the
// operator. Assignment-linked counterparts are a future extension point.
func (s *service) AddressableCounterparts(ctx context.Context, viewer common.ParticipantRef) ([]common.RosterEntry, error) {
	switch viewer.Role {
	case common.RoleOperator:
		return s.fullRoster(ctx)
	case common.RolePatient, common.RoleCaregiver:
		return []common.RosterEntry{s.operator}, nil
	default:
		return nil, fmt.Errorf("%w: unknown viewer role %q", common.ErrDirectoryUnavailable, viewer.Role)
	}
}

func (s *service) fullRoster(ctx context.Context) ([]common.RosterEntry, error) {
	patients, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: patients: %v", common.ErrDirectoryUnavailable, err)
	}
	caregivers, err := s.caregivers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: caregivers: %v", common.ErrDirectoryUnavailable, err)
	}

	roster := make([]common.RosterEntry, 0, len(patients)+len(caregivers))
	for _, p := range patients {
		roster = append(roster, common.RosterEntry{
			ID:          p.PatientID,
			Role:        common.RolePatient,
			DisplayName: p.FullName,
			AvatarURL:   p.AvatarURL,
		})
	}
	for _, c := range caregivers {
		roster = append(roster, common.RosterEntry{
			ID:          c.CaregiverID,
			Role:        common.RoleCaregiver,
			DisplayName: c.FullName,
			AvatarURL:   c.AvatarURL,
		})
	}
	return roster, nil
}
