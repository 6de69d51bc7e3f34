package services

import (
	"time"

	"cimsel/internal/models"
	"cimsel/internal/repository"
)

// Default thresholds for the trust ledger.
const (
	// TrustThreshold is the number of approved comments that promotes a user
	// to the trusted level.
	TrustThreshold = 3
	// DistrustThreshold is the number of rejected comments that demotes a
	// trusted user back to new.
	DistrustThreshold = 2
)

// TrustService is the single source of truth for whether a user's comments
// are auto-approved. Trust levels move only through OnApproved / OnRejected;
// no other code path may set them.
type TrustService struct {
	trusts            repository.TrustRepository
	trustThreshold    int
	distrustThreshold int
}

func NewTrustService(trusts repository.TrustRepository, trustThreshold, distrustThreshold int) *TrustService {
	return &TrustService{
		trusts:            trusts,
		trustThreshold:    trustThreshold,
		distrustThreshold: distrustThreshold,
	}
}

func (s *TrustService) GetOrCreate(userID uint) (*models.UserTrust, error) {
	return s.trusts.GetOrCreate(userID)
}

func (s *TrustService) IsTrusted(userID uint) (bool, error) {
	trust, err := s.trusts.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	return trust.TrustLevel == models.TrustLevelTrusted, nil
}

// OnApproved records one approved comment. Reaching the trust threshold while
// still at level new promotes the user; the escalation is one-way and leaves
// the rejected counter untouched.
func (s *TrustService) OnApproved(userID uint) error {
	_, err := s.trusts.Update(userID, func(t *models.UserTrust) {
		t.ApprovedComments++
		if t.ApprovedComments >= s.trustThreshold && t.TrustLevel == models.TrustLevelNew {
			t.TrustLevel = models.TrustLevelTrusted
			now := time.Now()
			t.LastStatusChange = &now
		}
	})
	return err
}

// OnRejected records one rejected (or spam) comment. A trusted user hitting
// the distrust threshold is demoted and both counters reset to zero, so trust
// has to be re-earned from scratch.
func (s *TrustService) OnRejected(userID uint) error {
	_, err := s.trusts.Update(userID, func(t *models.UserTrust) {
		t.RejectedComments++
		if t.RejectedComments >= s.distrustThreshold && t.TrustLevel == models.TrustLevelTrusted {
			t.TrustLevel = models.TrustLevelNew
			t.ApprovedComments = 0
			t.RejectedComments = 0
			now := time.Now()
			t.LastStatusChange = &now
		}
	})
	return err
}
