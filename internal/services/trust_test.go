package services

import (
	"testing"

	"cimsel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrustService() (*TrustService, *fakeTrustRepo) {
	repo := newFakeTrustRepo()
	return NewTrustService(repo, TrustThreshold, DistrustThreshold), repo
}

func TestTrustGetOrCreate(t *testing.T) {
	svc, repo := newTestTrustService()

	trust, err := svc.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), trust.UserID)
	assert.Equal(t, models.TrustLevelNew, trust.TrustLevel)
	assert.Zero(t, trust.ApprovedComments)
	assert.Zero(t, trust.RejectedComments)
	assert.Nil(t, trust.LastStatusChange)

	again, err := svc.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, trust.ID, again.ID, "second call returns the same record")
	assert.Len(t, repo.trusts, 1)
}

func TestTrustPromotionAtThreshold(t *testing.T) {
	svc, _ := newTestTrustService()

	for i := 0; i < TrustThreshold-1; i++ {
		require.NoError(t, svc.OnApproved(1))
		trusted, err := svc.IsTrusted(1)
		require.NoError(t, err)
		assert.False(t, trusted, "still new below the threshold")
	}

	require.NoError(t, svc.OnApproved(1))
	trust, err := svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelTrusted, trust.TrustLevel)
	assert.Equal(t, TrustThreshold, trust.ApprovedComments)
	require.NotNil(t, trust.LastStatusChange)
	firstChange := *trust.LastStatusChange

	// Further approvals keep counting but do not touch the change marker.
	require.NoError(t, svc.OnApproved(1))
	trust, err = svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelTrusted, trust.TrustLevel)
	assert.Equal(t, TrustThreshold+1, trust.ApprovedComments)
	assert.Equal(t, firstChange, *trust.LastStatusChange)
}

func TestTrustRejectionsBelowThresholdKeepLevel(t *testing.T) {
	svc, _ := newTestTrustService()

	require.NoError(t, svc.OnRejected(1))
	trust, err := svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelNew, trust.TrustLevel)
	assert.Equal(t, 1, trust.RejectedComments)
	assert.Nil(t, trust.LastStatusChange, "no level flip, no change marker")
}

func TestTrustNewUserNeverDemoted(t *testing.T) {
	svc, _ := newTestTrustService()

	// Pile up rejections well past the distrust threshold; a user who was
	// never trusted has nothing to be demoted from and keeps the counters.
	for i := 0; i < DistrustThreshold+3; i++ {
		require.NoError(t, svc.OnRejected(1))
	}
	trust, err := svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelNew, trust.TrustLevel)
	assert.Equal(t, DistrustThreshold+3, trust.RejectedComments)
}

func TestTrustDemotionResetsCounters(t *testing.T) {
	svc, repo := newTestTrustService()
	repo.seed(models.UserTrust{
		UserID:           1,
		TrustLevel:       models.TrustLevelTrusted,
		ApprovedComments: 5,
		RejectedComments: DistrustThreshold - 1,
	})

	require.NoError(t, svc.OnRejected(1))
	trust, err := svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelNew, trust.TrustLevel)
	assert.Zero(t, trust.ApprovedComments, "demotion wipes the approved counter")
	assert.Zero(t, trust.RejectedComments, "demotion wipes the rejected counter")
	assert.NotNil(t, trust.LastStatusChange)

	// Trust has to be re-earned from scratch after a demotion.
	for i := 0; i < TrustThreshold; i++ {
		require.NoError(t, svc.OnApproved(1))
	}
	trusted, err := svc.IsTrusted(1)
	require.NoError(t, err)
	assert.True(t, trusted)
}

func TestTrustApprovalsAfterDemotionCountFromZero(t *testing.T) {
	svc, repo := newTestTrustService()
	repo.seed(models.UserTrust{
		UserID:           1,
		TrustLevel:       models.TrustLevelTrusted,
		ApprovedComments: 10,
		RejectedComments: DistrustThreshold - 1,
	})

	require.NoError(t, svc.OnRejected(1))
	require.NoError(t, svc.OnApproved(1))

	trust, err := svc.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelNew, trust.TrustLevel)
	assert.Equal(t, 1, trust.ApprovedComments)
}
