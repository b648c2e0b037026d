package claims

import (
	"context"
	"testing"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, seed []domain.Claim) (Service, *kvstore.Store) {
	t.Helper()
	if seed == nil {
		seed = []domain.Claim{}
	}
	store, err := kvstore.Open(context.Background(), kvstore.NewMemoryBackend(), map[string]any{
		domain.CollectionClaims: seed,
	})
	require.NoError(t, err)
	return NewService(store), store
}

func TestAddClaimFilesAsPending(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil)

	claim, err := svc.AddClaim(ctx, ClaimInput{
		MemberID:        "m00008",
		MemberName:      "Engineer Temesgen G.",
		Type:            domain.ClaimMedical,
		Description:     "Hospital stay",
		AmountRequested: 3000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, claim.ID)
	assert.Equal(t, domain.ClaimPending, claim.Status)
	assert.Equal(t, domain.Today(), claim.DateFiled)

	var claims []domain.Claim
	require.NoError(t, store.Get(ctx, domain.CollectionClaims, &claims))
	require.Len(t, claims, 1)
	assert.Equal(t, claim.ID, claims[0].ID)
}

func TestUpdateClaimLastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, []domain.Claim{
		{ID: "c1", MemberID: "m1", Status: domain.ClaimPending},
	})

	require.NoError(t, svc.UpdateClaim(ctx, "c1", domain.ClaimApproved))
	// Repeating against a terminal claim is not rejected; the last write
	// stands.
	require.NoError(t, svc.UpdateClaim(ctx, "c1", domain.ClaimRejected))

	var claims []domain.Claim
	require.NoError(t, store.Get(ctx, domain.CollectionClaims, &claims))
	assert.Equal(t, domain.ClaimRejected, claims[0].Status)
}

func TestUpdateUnknownClaimIsSilent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	assert.NoError(t, svc.UpdateClaim(context.Background(), "missing", domain.ClaimApproved))
}

func TestMemberClaims(t *testing.T) {
	svc, _ := newTestService(t, []domain.Claim{
		{ID: "c1", MemberID: "m1"},
		{ID: "c2", MemberID: "m2"},
		{ID: "c3", MemberID: "m1"},
	})

	mine, err := svc.MemberClaims(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "c1", mine[0].ID)
	assert.Equal(t, "c3", mine[1].ID)
}
