package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remi-game/remi/internal/apperrors"
)

// Scenario: a non-host requester is always approved by the host.
func TestRequestTrumpNonHost(t *testing.T) {
	t.Parallel()

	s := startedGame(t, "p2")

	ns, err := s.RequestTrump("p2")
	require.NoError(t, err)
	req := ns.PendingTrumpRequest
	require.NotNil(t, req)
	assert.Equal(t, "p2", req.RequesterID)
	assert.Equal(t, "host", req.ApproverID)
	assert.Equal(t, TrumpPending, req.Status)

	approved, err := ns.ApproveTrump("host")
	require.NoError(t, err)
	assert.True(t, approved.IsTrumpViewer("p2"))
	assert.Equal(t, TrumpApproved, approved.PendingTrumpRequest.Status)
}

// Scenario: the host's approver is the next player in turn order, so the
// host can never approve its own request.
func TestRequestTrumpHost(t *testing.T) {
	t.Parallel()

	s := startedGame(t, "host")

	ns, err := s.RequestTrump("host")
	require.NoError(t, err)
	assert.Equal(t, "p2", ns.PendingTrumpRequest.ApproverID)

	_, err = ns.ApproveTrump("host")
	assert.ErrorIs(t, err, apperrors.ErrNotApprover)
}

func TestRequestTrumpGuards(t *testing.T) {
	t.Parallel()

	s := startedGame(t, "p2")

	// Only the active player may ask.
	_, err := s.RequestTrump("p3")
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	pending, err := s.RequestTrump("p2")
	require.NoError(t, err)

	// One pending request system-wide.
	_, err = pending.RequestTrump("p2")
	assert.ErrorIs(t, err, apperrors.ErrTrumpPending)

	// An approved viewer cannot ask again.
	approved, err := pending.ApproveTrump("host")
	require.NoError(t, err)
	_, err = approved.RequestTrump("p2")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyViewer)

	// No trump card in the lobby phase.
	lobby := threePlayerLobby(t)
	_, err = lobby.RequestTrump("p2")
	assert.ErrorIs(t, err, apperrors.ErrNotPlaying)
}

func TestRejectTrumpAllowsRetry(t *testing.T) {
	t.Parallel()

	s := startedGame(t, "p2")
	pending, err := s.RequestTrump("p2")
	require.NoError(t, err)

	_, err = pending.RejectTrump("p3")
	assert.ErrorIs(t, err, apperrors.ErrNotApprover)

	rejected, err := pending.RejectTrump("host")
	require.NoError(t, err)
	assert.False(t, rejected.IsTrumpViewer("p2"))
	assert.Equal(t, TrumpRejected, rejected.PendingTrumpRequest.Status)

	// The resolved request no longer blocks a fresh one.
	again, err := rejected.RequestTrump("p2")
	require.NoError(t, err)
	assert.Equal(t, TrumpPending, again.PendingTrumpRequest.Status)

	// Resolution is terminal for the old instance.
	_, err = rejected.ApproveTrump("host")
	assert.ErrorIs(t, err, apperrors.ErrNoTrumpRequest)
}

func TestApproveTrumpIsIdempotentOnViewers(t *testing.T) {
	t.Parallel()

	s := startedGame(t, "p2")
	pending, err := s.RequestTrump("p2")
	require.NoError(t, err)
	approved, err := pending.ApproveTrump("host")
	require.NoError(t, err)

	assert.Equal(t, []string{"p2"}, approved.TrumpViewers)
	for _, v := range approved.TrumpViewers {
		assert.Contains(t, approved.PlayerOrder, v)
	}
}
