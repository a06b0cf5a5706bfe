package repository

import (
	"errors"
	"testing"
	"time"

	"chmfc/internal/core"
	"chmfc/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoll(t *testing.T, repo core.PollRepository, open bool) *core.Poll {
	t.Helper()
	poll := &core.Poll{
		Question:  "Player of the match?",
		MatchID:   "m1",
		Opponent:  "Real Madrid",
		MatchDate: time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		Options: []core.PollOption{
			{PlayerID: "p1", Name: "Alex", Votes: 0},
			{PlayerID: "p2", Name: "Sam", Votes: 0},
		},
		IsOpen: open,
	}
	require.NoError(t, repo.Create(poll))
	require.NotEmpty(t, poll.ID)
	return poll
}

func TestPollRepo_CastVote(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPollRepo(app)
	user := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")

	poll := newTestPoll(t, repo, true)

	voted, err := repo.HasVoted(poll.ID, user.Id)
	require.NoError(t, err)
	assert.False(t, voted)

	updated, err := repo.CastVote(poll.ID, user.Id, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Options[1].Votes)
	assert.Equal(t, 0, updated.Options[0].Votes)

	voted, err = repo.HasVoted(poll.ID, user.Id)
	require.NoError(t, err)
	assert.True(t, voted)

	stored, err := repo.GetByID(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalVotes())
}

func TestPollRepo_CastVote_SecondReceiptRejected(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPollRepo(app)
	user := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")
	poll := newTestPoll(t, repo, true)

	_, err := repo.CastVote(poll.ID, user.Id, 0)
	require.NoError(t, err)

	_, err = repo.CastVote(poll.ID, user.Id, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrVoteConflict), "got %v", err)

	// the aborted transaction must not leave a counted vote behind
	stored, err := repo.GetByID(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalVotes())
	assert.Equal(t, 0, stored.Options[1].Votes)
}

func TestPollRepo_CastVote_Rejections(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPollRepo(app)
	user := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")

	closed := newTestPoll(t, repo, false)
	open := newTestPoll(t, repo, true)

	tests := []struct {
		name   string
		pollID string
		index  int
		want   error
	}{
		{"closed poll", closed.ID, 0, core.ErrPollClosed},
		{"index too high", open.ID, 2, core.ErrInvalidInput},
		{"negative index", open.ID, -1, core.ErrInvalidInput},
		{"unknown poll", "missingpoll0000", 0, core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CastVote(tt.pollID, user.Id, tt.index)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	voted, err := repo.HasVoted(open.ID, user.Id)
	require.NoError(t, err)
	assert.False(t, voted, "rejected votes must not write a receipt")
}

func TestPollRepo_DeleteRemovesReceipts(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPollRepo(app)
	user := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")
	poll := newTestPoll(t, repo, true)

	_, err := repo.CastVote(poll.ID, user.Id, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(poll.ID))

	n, err := app.CountRecords(core.CollectionVotes)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.GetByID(poll.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPollRepo_ListOpen(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPollRepo(app)

	newTestPoll(t, repo, true)
	closed := newTestPoll(t, repo, false)

	open, err := repo.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)

	require.NoError(t, repo.SetOpen(closed.ID, true))
	open, err = repo.ListOpen()
	require.NoError(t, err)
	assert.Len(t, open, 2)
}
