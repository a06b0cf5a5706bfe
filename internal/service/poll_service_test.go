package service

import (
	"context"
	"testing"

	"chmfc/internal/core"
	"chmfc/pkg/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPollFixture(t *testing.T) (*repos, *PollService, *fakeNotifier) {
	t.Helper()
	r := newRepos(t)
	notifier := &fakeNotifier{}
	return r, NewPollService(r.polls, r.matches, r.players, notifier, zap.NewNop()), notifier
}

func TestPollService_CreatePoll(t *testing.T) {
	r, svc, notifier := newPollFixture(t)

	match := r.match(t, "Real Madrid", core.MatchPast, date(3, 1))
	alex := r.player(t, "Alex Striker", core.SquadMen)
	sam := r.player(t, "Sam Keeper", core.SquadMen)

	poll, err := svc.CreatePoll(context.Background(), &core.CreatePollRequest{
		Question:  "Who was man of the match?",
		MatchID:   match.ID,
		PlayerIDs: []string{alex.ID, sam.ID, alex.ID},
	})
	require.NoError(t, err)

	stored, err := r.polls.GetByID(poll.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen)
	assert.Equal(t, "Real Madrid", stored.Opponent)
	assert.True(t, stored.MatchDate.Equal(match.Date))
	require.Len(t, stored.Options, 2)
	assert.Equal(t, core.PollOption{PlayerID: alex.ID, Name: "Alex Striker", Votes: 0}, stored.Options[0])
	assert.Equal(t, core.PollOption{PlayerID: sam.ID, Name: "Sam Keeper", Votes: 0}, stored.Options[1])

	require.Len(t, notifier.topics, 1)
	assert.Equal(t, notification.TopicPolls, notifier.topics[0].topic)
	assert.Equal(t, poll.ID, notifier.topics[0].data["poll_id"])
}

func TestPollService_CreatePoll_Rejects(t *testing.T) {
	r, svc, notifier := newPollFixture(t)
	match := r.match(t, "Barcelona", core.MatchPast, date(2, 1))
	p := r.player(t, "Alex", core.SquadMen)

	tests := []struct {
		name string
		req  core.CreatePollRequest
		want error
	}{
		{"missing question", core.CreatePollRequest{MatchID: match.ID, PlayerIDs: []string{p.ID}}, core.ErrInvalidInput},
		{"no players", core.CreatePollRequest{Question: "MOTM?", MatchID: match.ID}, core.ErrInvalidInput},
		{"unknown match", core.CreatePollRequest{Question: "MOTM?", MatchID: "missingmatch123", PlayerIDs: []string{p.ID}}, core.ErrNotFound},
		{"unknown player", core.CreatePollRequest{Question: "MOTM?", MatchID: match.ID, PlayerIDs: []string{"missingplayer12"}}, core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePoll(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	polls, err := r.polls.List()
	require.NoError(t, err)
	assert.Empty(t, polls)
	assert.Empty(t, notifier.topics)
}

func TestPollService_VoteOncePerUser(t *testing.T) {
	r, svc, _ := newPollFixture(t)
	match := r.match(t, "Real Madrid", core.MatchPast, date(3, 1))
	a := r.player(t, "Alex", core.SquadMen)
	b := r.player(t, "Sam", core.SquadMen)
	poll, err := svc.CreatePoll(context.Background(), &core.CreatePollRequest{
		Question: "MOTM?", MatchID: match.ID, PlayerIDs: []string{a.ID, b.ID},
	})
	require.NoError(t, err)

	fan := r.profile(t, "fan@chmfc.test", "Fan", core.RoleUser)
	other := r.profile(t, "other@chmfc.test", "Other", core.RoleUser)

	view, err := svc.Vote(poll.ID, fan.ID, 0)
	require.NoError(t, err)
	assert.True(t, view.HasVoted)
	assert.Equal(t, 1, view.TotalVotes)
	assert.Equal(t, float64(100), view.Options[0].Percentage)

	_, err = svc.Vote(poll.ID, fan.ID, 1)
	assert.ErrorIs(t, err, core.ErrAlreadyVoted)

	_, err = svc.Vote(poll.ID, other.ID, 1)
	require.NoError(t, err)

	results, err := svc.Results(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, results.TotalVotes)
	assert.Equal(t, 1, results.Options[0].Votes)
	assert.Equal(t, 1, results.Options[1].Votes)
	assert.Equal(t, float64(50), results.Options[1].Percentage)
}

func TestPollService_VoteRequiresUser(t *testing.T) {
	r, svc, _ := newPollFixture(t)
	match := r.match(t, "Real Madrid", core.MatchPast, date(3, 1))
	p := r.player(t, "Alex", core.SquadMen)
	poll, err := svc.CreatePoll(context.Background(), &core.CreatePollRequest{
		Question: "MOTM?", MatchID: match.ID, PlayerIDs: []string{p.ID},
	})
	require.NoError(t, err)

	_, err = svc.Vote(poll.ID, "", 0)
	assert.ErrorIs(t, err, core.ErrAuthRequired)

	results, err := svc.Results(poll.ID)
	require.NoError(t, err)
	assert.Zero(t, results.TotalVotes)
}

func TestPollService_OpenPollsAndToggle(t *testing.T) {
	r, svc, _ := newPollFixture(t)
	match := r.match(t, "Real Madrid", core.MatchPast, date(3, 1))
	p := r.player(t, "Alex", core.SquadMen)
	poll, err := svc.CreatePoll(context.Background(), &core.CreatePollRequest{
		Question: "MOTM?", MatchID: match.ID, PlayerIDs: []string{p.ID},
	})
	require.NoError(t, err)
	fan := r.profile(t, "fan@chmfc.test", "Fan", core.RoleUser)
	_, err = svc.Vote(poll.ID, fan.ID, 0)
	require.NoError(t, err)

	open, err := svc.OpenPolls(fan.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.True(t, open[0].HasVoted)

	anonymous, err := svc.OpenPolls("")
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.False(t, anonymous[0].HasVoted)

	isOpen, err := svc.TogglePoll(poll.ID)
	require.NoError(t, err)
	assert.False(t, isOpen)

	open, err = svc.OpenPolls(fan.ID)
	require.NoError(t, err)
	assert.Empty(t, open)

	other := r.profile(t, "late@chmfc.test", "Late", core.RoleUser)
	_, err = svc.Vote(poll.ID, other.ID, 0)
	assert.ErrorIs(t, err, core.ErrPollClosed)

	require.NoError(t, svc.DeletePoll(poll.ID))
	_, err = svc.Results(poll.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPollService_PastMatches(t *testing.T) {
	r, svc, _ := newPollFixture(t)
	r.match(t, "Old", core.MatchPast, date(1, 10))
	r.match(t, "Recent", core.MatchPast, date(3, 10))
	r.match(t, "Future", core.MatchUpcoming, date(9, 10))

	past, err := svc.PastMatches()
	require.NoError(t, err)
	require.Len(t, past, 2)
	assert.Equal(t, "Recent", past[0].Opponent)
	assert.Equal(t, "Old", past[1].Opponent)
}

func TestPollService_SubscribeDevice(t *testing.T) {
	_, svc, notifier := newPollFixture(t)

	require.NoError(t, svc.SubscribeDevice(context.Background(), "  device-1 "))
	assert.Equal(t, []string{notification.TopicPolls + "/device-1"}, notifier.subscribed)

	err := svc.SubscribeDevice(context.Background(), " ")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Len(t, notifier.subscribed, 1)
}

func TestPollService_SubscribeDeviceWithoutPush(t *testing.T) {
	r := newRepos(t)
	svc := NewPollService(r.polls, r.matches, r.players, nil, zap.NewNop())

	assert.NoError(t, svc.SubscribeDevice(context.Background(), "device-1"))
}
