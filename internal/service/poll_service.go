package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chmfc/internal/core"
	"chmfc/pkg/notification"

	"go.uber.org/zap"
)

// PollOptionView is an option with its share of the votes
type PollOptionView struct {
	core.PollOption
	Percentage float64 `json:"percentage"`
}

// PollView is a poll as shown to fans and in the admin results page
type PollView struct {
	*core.Poll
	Options    []PollOptionView `json:"options"`
	TotalVotes int              `json:"total_votes"`
	HasVoted   bool             `json:"has_voted"`
}

func newPollView(p *core.Poll, hasVoted bool) *PollView {
	total := core.TotalVotes(p.Options)
	options := make([]PollOptionView, len(p.Options))
	for i, o := range p.Options {
		options[i] = PollOptionView{PollOption: o, Percentage: core.VotePercentage(o.Votes, total)}
	}
	return &PollView{Poll: p, Options: options, TotalVotes: total, HasVoted: hasVoted}
}

type PollService struct {
	polls    core.PollRepository
	matches  core.MatchRepository
	players  core.PlayerRepository
	notifier core.Notifier
	logger   *zap.Logger
}

func NewPollService(
	polls core.PollRepository,
	matches core.MatchRepository,
	players core.PlayerRepository,
	notifier core.Notifier, // optional
	logger *zap.Logger,
) *PollService {
	return &PollService{
		polls:    polls,
		matches:  matches,
		players:  players,
		notifier: notifier,
		logger:   logger,
	}
}

// Vote records one vote for optionIndex. A user votes at most once per poll;
// the counter and the receipt are committed together or not at all.
func (s *PollService) Vote(pollID, userID string, optionIndex int) (*PollView, error) {
	if userID == "" {
		return nil, core.ErrAuthRequired
	}

	voted, err := s.polls.HasVoted(pollID, userID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, core.ErrAlreadyVoted
	}

	poll, err := s.polls.CastVote(pollID, userID, optionIndex)
	if err != nil {
		if errors.Is(err, core.ErrVoteConflict) {
			s.logger.Warn("[POLL_SERVICE] vote aborted by concurrent write",
				zap.String("poll_id", pollID), zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("[POLL_SERVICE] vote recorded",
		zap.String("poll_id", pollID), zap.Int("option", optionIndex))
	return newPollView(poll, true), nil
}

// OpenPolls lists open polls, flagging the ones userID already voted in
func (s *PollService) OpenPolls(userID string) ([]*PollView, error) {
	polls, err := s.polls.ListOpen()
	if err != nil {
		return nil, err
	}

	views := make([]*PollView, 0, len(polls))
	for _, p := range polls {
		voted := false
		if userID != "" {
			if voted, err = s.polls.HasVoted(p.ID, userID); err != nil {
				return nil, err
			}
		}
		views = append(views, newPollView(p, voted))
	}
	return views, nil
}

// ListPolls returns every poll with tallies, newest first
func (s *PollService) ListPolls() ([]*PollView, error) {
	polls, err := s.polls.List()
	if err != nil {
		return nil, err
	}

	views := make([]*PollView, len(polls))
	for i, p := range polls {
		views[i] = newPollView(p, false)
	}
	return views, nil
}

func (s *PollService) Results(pollID string) (*PollView, error) {
	poll, err := s.polls.GetByID(pollID)
	if err != nil {
		return nil, err
	}
	return newPollView(poll, false), nil
}

// PastMatches feeds the match picker of the poll form
func (s *PollService) PastMatches() ([]*core.Match, error) {
	matches, err := s.matches.List(core.MatchPast)
	if err != nil {
		return nil, err
	}
	core.SortPast(matches)
	return matches, nil
}

// CreatePoll opens a poll over the selected players of a match
func (s *PollService) CreatePoll(ctx context.Context, req *core.CreatePollRequest) (*core.Poll, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" || req.MatchID == "" || len(req.PlayerIDs) == 0 {
		return nil, fmt.Errorf("%w: question, match and at least one player are required", core.ErrInvalidInput)
	}

	match, err := s.matches.GetByID(req.MatchID)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", req.MatchID, err)
	}

	seen := make(map[string]bool, len(req.PlayerIDs))
	options := make([]core.PollOption, 0, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		player, err := s.players.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", id, err)
		}
		options = append(options, core.PollOption{PlayerID: player.ID, Name: player.Name, Votes: 0})
	}

	poll := &core.Poll{
		Question:  question,
		MatchID:   match.ID,
		Opponent:  match.Opponent,
		MatchDate: match.Date,
		Options:   options,
		IsOpen:    true,
	}
	if err := s.polls.Create(poll); err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	s.logger.Info("[POLL_SERVICE] poll created",
		zap.String("poll_id", poll.ID), zap.String("opponent", poll.Opponent), zap.Int("options", len(options)))

	if s.notifier != nil {
		if err := s.notifier.NotifyTopic(ctx, notification.TopicPolls,
			"Player of the match vote",
			fmt.Sprintf("%s (vs %s)", question, match.Opponent),
			map[string]string{"poll_id": poll.ID, "type": "new_poll"},
		); err != nil {
			s.logger.Warn("[POLL_SERVICE] topic notification failed", zap.Error(err))
		}
	}

	return poll, nil
}

// SubscribeDevice signs a fan's device up for new poll announcements.
// Without push notifications configured there is nothing to join.
func (s *PollService) SubscribeDevice(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", core.ErrInvalidInput)
	}
	if s.notifier == nil {
		s.logger.Info("[POLL_SERVICE] push disabled, device not subscribed")
		return nil
	}
	return s.notifier.SubscribeToTopic(ctx, []string{token}, notification.TopicPolls)
}

// TogglePoll flips is_open and returns the new state
func (s *PollService) TogglePoll(pollID string) (bool, error) {
	poll, err := s.polls.GetByID(pollID)
	if err != nil {
		return false, err
	}
	open := !poll.IsOpen
	if err := s.polls.SetOpen(pollID, open); err != nil {
		return false, err
	}
	return open, nil
}

// DeletePoll removes the poll and its vote receipts
func (s *PollService) DeletePoll(pollID string) error {
	return s.polls.Delete(pollID)
}
