package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBPollRepo struct {
	app pbCore.App
}

func NewPollRepo(app pbCore.App) core.PollRepository {
	return &PBPollRepo{app: app}
}

func (r *PBPollRepo) toDomain(record *pbCore.Record) *core.Poll {
	var options []core.PollOption
	if err := record.UnmarshalJSONField("options", &options); err != nil || options == nil {
		options = []core.PollOption{}
	}

	return &core.Poll{
		ID:        record.Id,
		Question:  record.GetString("question"),
		MatchID:   record.GetString("match_id"),
		Opponent:  record.GetString("opponent"),
		MatchDate: record.GetDateTime("match_date").Time(),
		Options:   options,
		IsOpen:    record.GetBool("is_open"),
		Created:   record.GetString("created"),
	}
}

func (r *PBPollRepo) List() ([]*core.Poll, error) {
	return r.find("1=1", nil)
}

func (r *PBPollRepo) ListOpen() ([]*core.Poll, error) {
	return r.find("is_open = true", nil)
}

func (r *PBPollRepo) find(filter string, params dbx.Params) ([]*core.Poll, error) {
	records, err := findAll(r.app, core.CollectionPolls, filter, "-created", params)
	if err != nil {
		return nil, err
	}

	polls := make([]*core.Poll, 0, len(records))
	for _, rec := range records {
		polls = append(polls, r.toDomain(rec))
	}
	return polls, nil
}

func (r *PBPollRepo) GetByID(id string) (*core.Poll, error) {
	record, err := r.app.FindRecordById(core.CollectionPolls, id)
	if err != nil {
		return nil, wrapNotFound("poll", err)
	}
	return r.toDomain(record), nil
}

func (r *PBPollRepo) Create(p *core.Poll) error {
	record, err := newRecord(r.app, core.CollectionPolls)
	if err != nil {
		return err
	}

	record.Set("question", p.Question)
	record.Set("match_id", p.MatchID)
	record.Set("opponent", p.Opponent)
	record.Set("match_date", p.MatchDate)
	record.Set("options", p.Options)
	record.Set("is_open", p.IsOpen)

	if err := r.app.Save(record); err != nil {
		return err
	}
	p.ID = record.Id
	p.Created = record.GetString("created")
	return nil
}

func (r *PBPollRepo) SetOpen(id string, open bool) error {
	record, err := r.app.FindRecordById(core.CollectionPolls, id)
	if err != nil {
		return wrapNotFound("poll", err)
	}
	record.Set("is_open", open)
	return r.app.Save(record)
}

func (r *PBPollRepo) Delete(id string) error {
	return r.app.RunInTransaction(func(txApp pbCore.App) error {
		record, err := txApp.FindRecordById(core.CollectionPolls, id)
		if err != nil {
			return wrapNotFound("poll", err)
		}

		receipts, err := txApp.FindAllRecords(core.CollectionVotes, dbx.HashExp{"poll": id})
		if err != nil {
			return fmt.Errorf("list receipts: %w", err)
		}
		for _, rec := range receipts {
			if err := txApp.Delete(rec); err != nil {
				return fmt.Errorf("delete receipt: %w", err)
			}
		}

		return txApp.Delete(record)
	})
}

func (r *PBPollRepo) HasVoted(pollID, userID string) (bool, error) {
	_, err := r.app.FindFirstRecordByFilter(
		core.CollectionVotes,
		"poll = {:poll} && user = {:user}",
		dbx.Params{"poll": pollID, "user": userID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check receipt: %w", err)
	}
	return true, nil
}

// CastVote runs inside a single transaction. The unique (poll, user) index
// on votes rejects a receipt written concurrently for the same user.
func (r *PBPollRepo) CastVote(pollID, userID string, optionIndex int) (*core.Poll, error) {
	var committed *core.Poll

	err := r.app.RunInTransaction(func(txApp pbCore.App) error {
		record, err := txApp.FindRecordById(core.CollectionPolls, pollID)
		if err != nil {
			return wrapNotFound("poll", err)
		}

		poll := r.toDomain(record)
		if !poll.IsOpen {
			return core.ErrPollClosed
		}
		if optionIndex < 0 || optionIndex >= len(poll.Options) {
			return fmt.Errorf("option %d out of range: %w", optionIndex, core.ErrInvalidInput)
		}

		poll.Options[optionIndex].Votes++
		record.Set("options", poll.Options)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save poll: %w", err)
		}

		votes, err := txApp.FindCollectionByNameOrId(core.CollectionVotes)
		if err != nil {
			return err
		}
		receipt := pbCore.NewRecord(votes)
		receipt.Set("poll", pollID)
		receipt.Set("user", userID)
		receipt.Set("option_index", optionIndex)
		if err := txApp.Save(receipt); err != nil {
			return fmt.Errorf("save receipt: %w", err)
		}

		committed = poll
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		if isConflict(err) {
			return nil, fmt.Errorf("%w: %v", core.ErrVoteConflict, err)
		}
		return nil, err
	}

	return committed, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{core.ErrNotFound, core.ErrPollClosed, core.ErrInvalidInput} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// isConflict reports aborts caused by a concurrent writer: a busy/locked
// database or the receipt unique index.
func isConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"unique constraint failed", "must be unique", "database is locked", "sqlite_busy"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
