// Package usecase_vote records swipe votes and detects matches.
//
// Quorum policy: a match is unanimity against the participant count read
// at the moment of the deciding vote. Someone joining mid-session raises
// the bar for every later vote; matches already committed stay committed.
// Counts are always recomputed from storage, never cached in process, so
// any instance can handle any vote.
package usecase_vote

import (
	"context"
	"errors"
	"time"

	"github.com/humanbelnik/matchpoint/core/internal/model"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrVotingClosed     = errors.New("room is not voting")
	ErrBadVote          = errors.New("invalid vote value")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=VoteRepository --output=./mocks/repository --filename=repository.go
type VoteRepository interface {
	RoomStatusByCode(ctx context.Context, code model.RoomCode) (string, error)
	ParticipantsCount(ctx context.Context, code model.RoomCode) (int, error)

	// AddVote inserts the vote unless the (room, content, token) triple
	// already exists. Reports whether a row was actually written.
	AddVote(ctx context.Context, vote model.Vote) (bool, error)
	LikeCount(ctx context.Context, code model.RoomCode, contentID model.ContentID) (int, error)
	// AddMatch appends a match unless one exists for this content id.
	AddMatch(ctx context.Context, match model.Match) error
}

type Usecase struct {
	votes VoteRepository
}

func New(votes VoteRepository) *Usecase {
	return &Usecase{
		votes: votes,
	}
}

// Submit records a vote and reports whether it completed a match.
//
// Duplicate submits are a success no-op: flaky clients retry, and a
// retry must not double-count. Only likes can trigger the quorum check;
// a dislike just exists as part of the room history.
//
// The count-compare-append sequence is not one transaction. Two final
// votes racing can both observe quorum and both try the append; the
// append's own per-content dedup is what keeps matches unique, so that
// check must never be removed in favor of an in-process lock.
func (u *Usecase) Submit(
	ctx context.Context,
	code model.RoomCode,
	token model.IdentityToken,
	contentID model.ContentID,
	value string,
	meta model.DisplayMeta,
) (matched bool, err error) {
	if !model.ValidVoteValue(value) {
		return false, ErrBadVote
	}

	status, err := u.votes.RoomStatusByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	if status != model.StatusVoting {
		return false, ErrVotingClosed
	}

	inserted, err := u.votes.AddVote(ctx, model.Vote{
		RoomCode:  code,
		ContentID: contentID,
		Token:     token,
		Value:     value,
		CastAt:    time.Now(),
	})
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	if !inserted || value == model.VoteDislike {
		return false, nil
	}

	participants, err := u.votes.ParticipantsCount(ctx, code)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	likes, err := u.votes.LikeCount(ctx, code, contentID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	if participants == 0 || likes < participants {
		return false, nil
	}

	if err := u.votes.AddMatch(ctx, model.Match{
		RoomCode:  code,
		ContentID: contentID,
		Meta:      meta,
		MatchedAt: time.Now(),
	}); err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	return true, nil
}
