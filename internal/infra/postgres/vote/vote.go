package infra_postgres_vote

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_vote "github.com/humanbelnik/matchpoint/core/internal/usecase/vote"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) roomIDByCode(ctx context.Context, code model.RoomCode) (uuid.UUID, error) {
	var roomID uuid.UUID

	query := `SELECT id FROM rooms WHERE code = $1`

	err := d.db.GetContext(ctx, &roomID, query, string(code))
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, usecase_vote.ErrResourceNotFound
		}
		return uuid.Nil, err
	}

	return roomID, nil
}

func (d *Driver) RoomStatusByCode(ctx context.Context, code model.RoomCode) (string, error) {
	var status string

	query := `SELECT status FROM rooms WHERE code = $1`

	err := d.db.GetContext(ctx, &status, query, string(code))
	if err != nil {
		if err == sql.ErrNoRows {
			return "", usecase_vote.ErrResourceNotFound
		}
		return "", err
	}

	return status, nil
}

func (d *Driver) ParticipantsCount(ctx context.Context, code model.RoomCode) (int, error) {
	var count int

	query := `
		SELECT COUNT(p.token)
		FROM participants p
		JOIN rooms r ON p.room_id = r.id
		WHERE r.code = $1
	`

	err := d.db.GetContext(ctx, &count, query, string(code))
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, usecase_vote.ErrResourceNotFound
		}
		return 0, err
	}

	return count, nil
}

// AddVote keeps first-write-wins semantics: the primary key on
// (room_id, content_id, token) swallows retries and vote flips alike.
func (d *Driver) AddVote(ctx context.Context, vote model.Vote) (bool, error) {
	roomID, err := d.roomIDByCode(ctx, vote.RoomCode)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO votes (room_id, content_id, token, value, cast_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, content_id, token)
		DO NOTHING
	`

	result, err := d.db.ExecContext(ctx, query,
		roomID,
		int64(vote.ContentID),
		string(vote.Token),
		vote.Value,
		vote.CastAt,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (d *Driver) LikeCount(ctx context.Context, code model.RoomCode, contentID model.ContentID) (int, error) {
	var count int

	query := `
		SELECT COUNT(v.token)
		FROM votes v
		JOIN rooms r ON v.room_id = r.id
		WHERE r.code = $1 AND v.content_id = $2 AND v.value = $3
	`

	err := d.db.GetContext(ctx, &count, query, string(code), int64(contentID), model.VoteLike)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// AddMatch is the idempotency point for racing quorum checks: two
// deciding votes can both land here, the second insert is a no-op.
func (d *Driver) AddMatch(ctx context.Context, match model.Match) error {
	roomID, err := d.roomIDByCode(ctx, match.RoomCode)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches (room_id, content_id, title, poster_link, release_date, matched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (room_id, content_id)
		DO NOTHING
	`

	_, err = d.db.ExecContext(ctx, query,
		roomID,
		int64(match.ContentID),
		match.Meta.Title,
		match.Meta.PosterLink,
		match.Meta.ReleaseDate,
		match.MatchedAt,
	)
	return err
}
