package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_room "github.com/humanbelnik/matchpoint/core/internal/usecase/room"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID          uuid.UUID     `db:"id"`
	Code        string        `db:"code"`
	Status      string        `db:"status"`
	Kind        string        `db:"kind"`
	GenreIDs    pq.Int64Array `db:"genre_ids"`
	ProviderIDs pq.Int64Array `db:"provider_ids"`
	Pool        pq.Int64Array `db:"pool"`
	CreatedAt   time.Time     `db:"created_at"`
}

type participantDTO struct {
	Token       string    `db:"token"`
	RoomCode    string    `db:"code"`
	DisplayName string    `db:"display_name"`
	IsHost      bool      `db:"is_host"`
	JoinedAt    time.Time `db:"joined_at"`
}

type voteDTO struct {
	RoomCode  string    `db:"code"`
	ContentID int64     `db:"content_id"`
	Token     string    `db:"token"`
	Value     string    `db:"value"`
	CastAt    time.Time `db:"cast_at"`
}

type matchDTO struct {
	RoomCode    string    `db:"code"`
	ContentID   int64     `db:"content_id"`
	Title       string    `db:"title"`
	PosterLink  string    `db:"poster_link"`
	ReleaseDate string    `db:"release_date"`
	MatchedAt   time.Time `db:"matched_at"`
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}

func toRoom(dto roomDTO) model.Room {
	pool := make([]model.ContentID, 0, len(dto.Pool))
	for _, id := range dto.Pool {
		pool = append(pool, model.ContentID(id))
	}

	return model.Room{
		ID:     dto.ID,
		Code:   model.RoomCode(dto.Code),
		Status: dto.Status,
		Filters: model.Filters{
			Kind:        model.ContentKind(dto.Kind),
			GenreIDs:    []int64(dto.GenreIDs),
			ProviderIDs: []int64(dto.ProviderIDs),
		},
		Pool:      pool,
		CreatedAt: dto.CreatedAt,
	}
}

// Create inserts the room and its host in one transaction so a crash
// between the two cannot leave a hostless room around.
func (d *Driver) Create(ctx context.Context, room model.Room, host model.Participant) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertRoomQuery := `
		INSERT INTO rooms (id, code, status, kind, genre_ids, provider_ids, pool, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, '{}', $7)
	`

	_, err = tx.ExecContext(ctx, insertRoomQuery,
		room.ID,
		string(room.Code),
		room.Status,
		string(room.Filters.Kind),
		pq.Array(room.Filters.GenreIDs),
		pq.Array(room.Filters.ProviderIDs),
		room.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	insertHostQuery := `
		INSERT INTO participants (token, room_id, display_name, is_host, joined_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`

	_, err = tx.ExecContext(ctx, insertHostQuery,
		string(host.Token),
		room.ID,
		host.DisplayName,
		host.JoinedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) RoomByCode(ctx context.Context, code model.RoomCode) (model.Room, error) {
	var dto roomDTO

	query := `
		SELECT id, code, status, kind, genre_ids, provider_ids, pool, created_at
		FROM rooms
		WHERE code = $1
	`

	err := d.db.GetContext(ctx, &dto, query, string(code))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return toRoom(dto), nil
}

func (d *Driver) SetStatusByCode(ctx context.Context, code model.RoomCode, status string) error {
	query := `
		UPDATE rooms
		SET status = $1
		WHERE code = $2
	`

	result, err := d.db.ExecContext(ctx, query, status, string(code))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) SetPool(ctx context.Context, code model.RoomCode, pool []model.ContentID, status string) error {
	ids := make([]int64, 0, len(pool))
	for _, id := range pool {
		ids = append(ids, int64(id))
	}

	query := `
		UPDATE rooms
		SET pool = $1, status = $2
		WHERE code = $3
	`

	result, err := d.db.ExecContext(ctx, query, pq.Array(ids), status, string(code))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) AddParticipant(ctx context.Context, p model.Participant) error {
	var roomID uuid.UUID
	queryGetRoomID := `SELECT id FROM rooms WHERE code = $1`

	err := d.db.GetContext(ctx, &roomID, queryGetRoomID, string(p.RoomCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return usecase_room.ErrResourceNotFound
		}
		return err
	}

	query := `
		INSERT INTO participants (token, room_id, display_name, is_host, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = d.db.ExecContext(ctx, query,
		string(p.Token),
		roomID,
		p.DisplayName,
		p.IsHost,
		p.JoinedAt,
	)
	return err
}

func (d *Driver) Participants(ctx context.Context, code model.RoomCode) ([]model.Participant, error) {
	var dtos []participantDTO

	query := `
		SELECT p.token, r.code, p.display_name, p.is_host, p.joined_at
		FROM participants p
		JOIN rooms r ON p.room_id = r.id
		WHERE r.code = $1
		ORDER BY p.joined_at
	`

	err := d.db.SelectContext(ctx, &dtos, query, string(code))
	if err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(dtos))
	for _, dto := range dtos {
		participants = append(participants, model.Participant{
			Token:       model.IdentityToken(dto.Token),
			RoomCode:    model.RoomCode(dto.RoomCode),
			DisplayName: dto.DisplayName,
			IsHost:      dto.IsHost,
			JoinedAt:    dto.JoinedAt,
		})
	}
	return participants, nil
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
			return 0, usecase_room.ErrResourceNotFound
		}
		return 0, err
	}

	return count, nil
}

func (d *Driver) IsParticipant(ctx context.Context, code model.RoomCode, token model.IdentityToken) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM participants p
			JOIN rooms r ON p.room_id = r.id
			WHERE r.code = $1 AND p.token = $2
		)
	`

	var exists bool
	err := d.db.GetContext(ctx, &exists, query, string(code), string(token))
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (d *Driver) VotesByCode(ctx context.Context, code model.RoomCode) ([]model.Vote, error) {
	var dtos []voteDTO

	query := `
		SELECT r.code, v.content_id, v.token, v.value, v.cast_at
		FROM votes v
		JOIN rooms r ON v.room_id = r.id
		WHERE r.code = $1
		ORDER BY v.cast_at
	`

	err := d.db.SelectContext(ctx, &dtos, query, string(code))
	if err != nil {
		return nil, err
	}

	votes := make([]model.Vote, 0, len(dtos))
	for _, dto := range dtos {
		votes = append(votes, model.Vote{
			RoomCode:  model.RoomCode(dto.RoomCode),
			ContentID: model.ContentID(dto.ContentID),
			Token:     model.IdentityToken(dto.Token),
			Value:     dto.Value,
			CastAt:    dto.CastAt,
		})
	}
	return votes, nil
}

func (d *Driver) MatchesByCode(ctx context.Context, code model.RoomCode) ([]model.Match, error) {
	var dtos []matchDTO

	query := `
		SELECT r.code, m.content_id, m.title, m.poster_link, m.release_date, m.matched_at
		FROM matches m
		JOIN rooms r ON m.room_id = r.id
		WHERE r.code = $1
		ORDER BY m.matched_at
	`

	err := d.db.SelectContext(ctx, &dtos, query, string(code))
	if err != nil {
		return nil, err
	}

	matches := make([]model.Match, 0, len(dtos))
	for _, dto := range dtos {
		matches = append(matches, model.Match{
			RoomCode:  model.RoomCode(dto.RoomCode),
			ContentID: model.ContentID(dto.ContentID),
			Meta: model.DisplayMeta{
				Title:       dto.Title,
				PosterLink:  dto.PosterLink,
				ReleaseDate: dto.ReleaseDate,
			},
			MatchedAt: dto.MatchedAt,
		})
	}
	return matches, nil
}

// ReapStale removes everything belonging to rooms past the age cutoff.
// Votes and participants go before their rooms so an interrupted sweep
// can only leave a childless room behind, never orphaned children.
func (d *Driver) ReapStale(ctx context.Context, maxAge time.Duration) ([]model.RoomCode, error) {
	cutoff := time.Now().Add(-maxAge)

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	type staleDTO struct {
		ID   uuid.UUID `db:"id"`
		Code string    `db:"code"`
	}
	var stale []staleDTO

	selectStaleQuery := `
		SELECT id, code
		FROM rooms
		WHERE created_at < $1
	`

	if err := tx.SelectContext(ctx, &stale, selectStaleQuery, cutoff); err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, tx.Commit()
	}

	ids := make([]uuid.UUID, 0, len(stale))
	codes := make([]model.RoomCode, 0, len(stale))
	for _, s := range stale {
		ids = append(ids, s.ID)
		codes = append(codes, model.RoomCode(s.Code))
	}

	for _, query := range []string{
		`DELETE FROM votes WHERE room_id = ANY($1)`,
		`DELETE FROM matches WHERE room_id = ANY($1)`,
		`DELETE FROM participants WHERE room_id = ANY($1)`,
		`DELETE FROM rooms WHERE id = ANY($1)`,
	} {
		if _, err := tx.ExecContext(ctx, query, pq.Array(ids)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return codes, nil
}
