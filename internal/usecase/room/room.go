package usecase_room

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	"github.com/humanbelnik/matchpoint/core/internal/roomcode"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available room codes")
	ErrResourceNotFound = errors.New("no such resource")
	ErrRoomNotJoinable  = errors.New("room already started")
	ErrConflictState    = errors.New("room is not in a valid state for this operation")
	ErrPoolGeneration   = errors.New("pool generation failed")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=RoomRepository --output=./mocks/repository --filename=repository.go
type RoomRepository interface {
	Create(ctx context.Context, room model.Room, host model.Participant) error
	RoomByCode(ctx context.Context, code model.RoomCode) (model.Room, error)
	SetStatusByCode(ctx context.Context, code model.RoomCode, status string) error
	SetPool(ctx context.Context, code model.RoomCode, pool []model.ContentID, status string) error
	AddParticipant(ctx context.Context, p model.Participant) error
	Participants(ctx context.Context, code model.RoomCode) ([]model.Participant, error)
	ParticipantsCount(ctx context.Context, code model.RoomCode) (int, error)
	IsParticipant(ctx context.Context, code model.RoomCode, token model.IdentityToken) (bool, error)
	VotesByCode(ctx context.Context, code model.RoomCode) ([]model.Vote, error)
	MatchesByCode(ctx context.Context, code model.RoomCode) ([]model.Match, error)

	// Children first, then the room itself. Returns codes of reaped rooms.
	ReapStale(ctx context.Context, maxAge time.Duration) ([]model.RoomCode, error)
}

//go:generate mockery --name=Catalog --output=./mocks/catalog --filename=catalog.go
type Catalog interface {
	DiscoverPage(ctx context.Context, f model.Filters, page int) ([]model.ContentID, error)
}

//go:generate mockery --name=CodeSet --output=./mocks/codeset --filename=codeset.go
type CodeSet interface {
	Add(ctx context.Context, code model.RoomCode) error
	Remove(ctx context.Context, codes ...model.RoomCode) error
	Contains(ctx context.Context, code model.RoomCode) (bool, error)
}

type PoolBuilder interface {
	Build(pages ...[]model.ContentID) []model.ContentID
}

const (
	codeRetries = 10
	// The catalog pages ~20 ids each; three pages feed a 60-item pool
	// with headroom for cross-page duplicates.
	catalogPages   = 3
	catalogTimeout = 10 * time.Second

	DefaultReapAge = 24 * time.Hour
)

type Usecase struct {
	rooms   RoomRepository
	catalog Catalog
	codes   CodeSet
	pool    PoolBuilder

	// Stale rooms get swept on every Nth creation so the reaper
	// endpoint is a convenience, not a liveness requirement. The
	// counter is shared across concurrent create handlers.
	cleanupPeriod int
	createsCount  atomic.Int64
}

func New(
	rooms RoomRepository,
	catalog Catalog,
	codes CodeSet,
	pool PoolBuilder,
	cleanup int,
) *Usecase {
	if cleanup <= 0 {
		cleanup = 50 /* default */
	}

	return &Usecase{
		rooms:         rooms,
		catalog:       catalog,
		codes:         codes,
		pool:          pool,
		cleanupPeriod: cleanup,
	}
}

// Create allocates a room in the waiting state and seats the host as its
// first participant. The returned token must be set on the host's client
// for every follow-up call.
func (u *Usecase) Create(ctx context.Context, hostName string, filters model.Filters) (model.RoomCode, model.IdentityToken, error) {
	if u.createsCount.Add(1)%int64(u.cleanupPeriod) == 0 {
		if _, err := u.ReapStale(ctx, DefaultReapAge); err != nil {
			return model.EmptyRoomCode, model.EmptyIdentityToken, errors.Join(ErrInternal, err)
		}
	}

	hostToken := model.NewIdentityToken()

	code, err := u.createWaitingRoom(ctx, hostToken, hostName, filters)
	if err != nil {
		return model.EmptyRoomCode, model.EmptyIdentityToken, err
	}
	return code, hostToken, nil
}

// Codes can conflict among active rooms. The redis set is a fast probe;
// the insert's unique constraint stays authoritative under races.
func (u *Usecase) createWaitingRoom(ctx context.Context, hostToken model.IdentityToken, hostName string, filters model.Filters) (model.RoomCode, error) {
	var retries = codeRetries
	for retries > 0 {
		code := roomcode.Generate()

		if taken, err := u.codes.Contains(ctx, code); err == nil && taken {
			retries--
			continue
		}

		now := time.Now()
		err := u.rooms.Create(ctx, model.Room{
			ID:        uuid.New(),
			Code:      code,
			Status:    model.StatusWaiting,
			Filters:   filters,
			CreatedAt: now,
		}, model.Participant{
			Token:       hostToken,
			RoomCode:    code,
			DisplayName: hostName,
			IsHost:      true,
			JoinedAt:    now,
		})
		if err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
				continue
			}
			return model.EmptyRoomCode, errors.Join(ErrInternal, err)
		}

		// Best effort: a missing set entry only costs one extra
		// insert attempt on a future conflict.
		_ = u.codes.Add(ctx, code)
		return code, nil
	}
	return model.EmptyRoomCode, ErrRoomsUnavailable
}

// Join admits a participant while the room is still waiting. A missing
// room and a room that already started are distinct rejections so the
// client can word them differently.
func (u *Usecase) Join(ctx context.Context, code model.RoomCode, displayName string) (model.IdentityToken, model.Filters, error) {
	room, err := u.rooms.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.EmptyIdentityToken, model.Filters{}, ErrResourceNotFound
		}
		return model.EmptyIdentityToken, model.Filters{}, errors.Join(ErrInternal, err)
	}

	if room.Status != model.StatusWaiting {
		return model.EmptyIdentityToken, model.Filters{}, ErrRoomNotJoinable
	}

	token := model.NewIdentityToken()
	if err := u.rooms.AddParticipant(ctx, model.Participant{
		Token:       token,
		RoomCode:    code,
		DisplayName: displayName,
		JoinedAt:    time.Now(),
	}); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.EmptyIdentityToken, model.Filters{}, ErrResourceNotFound
		}
		return model.EmptyIdentityToken, model.Filters{}, errors.Join(ErrInternal, err)
	}

	return token, room.Filters, nil
}

// State assembles the composite read model. All lookups are indexed by
// room code so clients can poll this on every swipe.
func (u *Usecase) State(ctx context.Context, code model.RoomCode) (model.RoomState, error) {
	room, err := u.rooms.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.RoomState{}, ErrResourceNotFound
		}
		return model.RoomState{}, errors.Join(ErrInternal, err)
	}

	participants, err := u.rooms.Participants(ctx, code)
	if err != nil {
		return model.RoomState{}, errors.Join(ErrInternal, err)
	}
	votes, err := u.rooms.VotesByCode(ctx, code)
	if err != nil {
		return model.RoomState{}, errors.Join(ErrInternal, err)
	}
	matches, err := u.rooms.MatchesByCode(ctx, code)
	if err != nil {
		return model.RoomState{}, errors.Join(ErrInternal, err)
	}

	return model.RoomState{
		Room:         room,
		Participants: participants,
		Votes:        votes,
		Matches:      matches,
	}, nil
}

// GeneratePool materializes the candidate pool and flips the room to
// voting. One-shot: a catalog failure or an empty pool moves the room to
// failed, and a failed room stays failed. The error is returned as well
// so the triggering client does not have to wait for a poll cycle.
func (u *Usecase) GeneratePool(ctx context.Context, code model.RoomCode) error {
	room, err := u.rooms.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.Status != model.StatusWaiting {
		return ErrConflictState
	}

	pool, err := u.fetchPool(ctx, room.Filters)
	if err != nil || len(pool) == 0 {
		if err == nil {
			err = errors.New("catalog returned no candidates for filters")
		}
		if failErr := u.rooms.SetStatusByCode(ctx, code, model.StatusFailed); failErr != nil {
			return errors.Join(ErrPoolGeneration, err, failErr)
		}
		return errors.Join(ErrPoolGeneration, err)
	}

	if err := u.rooms.SetPool(ctx, code, pool, model.StatusVoting); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) fetchPool(ctx context.Context, filters model.Filters) ([]model.ContentID, error) {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	pages := make([][]model.ContentID, 0, catalogPages)
	for page := 1; page <= catalogPages; page++ {
		ids, err := u.catalog.DiscoverPage(ctx, filters, page)
		if err != nil {
			return nil, err
		}
		pages = append(pages, ids)
	}

	return u.pool.Build(pages...), nil
}

// Finish moves a voting room to matched regardless of how many matches
// exist. Groups stop early on purpose; an empty result screen is a valid
// one. Any other state is rejected: a waiting room has no session to
// finish and failed is terminal.
func (u *Usecase) Finish(ctx context.Context, code model.RoomCode) error {
	room, err := u.rooms.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.Status != model.StatusVoting {
		return ErrConflictState
	}

	if err := u.rooms.SetStatusByCode(ctx, code, model.StatusMatched); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) IsParticipant(ctx context.Context, code model.RoomCode, token model.IdentityToken) (bool, error) {
	isParticipant, err := u.rooms.IsParticipant(ctx, code, token)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return isParticipant, nil
}

func (u *Usecase) ParticipantsCount(ctx context.Context, code model.RoomCode) (int, error) {
	count, err := u.rooms.ParticipantsCount(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, errors.Join(ErrInternal, err)
	}
	return count, nil
}

// ReapStale deletes rooms older than maxAge along with their
// participants and votes, and returns how many rooms went away.
func (u *Usecase) ReapStale(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultReapAge
	}

	reaped, err := u.rooms.ReapStale(ctx, maxAge)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}

	if len(reaped) > 0 {
		_ = u.codes.Remove(ctx, reaped...)
	}
	return len(reaped), nil
}
