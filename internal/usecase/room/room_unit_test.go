package usecase_room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/humanbelnik/matchpoint/core/internal/model"
	catalog_mocks "github.com/humanbelnik/matchpoint/core/internal/usecase/room/mocks/catalog"
	codeset_mocks "github.com/humanbelnik/matchpoint/core/internal/usecase/room/mocks/codeset"
	repo_mocks "github.com/humanbelnik/matchpoint/core/internal/usecase/room/mocks/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	roomRepo *repo_mocks.RoomRepository
	catalog  *catalog_mocks.Catalog
	codes    *codeset_mocks.CodeSet
	ctx      context.Context
}

type fixedPoolBuilder struct{}

func (fixedPoolBuilder) Build(pages ...[]model.ContentID) []model.ContentID {
	seen := make(map[model.ContentID]struct{})
	var merged []model.ContentID
	for _, page := range pages {
		for _, id := range page {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}

func initResources(t provider.T) *resources {
	roomRepo := repo_mocks.NewRoomRepository(t)
	catalog := catalog_mocks.NewCatalog(t)
	codes := codeset_mocks.NewCodeSet(t)
	usecase := New(roomRepo, catalog, codes, fixedPoolBuilder{}, 50)

	return &resources{
		usecase:  usecase,
		roomRepo: roomRepo,
		catalog:  catalog,
		codes:    codes,
		ctx:      context.Background(),
	}
}

func validRoomCode() model.RoomCode {
	return model.RoomCode("WXYZ")
}

func validFilters() model.Filters {
	return model.Filters{
		Kind:     model.KindMovie,
		GenreIDs: []int64{28},
	}
}

func waitingRoom() model.Room {
	return model.Room{
		Code:      validRoomCode(),
		Status:    model.StatusWaiting,
		Filters:   validFilters(),
		CreatedAt: time.Now(),
	}
}

func (suite *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should create room successfully",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
					Return(false, nil).Once()
				r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
					Return(nil).Once()
				r.codes.On("Add", r.ctx, mock.AnythingOfType("model.RoomCode")).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should give up after exhausting code retries",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
					Return(false, nil).Times(10)
				r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
					Return(ErrCodeConflict).Times(10)
			},
			expectError:   true,
			expectedError: ErrRoomsUnavailable,
		},
		{
			name: "Should not hit storage while the code set reports conflicts",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
					Return(true, nil).Times(10)
			},
			expectError:   true,
			expectedError: ErrRoomsUnavailable,
		},
		{
			name: "Should wrap unexpected storage errors",
			setupMocks: func(r *resources) {
				r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
					Return(false, nil).Once()
				r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
					Return(errors.New("connection reset")).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			roomCode, hostToken, err := r.usecase.Create(r.ctx, "Alice", validFilters())

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, roomCode)
				assert.Empty(t, hostToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, roomCode)
				assert.NotEmpty(t, hostToken)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestCreateSeatsHost(t provider.T) {
	t.Parallel()
	r := initResources(t)

	var seatedHost model.Participant
	r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(false, nil).Once()
	r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
		Run(func(args mock.Arguments) {
			seatedHost = args.Get(2).(model.Participant)
		}).
		Return(nil).Once()
	r.codes.On("Add", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(nil).Once()

	roomCode, hostToken, err := r.usecase.Create(r.ctx, "Alice", validFilters())

	assert.NoError(t, err)
	assert.True(t, seatedHost.IsHost)
	assert.Equal(t, "Alice", seatedHost.DisplayName)
	assert.Equal(t, hostToken, seatedHost.Token)
	assert.Equal(t, roomCode, seatedHost.RoomCode)
}

func (suite *UsecaseRoomUnitSuite) TestCreateSweepsStaleRooms(t provider.T) {
	t.Parallel()
	r := initResources(t)

	// cleanup on every creation
	r.usecase.cleanupPeriod = 1

	r.roomRepo.On("ReapStale", r.ctx, DefaultReapAge).
		Return([]model.RoomCode{"ABCD"}, nil).Once()
	r.codes.On("Remove", r.ctx, model.RoomCode("ABCD")).
		Return(nil).Once()
	r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(false, nil).Once()
	r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
		Return(nil).Once()
	r.codes.On("Add", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(nil).Once()

	_, _, err := r.usecase.Create(r.ctx, "Alice", validFilters())

	assert.NoError(t, err)
	r.roomRepo.AssertExpectations(t)
}

func (suite *UsecaseRoomUnitSuite) TestCreateSweepsOnEveryNth(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.usecase.cleanupPeriod = 2

	r.codes.On("Contains", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(false, nil).Times(2)
	r.roomRepo.On("Create", r.ctx, mock.AnythingOfType("model.Room"), mock.AnythingOfType("model.Participant")).
		Return(nil).Times(2)
	r.codes.On("Add", r.ctx, mock.AnythingOfType("model.RoomCode")).
		Return(nil).Times(2)
	// only the second creation crosses the period
	r.roomRepo.On("ReapStale", r.ctx, DefaultReapAge).
		Return(nil, nil).Once()

	_, _, err := r.usecase.Create(r.ctx, "Alice", validFilters())
	assert.NoError(t, err)
	r.roomRepo.AssertNotCalled(t, "ReapStale", mock.Anything, mock.Anything)

	_, _, err = r.usecase.Create(r.ctx, "Bob", validFilters())
	assert.NoError(t, err)
	r.roomRepo.AssertExpectations(t)
}

func (suite *UsecaseRoomUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should join waiting room",
			setupMocks: func(r *resources) {
				r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
					Return(waitingRoom(), nil).Once()
				r.roomRepo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.Participant")).
					Return(nil).Once()
			},
			expectError: false,
		},
		{
			name: "Should reject joining a missing room",
			setupMocks: func(r *resources) {
				r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
					Return(model.Room{}, ErrResourceNotFound).Once()
			},
			expectError:   true,
			expectedError: ErrResourceNotFound,
		},
		{
			name: "Should reject joining a room that already started",
			setupMocks: func(r *resources) {
				room := waitingRoom()
				room.Status = model.StatusVoting
				r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
					Return(room, nil).Once()
			},
			expectError:   true,
			expectedError: ErrRoomNotJoinable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			token, filters, err := r.usecase.Join(r.ctx, validRoomCode(), "Bob")

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, token)
				r.roomRepo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, validFilters(), filters)
			}
			r.roomRepo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestGeneratePool(t provider.T) {
	t.Parallel()

	t.Run("Should build pool and start voting", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(waitingRoom(), nil).Once()
		r.catalog.On("DiscoverPage", mock.Anything, validFilters(), 1).
			Return([]model.ContentID{550, 603}, nil).Once()
		r.catalog.On("DiscoverPage", mock.Anything, validFilters(), 2).
			Return([]model.ContentID{603, 680}, nil).Once()
		r.catalog.On("DiscoverPage", mock.Anything, validFilters(), 3).
			Return([]model.ContentID{}, nil).Once()

		var storedPool []model.ContentID
		r.roomRepo.On("SetPool", r.ctx, validRoomCode(), mock.AnythingOfType("[]model.ContentID"), model.StatusVoting).
			Run(func(args mock.Arguments) {
				storedPool = args.Get(2).([]model.ContentID)
			}).
			Return(nil).Once()

		err := r.usecase.GeneratePool(r.ctx, validRoomCode())

		assert.NoError(t, err)
		assert.ElementsMatch(t, []model.ContentID{550, 603, 680}, storedPool)
	})

	t.Run("Should fail the room when catalog errors", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(waitingRoom(), nil).Once()
		r.catalog.On("DiscoverPage", mock.Anything, validFilters(), 1).
			Return(nil, errors.New("upstream 503")).Once()
		r.roomRepo.On("SetStatusByCode", r.ctx, validRoomCode(), model.StatusFailed).
			Return(nil).Once()

		err := r.usecase.GeneratePool(r.ctx, validRoomCode())

		assert.ErrorIs(t, err, ErrPoolGeneration)
		r.roomRepo.AssertNotCalled(t, "SetPool", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail the room when catalog returns nothing", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(waitingRoom(), nil).Once()
		for page := 1; page <= 3; page++ {
			r.catalog.On("DiscoverPage", mock.Anything, validFilters(), page).
				Return([]model.ContentID{}, nil).Once()
		}
		r.roomRepo.On("SetStatusByCode", r.ctx, validRoomCode(), model.StatusFailed).
			Return(nil).Once()

		err := r.usecase.GeneratePool(r.ctx, validRoomCode())

		assert.ErrorIs(t, err, ErrPoolGeneration)
	})

	t.Run("Should refuse on a room that is not waiting", func(t provider.T) {
		r := initResources(t)

		room := waitingRoom()
		room.Status = model.StatusFailed
		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(room, nil).Once()

		err := r.usecase.GeneratePool(r.ctx, validRoomCode())

		assert.ErrorIs(t, err, ErrConflictState)
		r.catalog.AssertNotCalled(t, "DiscoverPage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (suite *UsecaseRoomUnitSuite) TestFinish(t provider.T) {
	t.Parallel()

	t.Run("Should finish a voting room", func(t provider.T) {
		r := initResources(t)

		room := waitingRoom()
		room.Status = model.StatusVoting
		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(room, nil).Once()
		r.roomRepo.On("SetStatusByCode", r.ctx, validRoomCode(), model.StatusMatched).
			Return(nil).Once()

		assert.NoError(t, r.usecase.Finish(r.ctx, validRoomCode()))
	})

	t.Run("Should report a missing room", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(model.Room{}, ErrResourceNotFound).Once()

		assert.ErrorIs(t, r.usecase.Finish(r.ctx, validRoomCode()), ErrResourceNotFound)
		r.roomRepo.AssertNotCalled(t, "SetStatusByCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should not resurrect a failed room", func(t provider.T) {
		r := initResources(t)

		room := waitingRoom()
		room.Status = model.StatusFailed
		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(room, nil).Once()

		assert.ErrorIs(t, r.usecase.Finish(r.ctx, validRoomCode()), ErrConflictState)
		r.roomRepo.AssertNotCalled(t, "SetStatusByCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse finishing a room that never started voting", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("RoomByCode", r.ctx, validRoomCode()).
			Return(waitingRoom(), nil).Once()

		assert.ErrorIs(t, r.usecase.Finish(r.ctx, validRoomCode()), ErrConflictState)
		r.roomRepo.AssertNotCalled(t, "SetStatusByCode", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (suite *UsecaseRoomUnitSuite) TestState(t provider.T) {
	t.Parallel()
	r := initResources(t)

	room := waitingRoom()
	participants := []model.Participant{
		{Token: "t1", RoomCode: room.Code, DisplayName: "Alice", IsHost: true},
		{Token: "t2", RoomCode: room.Code, DisplayName: "Bob"},
	}
	votes := []model.Vote{{RoomCode: room.Code, ContentID: 550, Token: "t1", Value: model.VoteLike}}
	matches := []model.Match{{RoomCode: room.Code, ContentID: 550}}

	r.roomRepo.On("RoomByCode", r.ctx, room.Code).Return(room, nil).Once()
	r.roomRepo.On("Participants", r.ctx, room.Code).Return(participants, nil).Once()
	r.roomRepo.On("VotesByCode", r.ctx, room.Code).Return(votes, nil).Once()
	r.roomRepo.On("MatchesByCode", r.ctx, room.Code).Return(matches, nil).Once()

	state, err := r.usecase.State(r.ctx, room.Code)

	assert.NoError(t, err)
	assert.Equal(t, room, state.Room)
	assert.Equal(t, participants, state.Participants)
	assert.Equal(t, votes, state.Votes)
	assert.Equal(t, matches, state.Matches)
}

func (suite *UsecaseRoomUnitSuite) TestReapStale(t provider.T) {
	t.Parallel()

	t.Run("Should count reaped rooms and clear their codes", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("ReapStale", r.ctx, 48*time.Hour).
			Return([]model.RoomCode{"ABCD", "EFGH"}, nil).Once()
		r.codes.On("Remove", r.ctx, model.RoomCode("ABCD"), model.RoomCode("EFGH")).
			Return(nil).Once()

		count, err := r.usecase.ReapStale(r.ctx, 48*time.Hour)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Should fall back to the default age", func(t provider.T) {
		r := initResources(t)

		r.roomRepo.On("ReapStale", r.ctx, DefaultReapAge).
			Return(nil, nil).Once()

		count, err := r.usecase.ReapStale(r.ctx, 0)

		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestUsecaseRoomUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
