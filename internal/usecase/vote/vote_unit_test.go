package usecase_vote

import (
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/matchpoint/core/internal/model"
	mocks "github.com/humanbelnik/matchpoint/core/internal/usecase/vote/mocks/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	repo    *mocks.VoteRepository
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	repo := mocks.NewVoteRepository(t)
	usecase := New(repo)

	return &resources{
		usecase: usecase,
		repo:    repo,
		ctx:     context.Background(),
	}
}

/*
'Object Mother' pattern
aka cooks specific objects.
*/
func validRoomCode() model.RoomCode {
	return model.RoomCode("WXYZ")
}

func validToken() model.IdentityToken {
	return model.IdentityToken("token-alice")
}

func validContentID() model.ContentID {
	return model.ContentID(550)
}

func validMeta() model.DisplayMeta {
	return model.DisplayMeta{
		Title:       "Fight Club",
		PosterLink:  "/poster.jpg",
		ReleaseDate: "1999-10-15",
	}
}

func (suite *UsecaseVoteUnitSuite) TestSubmitRejections(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		value         string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name:          "Should reject unknown vote value",
			value:         "maybe",
			setupMocks:    func(r *resources) {},
			expectedError: ErrBadVote,
		},
		{
			name:  "Should reject vote for a missing room",
			value: model.VoteLike,
			setupMocks: func(r *resources) {
				r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
					Return("", ErrResourceNotFound).Once()
			},
			expectedError: ErrResourceNotFound,
		},
		{
			name:  "Should reject vote while the room is waiting",
			value: model.VoteLike,
			setupMocks: func(r *resources) {
				r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
					Return(model.StatusWaiting, nil).Once()
			},
			expectedError: ErrVotingClosed,
		},
		{
			name:  "Should reject vote after the session finished",
			value: model.VoteLike,
			setupMocks: func(r *resources) {
				r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
					Return(model.StatusMatched, nil).Once()
			},
			expectedError: ErrVotingClosed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), tc.value, validMeta())

			assert.ErrorIs(t, err, tc.expectedError)
			assert.False(t, matched)
			r.repo.AssertNotCalled(t, "AddVote", mock.Anything, mock.Anything)
		})
	}
}

func (suite *UsecaseVoteUnitSuite) TestSubmitIdempotency(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
		Return(model.StatusVoting, nil).Once()
	// Duplicate: storage reports nothing was written.
	r.repo.On("AddVote", r.ctx, mock.AnythingOfType("model.Vote")).
		Return(false, nil).Once()

	matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), model.VoteLike, validMeta())

	assert.NoError(t, err)
	assert.False(t, matched)
	r.repo.AssertNotCalled(t, "ParticipantsCount", mock.Anything, mock.Anything)
	r.repo.AssertNotCalled(t, "AddMatch", mock.Anything, mock.Anything)
}

func (suite *UsecaseVoteUnitSuite) TestSubmitDislikeSkipsQuorum(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
		Return(model.StatusVoting, nil).Once()
	r.repo.On("AddVote", r.ctx, mock.AnythingOfType("model.Vote")).
		Return(true, nil).Once()

	matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), model.VoteDislike, validMeta())

	assert.NoError(t, err)
	assert.False(t, matched)
	r.repo.AssertNotCalled(t, "LikeCount", mock.Anything, mock.Anything, mock.Anything)
	r.repo.AssertNotCalled(t, "AddMatch", mock.Anything, mock.Anything)
}

func (suite *UsecaseVoteUnitSuite) TestSubmitQuorum(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		participants int
		likes        int
		expectMatch  bool
	}{
		{
			name:         "Should not match while likes are below participant count",
			participants: 2,
			likes:        1,
			expectMatch:  false,
		},
		{
			name:         "Should match when every participant liked",
			participants: 2,
			likes:        2,
			expectMatch:  true,
		},
		{
			name:         "Should respect a raised bar after a late join",
			participants: 3,
			likes:        2,
			expectMatch:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
				Return(model.StatusVoting, nil).Once()
			r.repo.On("AddVote", r.ctx, mock.AnythingOfType("model.Vote")).
				Return(true, nil).Once()
			r.repo.On("ParticipantsCount", r.ctx, validRoomCode()).
				Return(tc.participants, nil).Once()
			r.repo.On("LikeCount", r.ctx, validRoomCode(), validContentID()).
				Return(tc.likes, nil).Once()

			if tc.expectMatch {
				r.repo.On("AddMatch", r.ctx, mock.MatchedBy(func(m model.Match) bool {
					return m.ContentID == validContentID() && m.Meta == validMeta()
				})).Return(nil).Once()
			}

			matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), model.VoteLike, validMeta())

			assert.NoError(t, err)
			assert.Equal(t, tc.expectMatch, matched)
			if !tc.expectMatch {
				r.repo.AssertNotCalled(t, "AddMatch", mock.Anything, mock.Anything)
			}
			r.repo.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseVoteUnitSuite) TestSubmitStorageErrors(t provider.T) {
	t.Parallel()

	t.Run("Should wrap vote insert failure", func(t provider.T) {
		r := initResources(t)

		r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
			Return(model.StatusVoting, nil).Once()
		r.repo.On("AddVote", r.ctx, mock.AnythingOfType("model.Vote")).
			Return(false, errors.New("connection reset")).Once()

		matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), model.VoteLike, validMeta())

		assert.ErrorIs(t, err, ErrInternal)
		assert.False(t, matched)
	})

	t.Run("Should wrap match append failure", func(t provider.T) {
		r := initResources(t)

		r.repo.On("RoomStatusByCode", r.ctx, validRoomCode()).
			Return(model.StatusVoting, nil).Once()
		r.repo.On("AddVote", r.ctx, mock.AnythingOfType("model.Vote")).
			Return(true, nil).Once()
		r.repo.On("ParticipantsCount", r.ctx, validRoomCode()).
			Return(1, nil).Once()
		r.repo.On("LikeCount", r.ctx, validRoomCode(), validContentID()).
			Return(1, nil).Once()
		r.repo.On("AddMatch", r.ctx, mock.AnythingOfType("model.Match")).
			Return(errors.New("connection reset")).Once()

		matched, err := r.usecase.Submit(r.ctx, validRoomCode(), validToken(), validContentID(), model.VoteLike, validMeta())

		assert.ErrorIs(t, err, ErrInternal)
		assert.False(t, matched)
	})
}

func TestUsecaseVoteUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
