package http_vote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/matchpoint/core/internal/delivery/http/common"
	ws_room "github.com/humanbelnik/matchpoint/core/internal/delivery/ws/room"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_vote "github.com/humanbelnik/matchpoint/core/internal/usecase/vote"
)

type ParticipantValidator interface {
	IsParticipant(ctx context.Context, code model.RoomCode, token model.IdentityToken) (bool, error)
}

type Controller struct {
	uc *usecase_vote.Usecase
	pv ParticipantValidator

	hub *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_vote.Usecase,
	pv ParticipantValidator,
	hub *ws_room.Hub,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:     uc,
		pv:     pv,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("rooms/:room_code")
	room.POST("/votes", c.vote)
}

func (c *Controller) validateParticipant(ctx *gin.Context) (model.RoomCode, model.IdentityToken, bool) {
	roomCode := model.RoomCode(ctx.Param("room_code"))
	userToken := ctx.GetHeader(http_common.UserTokenHeader)

	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: http_common.UserTokenHeader + " header required",
		})
		return model.EmptyRoomCode, model.EmptyIdentityToken, false
	}

	isParticipant, err := c.pv.IsParticipant(ctx, roomCode, model.IdentityToken(userToken))
	if err != nil {
		c.logger.Error("failed to validate participant", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return model.EmptyRoomCode, model.EmptyIdentityToken, false
	}

	if !isParticipant {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "user is not a participant of this room",
		})
		return model.EmptyRoomCode, model.EmptyIdentityToken, false
	}

	return roomCode, model.IdentityToken(userToken), true
}

type VoteRequestDTO struct {
	ContentID   int64  `json:"content_id" binding:"required"`
	Value       string `json:"value" binding:"required,oneof=like dislike"`
	Title       string `json:"title"`
	PosterLink  string `json:"poster_link"`
	ReleaseDate string `json:"release_date"`
}

type VoteResponseDTO struct {
	Matched bool `json:"matched"`
}

// Vote records a swipe and reports whether it completed a match
// @Summary Submit a vote
// @Tags Voting
// @Accept json
// @Produce json
// @Param room_code path string true "Room code"
// @Param request body VoteRequestDTO true "Vote with optional display metadata"
// @Success 200 {object} VoteResponseDTO "Vote recorded (duplicates count as success)"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 401 {object} http_common.ErrorResponse "Missing identity token"
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Room is not voting"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /rooms/{room_code}/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	roomCode, userToken, ok := c.validateParticipant(ctx)
	if !ok {
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	matched, err := c.uc.Submit(ctx, roomCode, userToken,
		model.ContentID(req.ContentID),
		req.Value,
		model.DisplayMeta{
			Title:       req.Title,
			PosterLink:  req.PosterLink,
			ReleaseDate: req.ReleaseDate,
		})
	if err != nil {
		c.logger.Error("failed to submit vote", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_vote.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_vote.ErrVotingClosed):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room is not voting",
			})
		case errors.Is(err, usecase_vote.ErrBadVote):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid vote value",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.NotifyVoteCast(roomCode, model.ContentID(req.ContentID))
	if matched {
		c.hub.NotifyMatchFound(roomCode, model.ContentID(req.ContentID), model.DisplayMeta{
			Title:       req.Title,
			PosterLink:  req.PosterLink,
			ReleaseDate: req.ReleaseDate,
		})
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{Matched: matched})
}
