package http_room

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/matchpoint/core/internal/delivery/http/common"
	ws_room "github.com/humanbelnik/matchpoint/core/internal/delivery/ws/room"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_room "github.com/humanbelnik/matchpoint/core/internal/usecase/room"
)

type Controller struct {
	usecase *usecase_room.Usecase
	hub     *ws_room.Hub
	logger  *slog.Logger
	reapAge time.Duration
}

type ControllerOption func(*Controller)

func WithDefaultReapAge(age time.Duration) ControllerOption {
	return func(c *Controller) {
		if age > 0 {
			c.reapAge = age
		}
	}
}

func New(usecase *usecase_room.Usecase, hub *ws_room.Hub, options ...ControllerOption) *Controller {
	c := &Controller{
		usecase: usecase,
		hub:     hub,
		logger:  slog.Default(),
		reapAge: usecase_room.DefaultReapAge,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_code", c.state)
		rooms.POST("/:room_code/participants", c.join)
		rooms.POST("/:room_code/pool", c.generatePool)
		rooms.POST("/:room_code/finish", c.finish)
	}

	router.POST("/admin/reap", c.reap)
}

// Membership is the only server-side gate on room operations. Hostship
// is a client convention: nothing here stops a non-host participant from
// triggering pool generation or finishing the session. Deliberate, and
// matched to the product's trust model.
func (c *Controller) requireParticipant(ctx *gin.Context) (model.RoomCode, model.IdentityToken, bool) {
	roomCode := model.RoomCode(ctx.Param("room_code"))

	userToken := ctx.GetHeader(http_common.UserTokenHeader)
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: http_common.UserTokenHeader + " not found",
		})
		return model.EmptyRoomCode, model.EmptyIdentityToken, false
	}

	isParticipant, err := c.usecase.IsParticipant(ctx, roomCode, model.IdentityToken(userToken))
	if err != nil {
		c.logger.Error("failed to validate participant", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return model.EmptyRoomCode, model.EmptyIdentityToken, false
		}
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

type CreateRoomRequestDTO struct {
	HostName    string  `json:"host_name" binding:"required"`
	Kind        string  `json:"kind" binding:"required,oneof=movie tv"`
	GenreIDs    []int64 `json:"genre_ids"`
	ProviderIDs []int64 `json:"provider_ids"`
}

type CreateRoomResponseDTO struct {
	RoomCode string `json:"room_code"`
}

// Create spins up a room in the waiting state
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Host name and content filters"
// @Success 201 {object} CreateRoomResponseDTO "Room created"
// @Header 201 {string} X-user-token "Host identity token"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Failure 503 {object} http_common.ErrorResponse "Code allocation exhausted"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	roomCode, hostToken, err := c.usecase.Create(ctx, req.HostName, model.Filters{
		Kind:        model.ContentKind(req.Kind),
		GenreIDs:    req.GenreIDs,
		ProviderIDs: req.ProviderIDs,
	})
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrRoomsUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header(http_common.UserTokenHeader, string(hostToken))
	ctx.JSON(http.StatusCreated, CreateRoomResponseDTO{
		RoomCode: string(roomCode),
	})
}

type JoinRoomRequestDTO struct {
	Name string `json:"name" binding:"required"`
}

type JoinRoomResponseDTO struct {
	Kind        string  `json:"kind"`
	GenreIDs    []int64 `json:"genre_ids"`
	ProviderIDs []int64 `json:"provider_ids"`
}

// Join adds a participant to a waiting room
// @Summary Join a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param room_code path string true "Room code"
// @Param request body JoinRoomRequestDTO true "Display name"
// @Success 201 {object} JoinRoomResponseDTO "Joined; room filters returned"
// @Header 201 {string} X-user-token "Participant identity token"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Room already started"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_code}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	roomCode := model.RoomCode(ctx.Param("room_code"))

	var req JoinRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, filters, err := c.usecase.Join(ctx, roomCode, req.Name)
	if err != nil {
		c.logger.Error("failed to join room", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_room.ErrRoomNotJoinable):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room already started",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.NotifyUserJoined(roomCode)

	ctx.Header(http_common.UserTokenHeader, string(token))
	ctx.JSON(http.StatusCreated, JoinRoomResponseDTO{
		Kind:        string(filters.Kind),
		GenreIDs:    filters.GenreIDs,
		ProviderIDs: filters.ProviderIDs,
	})
}

type ParticipantDTO struct {
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
}

type VoteDTO struct {
	ContentID int64  `json:"content_id"`
	Token     string `json:"token"`
	Value     string `json:"value"`
}

type MatchDTO struct {
	ContentID   int64  `json:"content_id"`
	Title       string `json:"title"`
	PosterLink  string `json:"poster_link"`
	ReleaseDate string `json:"release_date"`
}

type RoomStateResponseDTO struct {
	Status       string           `json:"status"`
	Kind         string           `json:"kind"`
	GenreIDs     []int64          `json:"genre_ids"`
	ProviderIDs  []int64          `json:"provider_ids"`
	Pool         []int64          `json:"pool"`
	Participants []ParticipantDTO `json:"participants"`
	Votes        []VoteDTO        `json:"votes"`
	Matches      []MatchDTO       `json:"matches"`
}

// State returns the composite room view
// @Summary Get room state
// @Tags Rooms
// @Produce json
// @Param room_code path string true "Room code"
// @Success 200 {object} RoomStateResponseDTO "Room state"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms/{room_code} [get]
func (c *Controller) state(ctx *gin.Context) {
	roomCode := model.RoomCode(ctx.Param("room_code"))

	state, err := c.usecase.State(ctx, roomCode)
	if err != nil {
		c.logger.Error("failed to get room state", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toRoomStateDTO(state))
}

func toRoomStateDTO(state model.RoomState) RoomStateResponseDTO {
	resp := RoomStateResponseDTO{
		Status:       state.Room.Status,
		Kind:         string(state.Room.Filters.Kind),
		GenreIDs:     state.Room.Filters.GenreIDs,
		ProviderIDs:  state.Room.Filters.ProviderIDs,
		Pool:         make([]int64, 0, len(state.Room.Pool)),
		Participants: make([]ParticipantDTO, 0, len(state.Participants)),
		Votes:        make([]VoteDTO, 0, len(state.Votes)),
		Matches:      make([]MatchDTO, 0, len(state.Matches)),
	}

	for _, id := range state.Room.Pool {
		resp.Pool = append(resp.Pool, int64(id))
	}
	for _, p := range state.Participants {
		resp.Participants = append(resp.Participants, ParticipantDTO{
			DisplayName: p.DisplayName,
			IsHost:      p.IsHost,
		})
	}
	for _, v := range state.Votes {
		resp.Votes = append(resp.Votes, VoteDTO{
			ContentID: int64(v.ContentID),
			Token:     string(v.Token),
			Value:     v.Value,
		})
	}
	for _, m := range state.Matches {
		resp.Matches = append(resp.Matches, MatchDTO{
			ContentID:   int64(m.ContentID),
			Title:       m.Meta.Title,
			PosterLink:  m.Meta.PosterLink,
			ReleaseDate: m.Meta.ReleaseDate,
		})
	}
	return resp
}

// GeneratePool builds the candidate pool and starts voting
// @Summary Generate the voting pool
// @Tags Rooms
// @Param room_code path string true "Room code"
// @Success 200 "Pool generated, room is voting"
// @Failure 401 {object} http_common.ErrorResponse "Missing identity token"
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Room is not waiting"
// @Failure 502 {object} http_common.ErrorResponse "Catalog failure, room failed"
// @Security UserToken
// @Router /rooms/{room_code}/pool [post]
func (c *Controller) generatePool(ctx *gin.Context) {
	roomCode, _, ok := c.requireParticipant(ctx)
	if !ok {
		return
	}

	if err := c.usecase.GeneratePool(ctx, roomCode); err != nil {
		c.logger.Error("failed to generate pool", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_room.ErrConflictState):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room is not waiting",
			})
		case errors.Is(err, usecase_room.ErrPoolGeneration):
			c.hub.NotifyRoomFailed(roomCode)
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "pool generation failed",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.NotifyPoolReady(roomCode)
	ctx.Status(http.StatusOK)
}

// Finish ends the session and surfaces accumulated matches
// @Summary Finish the session
// @Tags Rooms
// @Param room_code path string true "Room code"
// @Success 200 "Session finished"
// @Failure 401 {object} http_common.ErrorResponse "Missing identity token"
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Room is not voting"
// @Security UserToken
// @Router /rooms/{room_code}/finish [post]
func (c *Controller) finish(ctx *gin.Context) {
	roomCode, _, ok := c.requireParticipant(ctx)
	if !ok {
		return
	}

	if err := c.usecase.Finish(ctx, roomCode); err != nil {
		c.logger.Error("failed to finish session", slog.String("room", string(roomCode)), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_room.ErrConflictState):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room is not voting",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.NotifySessionFinished(roomCode)
	ctx.Status(http.StatusOK)
}

type ReapRequestDTO struct {
	MaxAge string `json:"max_age"`
}

type ReapResponseDTO struct {
	Deleted int `json:"deleted"`
}

// Reap deletes rooms older than max_age with their participants and votes
// @Summary Reap stale rooms
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body ReapRequestDTO false "Age threshold, Go duration format, defaults to 24h"
// @Success 200 {object} ReapResponseDTO "Rooms deleted"
// @Failure 400 {object} http_common.ErrorResponse "Bad duration"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /admin/reap [post]
func (c *Controller) reap(ctx *gin.Context) {
	var req ReapRequestDTO
	_ = ctx.ShouldBindJSON(&req)

	maxAge := c.reapAge
	if req.MaxAge != "" {
		parsed, err := time.ParseDuration(req.MaxAge)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid max_age duration",
			})
			return
		}
		maxAge = parsed
	}

	deleted, err := c.usecase.ReapStale(ctx, maxAge)
	if err != nil {
		c.logger.Error("failed to reap rooms", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ReapResponseDTO{Deleted: deleted})
}
