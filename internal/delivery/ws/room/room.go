package ws_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/matchpoint/core/internal/delivery/http/common"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_room "github.com/humanbelnik/matchpoint/core/internal/usecase/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same trust model as the REST surface: membership is the gate,
	// origin checks belong to the fronting proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rooms/:room_code", c.subscribe)
}

func (c *Controller) subscribe(ctx *gin.Context) {
	roomCode := model.RoomCode(ctx.Param("room_code"))
	userToken := ctx.Query("token")
	if userToken == "" {
		userToken = ctx.GetHeader(http_common.UserTokenHeader)
	}
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "identity token required",
		})
		return
	}

	isParticipant, err := c.hub.usecase.IsParticipant(ctx, roomCode, model.IdentityToken(userToken))
	if err != nil {
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
	if !isParticipant {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "user is not a participant of this room",
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "error", err, "room", roomCode)
		return
	}

	client := &Client{
		hub:      c.hub,
		conn:     conn,
		send:     make(chan Event, 16),
		userID:   userToken,
		roomCode: roomCode,
	}

	c.hub.register <- client
	go client.writePump()
	go client.readPump()
}

func (cl *Client) readPump() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()

	// Clients never send application messages; reading only serves
	// to notice the disconnect.
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (cl *Client) writePump() {
	defer cl.conn.Close()

	for event := range cl.send {
		if err := cl.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
