package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityToken identifies a participant within a single room.
// Tokens are issued on join and are not meaningful across rooms.
type IdentityToken string

const EmptyIdentityToken IdentityToken = ""

func NewIdentityToken() IdentityToken {
	return IdentityToken(uuid.New().String())
}

type Participant struct {
	Token       IdentityToken
	RoomCode    RoomCode
	DisplayName string
	IsHost      bool
	JoinedAt    time.Time
}
