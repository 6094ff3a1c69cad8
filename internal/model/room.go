package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomCode string

const EmptyRoomCode RoomCode = ""

// Room lifecycle. Transitions only move forward;
// StatusFailed is reachable from StatusWaiting alone.
const (
	StatusWaiting = "waiting"
	StatusVoting  = "voting"
	StatusMatched = "matched"
	StatusFailed  = "failed"
)

type Room struct {
	ID        uuid.UUID
	Code      RoomCode
	Status    string
	Filters   Filters
	Pool      []ContentID
	CreatedAt time.Time
}

// RoomState is the composite read model polled by clients:
// the room itself plus everything keyed by its code.
type RoomState struct {
	Room         Room
	Participants []Participant
	Votes        []Vote
	Matches      []Match
}
