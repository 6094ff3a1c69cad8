package model

import "time"

const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Vote is immutable once cast: a second submit for the same
// (room, content, token) triple is ignored, never overwritten.
type Vote struct {
	RoomCode  RoomCode
	ContentID ContentID
	Token     IdentityToken
	Value     string
	CastAt    time.Time
}

func ValidVoteValue(v string) bool {
	return v == VoteLike || v == VoteDislike
}
