package model

import "time"

// DisplayMeta is carried along with a like so a committed match is
// renderable without another catalog round trip.
type DisplayMeta struct {
	Title       string
	PosterLink  string
	ReleaseDate string
}

type Match struct {
	RoomCode  RoomCode
	ContentID ContentID
	Meta      DisplayMeta
	MatchedAt time.Time
}
