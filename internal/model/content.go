package model

type ContentID int64

type ContentKind string

const (
	KindMovie ContentKind = "movie"
	KindTV    ContentKind = "tv"
)

type Filters struct {
	Kind        ContentKind
	GenreIDs    []int64
	ProviderIDs []int64
}
