// Package pool turns raw catalog pages into a voting pool:
// merged, deduplicated, shuffled, capped.
package pool

import (
	"math/rand"

	"github.com/humanbelnik/matchpoint/core/internal/model"
)

const DefaultCap = 60

type Builder struct {
	cap int
	// swapped out in tests for a seeded source
	shuffle func(n int, swap func(i, j int))
}

type BuilderOption func(*Builder)

func WithCap(cap int) BuilderOption {
	return func(b *Builder) {
		b.cap = cap
	}
}

func WithShuffle(shuffle func(n int, swap func(i, j int))) BuilderOption {
	return func(b *Builder) {
		b.shuffle = shuffle
	}
}

func New(opts ...BuilderOption) *Builder {
	b := &Builder{
		cap:     DefaultCap,
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build merges catalog pages into a single pool. The catalog may repeat
// ids across pages, so dedup happens before the shuffle; otherwise a
// repeated id would get extra draws at the front positions. The shuffle
// is an unbiased Fisher-Yates permutation since pool order is the order
// participants swipe in.
func (b *Builder) Build(pages ...[]model.ContentID) []model.ContentID {
	seen := make(map[model.ContentID]struct{})
	merged := make([]model.ContentID, 0, b.cap)

	for _, page := range pages {
		for _, id := range page {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}

	b.shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	if len(merged) > b.cap {
		merged = merged[:b.cap]
	}
	return merged
}
