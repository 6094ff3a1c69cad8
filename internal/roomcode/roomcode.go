package roomcode

import (
	"crypto/rand"
	"strings"

	"github.com/humanbelnik/matchpoint/core/internal/model"
)

// Alphabet deliberately drops 0/O and 1/I so codes survive being read
// out loud over a call. 32 symbols keeps the byte->symbol mapping unbiased.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLen = 4

// Generate returns a short shareable room code. Codes are not unique
// by construction; the caller probes the store and retries on conflict.
func Generate() model.RoomCode {
	buf := make([]byte, CodeLen)
	_, _ = rand.Read(buf)

	var builder strings.Builder
	builder.Grow(CodeLen)
	for _, b := range buf {
		builder.WriteByte(Alphabet[int(b)%len(Alphabet)])
	}

	return model.RoomCode(builder.String())
}
