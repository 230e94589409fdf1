// Package sessionid generates sortable identifiers for play sessions.
//
// IDs use the UUIDv7 layout (48-bit millisecond timestamp followed by random
// bits) encoded as 26 characters of Crockford base32, so they sort by
// creation time as plain strings.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// RandSource lets tests pin the random part of an ID.
type RandSource interface {
	IntN(n int) int
}

// Generator creates IDs from a clock and an optional random source. A nil
// source means crypto/rand.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator returns a generator. clock must not be nil.
func NewGenerator(clock quartz.Clock, src RandSource) *Generator {
	return &Generator{clock: clock, rand: src}
}

// Generate returns an ID using the wall clock and crypto/rand.
func Generate() string {
	return NewGenerator(quartz.NewReal(), nil).Generate()
}

// Generate returns a new ID.
func (g *Generator) Generate() string {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("sessionid: failed to read random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id)
}

// encode writes the 128 bits, left-padded with two zero bits, as 26 base32
// characters.
func encode(id [16]byte) string {
	bit := func(j int) byte {
		if j < 0 {
			return 0
		}
		return (id[j/8] >> (7 - j%8)) & 1
	}

	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		start := i*5 - 2
		for j := start; j < start+5; j++ {
			v = v<<1 | bit(j)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks that id could have come from Generate.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
