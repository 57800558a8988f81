package model

import (
	"strings"
	"time"
	"unicode"
)

// PlayerID is the natural key of a player: the lowercased name with all
// whitespace stripped
type PlayerID string

// NormalizeName derives the PlayerID for a display name
func NormalizeName(name string) PlayerID {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return PlayerID(b.String())
}

// Player is a club member's entry in the points ledger
type Player struct {
	ID        PlayerID
	Name      string
	Points    int // running total across tournaments and meetings
	Knockouts int // PKO knockout counter, separate from points
	CreatedAt time.Time
}
