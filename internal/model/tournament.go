package model

import (
	"sort"
	"strings"
	"time"
)

// TournamentID uniquely identifies a tournament
type TournamentID string

// TournamentType selects the tournament rules and points schedule
type TournamentType string

const (
	TournamentStandard TournamentType = "Standard"
	TournamentHeadsUp  TournamentType = "HeadsUp"
	TournamentPKO      TournamentType = "PKO"
	TournamentKO       TournamentType = "KO"
)

// ParseTournamentType resolves a type name case-insensitively
func ParseTournamentType(s string) (TournamentType, error) {
	for _, t := range []TournamentType{TournamentStandard, TournamentHeadsUp, TournamentPKO, TournamentKO} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", ErrInvalidTournamentType
}

// Format is the points schedule family used by a tournament type
type Format string

const (
	FormatHeadsUp Format = "HeadsUp"
	FormatOther   Format = "Other"
)

// Format returns the points schedule family for the type
func (t TournamentType) Format() Format {
	if t == TournamentHeadsUp {
		return FormatHeadsUp
	}
	return FormatOther
}

// TournamentResult is one finisher's placing in a tournament
type TournamentResult struct {
	Name      string
	Rank      int // 1 is best
	Knockouts int
	Points    int // computed; zero while the tournament is active
}

// Tournament owns its result list. Ranks are kept contiguous 1..N after
// every mutation.
type Tournament struct {
	ID        TournamentID
	Name      string
	Type      TournamentType
	IsActive  bool
	Results   []TournamentResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindResult returns the index of the named player's result, or -1
func (t *Tournament) FindResult(name string) int {
	id := NormalizeName(name)
	for i := range t.Results {
		if NormalizeName(t.Results[i].Name) == id {
			return i
		}
	}
	return -1
}

// SortResults orders results by rank, breaking ties by knockouts descending
func (t *Tournament) SortResults() {
	sort.SliceStable(t.Results, func(i, j int) bool {
		a, b := t.Results[i], t.Results[j]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Knockouts > b.Knockouts
	})
}

// Rerank assigns ranks 1..N in the current slice order
func (t *Tournament) Rerank() {
	for i := range t.Results {
		t.Results[i].Rank = i + 1
	}
}

// TotalPoints sums the points carried by every result
func (t *Tournament) TotalPoints() int {
	total := 0
	for _, r := range t.Results {
		total += r.Points
	}
	return total
}

// CloneResults returns a copy of the result list
func (t *Tournament) CloneResults() []TournamentResult {
	out := make([]TournamentResult, len(t.Results))
	copy(out, t.Results)
	return out
}
