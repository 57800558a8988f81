package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/pokerclub/internal/api/response"
)

// HealthResult is the health endpoint response
type HealthResult struct {
	Status string `json:"status"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printPlayers(v)
	case response.Tournament:
		o.printTournament(v)
	case []response.Tournament:
		o.printTournaments(v)
	case response.Meeting:
		o.printMeeting(v)
	case []response.Meeting:
		o.printMeetings(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printPlayer(p response.Player) {
	o.printf("Player: %s (%s)\n", p.Name, p.ID)
	o.printf("Points: %d\n", p.Points)
	o.printf("Knockouts: %d\n", p.Knockouts)
}

func (o *Output) printPlayers(players []response.Player) {
	if len(players) == 0 {
		o.printf("No players\n")
		return
	}
	for _, p := range players {
		o.printf("%-20s %6d pts %4d ko\n", p.Name, p.Points, p.Knockouts)
	}
}

func (o *Output) printTournament(t response.Tournament) {
	state := "finished"
	if t.IsActive {
		state = "active"
	}
	o.printf("Tournament: %s (%s)\n", t.Name, t.ID)
	o.printf("Type: %s\n", t.Type)
	o.printf("State: %s\n", state)
	if len(t.Results) == 0 {
		return
	}
	o.printf("\nResults:\n")
	for _, r := range t.Results {
		o.printf("  %3d. %-20s %4d ko %6d pts\n", r.Rank, r.Name, r.Knockouts, r.Points)
	}
}

func (o *Output) printTournaments(tournaments []response.Tournament) {
	if len(tournaments) == 0 {
		o.printf("No tournaments\n")
		return
	}
	for _, t := range tournaments {
		state := "finished"
		if t.IsActive {
			state = "active"
		}
		o.printf("%s  %-24s %-8s %-8s %d entrants\n", t.ID, t.Name, t.Type, state, len(t.Results))
	}
}

func (o *Output) printMeeting(m response.Meeting) {
	o.printf("Meeting: %s (%s)\n", m.Name, m.ID)
	if len(m.Results) == 0 {
		return
	}
	o.printf("\nResults:\n")
	for _, r := range m.Results {
		hour := ""
		if r.HourGame {
			hour = " [hour game]"
		}
		o.printf("  %3d. %-20s %4d ko %6d pts%s\n", r.Rank, r.Name, r.Knockouts, r.Points, hour)
	}
}

func (o *Output) printMeetings(meetings []response.Meeting) {
	if len(meetings) == 0 {
		o.printf("No meetings\n")
		return
	}
	for _, m := range meetings {
		o.printf("%s  %-12s %d results\n", m.ID, m.Name, len(m.Results))
	}
}

func (o *Output) printLeaderboard(lb response.Leaderboard) {
	o.printf("Last updated: %s\n", lb.LastUpdated.Format("2006-01-02 15:04"))
	for _, e := range lb.Rankings {
		o.printf("  %3d. %-20s %6d pts\n", e.Rank, e.Name, e.Points)
	}
}
