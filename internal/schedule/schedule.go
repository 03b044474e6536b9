// Package schedule reads the league's regular-season schedule and lays out
// the playoff weeks from a bracket.
package schedule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/omarshaarawi/autoscorer/internal/playoffs"
)

var (
	weekLine    = regexp.MustCompile(`(?i)^(Rivalry\s+)?Week\s+(\d+)\s*:\s*(.+)$`)
	matchupText = regexp.MustCompile(`(?i)^([A-Z/]+)\s+(?:versus|vs\.?)\s+([A-Z/]+)$`)
)

type Matchup struct {
	Team1   string `json:"team1"`
	Team2   string `json:"team2"`
	Bracket string `json:"bracket,omitempty"`
	Game    string `json:"game,omitempty"`
}

type Week struct {
	Number   int       `json:"week"`
	Rivalry  bool      `json:"is_rivalry"`
	Playoffs bool      `json:"is_playoffs"`
	Round    string    `json:"playoff_round,omitempty"`
	Matchups []Matchup `json:"matchups"`
}

// Parse reads lines of the form "Week 3: AAA versus BBB, CCC vs DDD".
// A "Rivalry" prefix marks the week. Blank lines and # comments are skipped.
func Parse(r io.Reader) ([]Week, error) {
	var weeks []Week
	seen := make(map[int]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := weekLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[2])
		if err != nil || number < 1 {
			return nil, fmt.Errorf("line %d: invalid week number %q", lineNo, m[2])
		}
		if seen[number] {
			return nil, fmt.Errorf("line %d: week %d listed twice", lineNo, number)
		}
		seen[number] = true

		week := Week{Number: number, Rivalry: m[1] != ""}
		for _, part := range strings.Split(m[3], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tm := matchupText.FindStringSubmatch(part)
			if tm == nil {
				return nil, fmt.Errorf("line %d: cannot parse matchup %q", lineNo, part)
			}
			week.Matchups = append(week.Matchups, Matchup{
				Team1: strings.ToUpper(tm[1]),
				Team2: strings.ToUpper(tm[2]),
			})
		}
		weeks = append(weeks, week)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	return weeks, nil
}

func ParseFile(path string) ([]Week, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Regular returns the given week from a parsed schedule.
func Regular(weeks []Week, number int) (Week, bool) {
	for _, w := range weeks {
		if w.Number == number {
			return w, true
		}
	}
	return Week{}, false
}

// Playoff lays out both playoff weeks from final seeds. Round scores that are
// already known fill in the derived games; the rest show TBD.
func Playoff(bracket playoffs.Bracket, weeks [2]int, seeds []string, rounds ...playoffs.RoundScores) []Week {
	out := []Week{
		{Number: weeks[0], Playoffs: true, Round: "Semifinals"},
		{Number: weeks[1], Playoffs: true, Round: "Finals"},
	}
	for _, p := range bracket.Matchups(seeds, rounds...) {
		i := p.Game.Round - 1
		if i < 0 || i >= len(out) {
			continue
		}
		out[i].Matchups = append(out[i].Matchups, Matchup{
			Team1:   p.Team1,
			Team2:   p.Team2,
			Bracket: p.Game.Bracket,
			Game:    p.Game.ID,
		})
	}
	return out
}
