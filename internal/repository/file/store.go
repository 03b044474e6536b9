// Package file persists scored weeks and standings as the JSON documents the
// league website reads.
package file

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/omarshaarawi/autoscorer/internal/models"
	"github.com/shopspring/decimal"
)

var weekFile = regexp.MustCompile(`^week_(\d+)\.json$`)

// Store writes one directory per season under root:
//
//	<root>/<season>/week_<n>.json
//	<root>/<season>/standings.json
type Store struct {
	root   string
	season int
}

func NewStore(root string, season int) *Store {
	return &Store{root: root, season: season}
}

func (s *Store) dir() string {
	return filepath.Join(s.root, strconv.Itoa(s.season))
}

func (s *Store) weekPath(week int) string {
	return filepath.Join(s.dir(), fmt.Sprintf("week_%d.json", week))
}

func (s *Store) standingsPath() string {
	return filepath.Join(s.dir(), "standings.json")
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// SaveWeek merges doc into any existing document for the same week. Teams are
// matched by abbreviation: incoming teams replace stored ones and teams only
// in the stored document are kept, so a retried or partial write never drops
// another writer's results.
func (s *Store) SaveWeek(doc models.WeekDocument) (models.WeekDocument, error) {
	existing, err := s.LoadWeek(doc.Week)
	switch {
	case errors.Is(err, os.ErrNotExist):
		existing = models.WeekDocument{Week: doc.Week}
	case err != nil:
		return models.WeekDocument{}, err
	}

	merged := mergeWeek(existing, doc)
	roundWeek(&merged)
	if err := writeJSON(s.weekPath(doc.Week), merged); err != nil {
		return models.WeekDocument{}, fmt.Errorf("saving week %d: %w", doc.Week, err)
	}
	return merged, nil
}

func mergeWeek(old, incoming models.WeekDocument) models.WeekDocument {
	merged := incoming
	byAbbrev := make(map[string]int, len(old.Teams)+len(incoming.Teams))
	teams := make([]models.WeekTeam, 0, len(old.Teams)+len(incoming.Teams))
	for _, t := range old.Teams {
		byAbbrev[t.Abbrev] = len(teams)
		teams = append(teams, t)
	}
	for _, t := range incoming.Teams {
		if i, ok := byAbbrev[t.Abbrev]; ok {
			teams[i] = t
			continue
		}
		byAbbrev[t.Abbrev] = len(teams)
		teams = append(teams, t)
	}
	merged.Teams = teams

	if len(incoming.Matchups) == 0 {
		merged.Matchups = old.Matchups
	}
	merged.HasScores = slices.ContainsFunc(teams, func(t models.WeekTeam) bool {
		return t.TotalScore != 0
	})
	return merged
}

func roundWeek(doc *models.WeekDocument) {
	for i := range doc.Teams {
		t := &doc.Teams[i]
		t.TotalScore = round(t.TotalScore, 1)
		t.Roster = slices.Clone(t.Roster)
		for j := range t.Roster {
			t.Roster[j].Score = round(t.Roster[j].Score, 1)
		}
	}
}

func (s *Store) LoadWeek(week int) (models.WeekDocument, error) {
	var doc models.WeekDocument
	if err := readJSON(s.weekPath(week), &doc); err != nil {
		return models.WeekDocument{}, fmt.Errorf("loading week %d: %w", week, err)
	}
	return doc, nil
}

// LoadWeeks returns every stored week of the season in week order.
func (s *Store) LoadWeeks() ([]models.WeekDocument, error) {
	entries, err := os.ReadDir(s.dir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}

	var weeks []models.WeekDocument
	for _, e := range entries {
		m := weekFile.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		doc, err := s.LoadWeek(n)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, doc)
	}
	slices.SortFunc(weeks, func(a, b models.WeekDocument) int {
		return cmp.Compare(a.Week, b.Week)
	})
	return weeks, nil
}

func (s *Store) SaveStandings(doc models.StandingsDocument) error {
	doc.Standings = slices.Clone(doc.Standings)
	for i := range doc.Standings {
		r := &doc.Standings[i]
		r.RankPoints = round(r.RankPoints, 2)
		r.TopHalf = round(r.TopHalf, 2)
		r.PointsFor = round(r.PointsFor, 1)
		r.PointsAgainst = round(r.PointsAgainst, 1)
	}
	if err := writeJSON(s.standingsPath(), doc); err != nil {
		return fmt.Errorf("saving standings: %w", err)
	}
	return nil
}

func (s *Store) LoadStandings() (models.StandingsDocument, error) {
	var doc models.StandingsDocument
	if err := readJSON(s.standingsPath(), &doc); err != nil {
		return models.StandingsDocument{}, fmt.Errorf("loading standings: %w", err)
	}
	return doc, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON replaces path atomically so readers never see a partial file.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
