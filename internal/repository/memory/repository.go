package memory

import (
	"sync"

	"github.com/omarshaarawi/autoscorer/internal/models"
)

// Repository caches the most recent results for the bot.
type Repository struct {
	week      *models.WeekDocument
	standings *models.StandingsDocument
	notes     []string
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

// SaveWeek stores the week and its data notes. An older week never replaces
// a newer one.
func (r *Repository) SaveWeek(week models.WeekDocument, notes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.week != nil && week.Week < r.week.Week {
		return
	}
	r.week = &week
	r.notes = notes
}

func (r *Repository) GetWeek() (models.WeekDocument, []string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.week == nil {
		return models.WeekDocument{}, nil, false
	}
	return *r.week, r.notes, true
}

func (r *Repository) SaveStandings(standings models.StandingsDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.standings = &standings
}

func (r *Repository) GetStandings() (models.StandingsDocument, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.standings == nil {
		return models.StandingsDocument{}, false
	}
	return *r.standings, true
}
