package playoffs

import (
	"cmp"
	"slices"

	"github.com/omarshaarawi/autoscorer/internal/models"
)

// TBD stands in for a team that earlier results have not decided yet.
const TBD = "TBD"

// RoundScores maps team abbreviation to its score in one playoff week.
type RoundScores map[string]float64

type Outcome struct {
	Game   string
	Team1  string
	Team2  string
	Score1 float64
	Score2 float64
	Winner string
	Loser  string
}

type Resolution struct {
	Placements map[string]int
	Outcomes   map[string]Outcome
	// Unresolved lists the placement-deciding games and pools still waiting
	// on a score.
	Unresolved []string
}

type Pairing struct {
	Game  Game
	Team1 string
	Team2 string
}

// Seeds returns team abbreviations in seed order from final standings.
func Seeds(rows []models.StandingsRow) []string {
	seeds := make([]string, len(rows))
	for i, row := range rows {
		seeds[i] = row.Abbrev
	}
	return seeds
}

type resolver struct {
	games   map[string]Game
	seeds   []string
	seedOf  map[string]int
	rounds  []RoundScores
	decided map[string]Outcome
	pending map[string]bool
}

func newResolver(b Bracket, seeds []string, rounds []RoundScores) *resolver {
	r := &resolver{
		games:   make(map[string]Game, len(b.Games)),
		seeds:   seeds,
		seedOf:  make(map[string]int, len(seeds)),
		rounds:  rounds,
		decided: make(map[string]Outcome),
		pending: make(map[string]bool),
	}
	for _, g := range b.Games {
		r.games[g.ID] = g
	}
	for i, team := range seeds {
		r.seedOf[team] = i + 1
	}
	return r
}

func (r *resolver) seed(n int) (string, bool) {
	if n < 1 || n > len(r.seeds) || r.seeds[n-1] == "" {
		return TBD, false
	}
	return r.seeds[n-1], true
}

func (r *resolver) score(team string, round int) (float64, bool) {
	if round < 1 || round > len(r.rounds) || r.rounds[round-1] == nil {
		return 0, false
	}
	s, ok := r.rounds[round-1][team]
	return s, ok
}

// teams fills each side it can and reports whether both are known.
func (r *resolver) teams(g Game) ([2]string, bool) {
	var out [2]string
	known := true
	for i := range out {
		var ok bool
		if g.Derived() {
			var o Outcome
			o, ok = r.outcome(g.From[i])
			switch {
			case !ok:
				out[i] = TBD
			case g.Take == TakeWinners:
				out[i] = o.Winner
			default:
				out[i] = o.Loser
			}
		} else {
			out[i], ok = r.seed(g.Seeds[i])
		}
		known = known && ok
	}
	return out, known
}

func (r *resolver) gameScore(g Game, team string) (float64, bool) {
	s, ok := r.score(team, g.Round)
	if !ok {
		return 0, false
	}
	if g.CumulativeWith == "" {
		return s, true
	}
	prior, found := r.games[g.CumulativeWith]
	if !found {
		return 0, false
	}
	p, ok := r.score(team, prior.Round)
	return s + p, ok
}

// better reports whether team a beats team b on a tied score: the higher
// seed advances.
func (r *resolver) better(a, b string) bool {
	return r.seedOf[a] < r.seedOf[b]
}

func (r *resolver) outcome(id string) (Outcome, bool) {
	if o, ok := r.decided[id]; ok {
		return o, true
	}
	if r.pending[id] {
		return Outcome{}, false
	}
	g, found := r.games[id]
	if !found {
		return Outcome{}, false
	}

	teams, ok := r.teams(g)
	if !ok {
		r.pending[id] = true
		return Outcome{}, false
	}
	s1, ok1 := r.gameScore(g, teams[0])
	s2, ok2 := r.gameScore(g, teams[1])
	if !ok1 || !ok2 {
		r.pending[id] = true
		return Outcome{}, false
	}

	o := Outcome{Game: id, Team1: teams[0], Team2: teams[1], Score1: s1, Score2: s2}
	if s1 > s2 || (s1 == s2 && r.better(teams[0], teams[1])) {
		o.Winner, o.Loser = teams[0], teams[1]
	} else {
		o.Winner, o.Loser = teams[1], teams[0]
	}
	r.decided[id] = o
	return o, true
}

func (r *resolver) pool(p Pool) ([]string, bool) {
	type entry struct {
		team  string
		seed  int
		total float64
	}
	entries := make([]entry, 0, len(p.Seeds))
	for _, n := range p.Seeds {
		team, ok := r.seed(n)
		if !ok {
			return nil, false
		}
		e := entry{team: team, seed: n}
		for _, round := range p.Rounds {
			s, ok := r.score(team, round)
			if !ok {
				return nil, false
			}
			e.total += s
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return cmp.Compare(a.seed, b.seed)
	})
	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.team
	}
	return order, true
}

// Resolve computes final placements from seeds and each playoff round's
// scores. Brackets resolve independently: a missing score leaves only the
// games that depend on it unresolved.
func Resolve(b Bracket, seeds []string, rounds []RoundScores) Resolution {
	r := newResolver(b, seeds, rounds)
	res := Resolution{
		Placements: make(map[string]int),
		Outcomes:   make(map[string]Outcome),
	}

	for _, g := range b.Games {
		o, ok := r.outcome(g.ID)
		if ok {
			res.Outcomes[g.ID] = o
		}
		if len(g.Determines) != 2 {
			continue
		}
		if !ok {
			res.Unresolved = append(res.Unresolved, g.ID)
			continue
		}
		res.Placements[o.Winner] = g.Determines[0]
		res.Placements[o.Loser] = g.Determines[1]
	}

	for _, p := range b.Pools {
		order, ok := r.pool(p)
		if !ok {
			res.Unresolved = append(res.Unresolved, p.ID)
			continue
		}
		for i, team := range order {
			res.Placements[team] = p.Determines[i]
		}
	}
	return res
}

// Matchups lists every bracket game with the teams known so far. Derived
// games show TBD until the games feeding them are decided.
func (b Bracket) Matchups(seeds []string, rounds ...RoundScores) []Pairing {
	r := newResolver(b, seeds, rounds)
	pairings := make([]Pairing, 0, len(b.Games))
	for _, g := range b.Games {
		teams, _ := r.teams(g)
		pairings = append(pairings, Pairing{Game: g, Team1: teams[0], Team2: teams[1]})
	}
	return pairings
}

// ApplyPlacements reorders final standings: placed teams by placement, then
// everyone else in their existing order.
func ApplyPlacements(rows []models.StandingsRow, placements map[string]int) []models.StandingsRow {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.StandingsRow) int {
		pa, okA := placements[a.Abbrev]
		pb, okB := placements[b.Abbrev]
		switch {
		case okA && okB:
			return cmp.Compare(pa, pb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}
