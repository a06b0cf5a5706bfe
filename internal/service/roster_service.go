package service

import (
	"fmt"
	"sort"
	"strings"

	"chmfc/internal/core"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cast"
)

// PlayerCard is a roster entry with its derived overall rating
type PlayerCard struct {
	*core.Player
	Overall int `json:"overall"`
}

// SquadGroup is one section of the roster page
type SquadGroup struct {
	Squad   string        `json:"squad"`
	Players []*PlayerCard `json:"players"`
}

// PlayerProfile is the player detail page
type PlayerProfile struct {
	*core.Player
	Overall int            `json:"overall"`
	Ratings map[string]int `json:"ratings"`
}

// Comparison puts two profiles side by side
type Comparison struct {
	Left  *PlayerProfile `json:"left"`
	Right *PlayerProfile `json:"right"`
}

type RosterService struct {
	players core.PlayerRepository
}

func NewRosterService(players core.PlayerRepository) *RosterService {
	return &RosterService{players: players}
}

// similarity threshold for typo-tolerant name search
const nameMatchThreshold = 0.7

func matchesName(query, name string) bool {
	if fuzzy.MatchNormalizedFold(query, name) {
		return true
	}
	q := strings.ToLower(query)
	n := strings.ToLower(name)
	distance := fuzzy.LevenshteinDistance(q, n)
	maxLen := float64(max(len(q), len(n)))
	return 1-float64(distance)/maxLen > nameMatchThreshold
}

// Roster groups players by squad. The men's and women's first teams come
// first, then any other squad by name. An optional query filters by player name.
func (s *RosterService) Roster(query string) ([]*SquadGroup, error) {
	players, err := s.players.List("")
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	groups := make(map[string]*SquadGroup)
	for _, p := range players {
		if query != "" && !matchesName(query, p.Name) {
			continue
		}
		g, ok := groups[p.Squad]
		if !ok {
			g = &SquadGroup{Squad: p.Squad}
			groups[p.Squad] = g
		}
		g.Players = append(g.Players, &PlayerCard{Player: p, Overall: p.Overall()})
	}

	out := make([]*SquadGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := squadRank(out[i].Squad), squadRank(out[j].Squad)
		if ri != rj {
			return ri < rj
		}
		return out[i].Squad < out[j].Squad
	})
	return out, nil
}

func squadRank(squad string) int {
	switch squad {
	case core.SquadMen:
		return 0
	case core.SquadWomen:
		return 1
	default:
		return 2
	}
}

func (s *RosterService) Profile(id string) (*PlayerProfile, error) {
	p, err := s.players.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &PlayerProfile{Player: p, Overall: p.Overall(), Ratings: core.CategoryRatings(p.Stats)}, nil
}

func (s *RosterService) Compare(leftID, rightID string) (*Comparison, error) {
	if leftID == "" || rightID == "" {
		return nil, fmt.Errorf("%w: two players are required", core.ErrInvalidInput)
	}
	left, err := s.Profile(leftID)
	if err != nil {
		return nil, err
	}
	right, err := s.Profile(rightID)
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Right: right}, nil
}

// Players lists player cards, optionally restricted to one squad
func (s *RosterService) Players(squad string) ([]*PlayerCard, error) {
	players, err := s.players.List(squad)
	if err != nil {
		return nil, err
	}
	cards := make([]*PlayerCard, len(players))
	for i, p := range players {
		cards[i] = &PlayerCard{Player: p, Overall: p.Overall()}
	}
	return cards, nil
}

// SaveProfile writes the profile form. Season numbers and stats are kept as stored.
func (s *RosterService) SaveProfile(p *core.Player) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: player name is required", core.ErrInvalidInput)
	}
	if p.ID == "" {
		return s.players.Create(p)
	}

	current, err := s.players.GetByID(p.ID)
	if err != nil {
		return err
	}
	current.Name = p.Name
	current.Number = p.Number
	current.Position = p.Position
	current.Squad = p.Squad
	current.Nationality = p.Nationality
	current.BirthDate = p.BirthDate
	current.Height = p.Height
	current.ImageURL = p.ImageURL
	current.Bio = p.Bio
	current.Status = p.Status
	current.Year = p.Year
	current.Traits = p.Traits
	if err := s.players.Update(current); err != nil {
		return err
	}
	*p = *current
	return nil
}

// UpdateStats applies the stats form. Keys are either a season field
// ("goals", "apps", ...) or "category.attribute" for a rating leaf.
// Values are parsed leniently; blank values are skipped.
func (s *RosterService) UpdateStats(id string, form map[string]string) (*PlayerProfile, error) {
	p, err := s.players.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.Stats == nil {
		p.Stats = core.PlayerStats{}
	}

	season := map[string]*int{
		"apps":         &p.Apps,
		"goals":        &p.Goals,
		"assists":      &p.Assists,
		"yellow_cards": &p.YellowCards,
		"red_cards":    &p.RedCards,
		"potential":    &p.Potential,
		"skill_moves":  &p.SkillMoves,
		"weak_foot":    &p.WeakFoot,
	}

	for key, raw := range form {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if field, ok := season[key]; ok {
			v, err := cast.ToIntE(raw)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("%w: %s must be a non-negative whole number", core.ErrInvalidInput, key)
			}
			*field = v
			continue
		}

		category, attr, ok := strings.Cut(key, ".")
		if !ok || attr == "" || !isStatCategory(category) {
			return nil, fmt.Errorf("%w: unknown stat %q", core.ErrInvalidInput, key)
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil || v < 0 || v > 99 {
			return nil, fmt.Errorf("%w: %s must be between 0 and 99", core.ErrInvalidInput, key)
		}
		if p.Stats[category] == nil {
			p.Stats[category] = map[string]float64{}
		}
		p.Stats[category][attr] = v
	}

	if err := s.players.Update(p); err != nil {
		return nil, err
	}
	return &PlayerProfile{Player: p, Overall: p.Overall(), Ratings: core.CategoryRatings(p.Stats)}, nil
}

func isStatCategory(c string) bool {
	for _, known := range core.StatCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (s *RosterService) Delete(id string) error {
	return s.players.Delete(id)
}
