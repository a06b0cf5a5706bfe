package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chmfc/internal/core"
	"chmfc/pkg/youtube"

	"go.uber.org/zap"
)

// NewsService serves published articles to fans and the full set to admins
type NewsService struct {
	news    core.NewsRepository
	drafter core.ArticleDrafter
	logger  *zap.Logger
}

func NewNewsService(news core.NewsRepository, drafter core.ArticleDrafter, logger *zap.Logger) *NewsService {
	return &NewsService{news: news, drafter: drafter, logger: logger}
}

// Published lists published articles newest first
func (s *NewsService) Published() ([]*core.NewsArticle, error) {
	articles, err := s.news.List(core.ArticleStatusPublished)
	if err != nil {
		return nil, err
	}
	core.SortNewsByDate(articles)
	return articles, nil
}

// Latest returns the newest published article, or nil when there is none
func (s *NewsService) Latest() (*core.NewsArticle, error) {
	articles, err := s.Published()
	if err != nil || len(articles) == 0 {
		return nil, err
	}
	return articles[0], nil
}

// Article returns a published article. Drafts are reported as not found.
func (s *NewsService) Article(id string) (*core.NewsArticle, error) {
	a, err := s.news.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.Status != core.ArticleStatusPublished {
		return nil, fmt.Errorf("news %s: %w", id, core.ErrNotFound)
	}
	return a, nil
}

func (s *NewsService) All() ([]*core.NewsArticle, error) {
	articles, err := s.news.List("")
	if err != nil {
		return nil, err
	}
	core.SortNewsByDate(articles)
	return articles, nil
}

func (s *NewsService) Get(id string) (*core.NewsArticle, error) {
	return s.news.GetByID(id)
}

func (s *NewsService) Save(a *core.NewsArticle) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", core.ErrInvalidInput)
	}
	switch a.Status {
	case "":
		a.Status = core.ArticleStatusDraft
	case core.ArticleStatusDraft, core.ArticleStatusPublished:
	default:
		return fmt.Errorf("%w: unknown status %q", core.ErrInvalidInput, a.Status)
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}

	if a.ID == "" {
		return s.news.Create(a)
	}
	return s.news.Update(a)
}

func (s *NewsService) Delete(id string) error {
	return s.news.Delete(id)
}

// ErrDraftingDisabled is returned when no Gemini key was configured
var ErrDraftingDisabled = errors.New("article drafting is not configured")

// Draft asks the AI drafter for a match report. The result is not saved.
func (s *NewsService) Draft(ctx context.Context, req core.DraftRequest) (*core.ArticleDraft, error) {
	req.Opponent = strings.TrimSpace(req.Opponent)
	req.Score = strings.TrimSpace(req.Score)
	req.Highlights = strings.TrimSpace(req.Highlights)
	if req.Opponent == "" || req.Score == "" || req.Highlights == "" {
		return nil, fmt.Errorf("%w: opponent, score and highlights are required", core.ErrInvalidInput)
	}
	if s.drafter == nil {
		return nil, fmt.Errorf("%w: %v", core.ErrGenerationFailed, ErrDraftingDisabled)
	}

	draft, err := s.drafter.DraftArticle(ctx, req)
	if err != nil {
		s.logger.Warn("[NEWS_SERVICE] draft failed", zap.String("opponent", req.Opponent), zap.Error(err))
		return nil, err
	}
	return draft, nil
}

// Schedule is the fixtures page: the three tabs plus highlight clips
type Schedule struct {
	Upcoming   []*core.Match     `json:"upcoming"`
	Past       []*core.Match     `json:"past"`
	Live       *core.Match       `json:"live"`
	Highlights []*core.Highlight `json:"highlights"`
}

type ScheduleService struct {
	matches    core.MatchRepository
	highlights core.HighlightRepository
}

func NewScheduleService(matches core.MatchRepository, highlights core.HighlightRepository) *ScheduleService {
	return &ScheduleService{matches: matches, highlights: highlights}
}

func withEmbed(matches []*core.Match) []*core.Match {
	for _, m := range matches {
		m.EmbedURL = youtube.EmbedURL(m.YouTubeLink)
	}
	return matches
}

func (s *ScheduleService) Schedule() (*Schedule, error) {
	all, err := s.matches.List("")
	if err != nil {
		return nil, err
	}
	withEmbed(all)

	out := &Schedule{Upcoming: []*core.Match{}, Past: []*core.Match{}}
	for _, m := range all {
		switch m.Status {
		case core.MatchUpcoming:
			out.Upcoming = append(out.Upcoming, m)
		case core.MatchPast:
			out.Past = append(out.Past, m)
		case core.MatchLive:
			if out.Live == nil {
				out.Live = m
			}
		}
	}
	core.SortUpcoming(out.Upcoming)
	core.SortPast(out.Past)

	if out.Highlights, err = s.Highlights(); err != nil {
		return nil, err
	}
	return out, nil
}

// Highlights lists every clip newest first with its embed URL
func (s *ScheduleService) Highlights() ([]*core.Highlight, error) {
	highlights, err := s.highlights.List()
	if err != nil {
		return nil, err
	}
	for _, h := range highlights {
		h.EmbedURL = youtube.EmbedURL(h.YouTubeLink)
	}
	return highlights, nil
}

// NextMatch returns the nearest upcoming fixture, or nil
func (s *ScheduleService) NextMatch() (*core.Match, error) {
	upcoming, err := s.matches.List(core.MatchUpcoming)
	if err != nil || len(upcoming) == 0 {
		return nil, err
	}
	core.SortUpcoming(upcoming)
	return withEmbed(upcoming[:1])[0], nil
}

// LiveMatch returns the first match in Live status, or nil
func (s *ScheduleService) LiveMatch() (*core.Match, error) {
	live, err := s.matches.List(core.MatchLive)
	if err != nil || len(live) == 0 {
		return nil, err
	}
	return withEmbed(live[:1])[0], nil
}

// Matches lists matches with an optional status filter. Past results come
// most recent first, everything else nearest first.
func (s *ScheduleService) Matches(status core.MatchStatus) ([]*core.Match, error) {
	matches, err := s.matches.List(status)
	if err != nil {
		return nil, err
	}
	if status == core.MatchPast {
		core.SortPast(matches)
	} else {
		core.SortUpcoming(matches)
	}
	return withEmbed(matches), nil
}

func (s *ScheduleService) SaveMatch(m *core.Match) error {
	m.Opponent = strings.TrimSpace(m.Opponent)
	if m.Opponent == "" {
		return fmt.Errorf("%w: opponent is required", core.ErrInvalidInput)
	}
	if m.Status == "" {
		m.Status = core.MatchUpcoming
	}
	switch m.Status {
	case core.MatchUpcoming, core.MatchLive, core.MatchPast:
	default:
		return fmt.Errorf("%w: unknown match status %q", core.ErrInvalidInput, m.Status)
	}
	if m.Venue != "" && m.Venue != core.VenueHome && m.Venue != core.VenueAway {
		return fmt.Errorf("%w: venue must be Home or Away", core.ErrInvalidInput)
	}

	if m.ID == "" {
		return s.matches.Create(m)
	}
	return s.matches.Update(m)
}

func (s *ScheduleService) DeleteMatch(id string) error {
	return s.matches.Delete(id)
}

func (s *ScheduleService) MatchHighlights(matchID string) ([]*core.Highlight, error) {
	highlights, err := s.highlights.ListByMatch(matchID)
	if err != nil {
		return nil, err
	}
	for _, h := range highlights {
		h.EmbedURL = youtube.EmbedURL(h.YouTubeLink)
	}
	return highlights, nil
}

func (s *ScheduleService) AddHighlight(h *core.Highlight) error {
	if strings.TrimSpace(h.Title) == "" || h.MatchID == "" {
		return fmt.Errorf("%w: title and match are required", core.ErrInvalidInput)
	}
	if youtube.ExtractVideoID(h.YouTubeLink) == "" {
		return fmt.Errorf("%w: not a YouTube link", core.ErrInvalidInput)
	}
	match, err := s.matches.GetByID(h.MatchID)
	if err != nil {
		return err
	}
	if h.Date.IsZero() {
		h.Date = match.Date
	}
	return s.highlights.Create(h)
}

func (s *ScheduleService) DeleteHighlight(id string) error {
	return s.highlights.Delete(id)
}

type StandingsService struct {
	standings core.StandingsRepository
}

func NewStandingsService(standings core.StandingsRepository) *StandingsService {
	return &StandingsService{standings: standings}
}

// Table returns the league table ordered by position
func (s *StandingsService) Table() ([]*core.StandingsRow, error) {
	rows, err := s.standings.List()
	if err != nil {
		return nil, err
	}
	core.SortStandings(rows)
	return rows, nil
}

func (s *StandingsService) Save(row *core.StandingsRow) error {
	row.Name = strings.TrimSpace(row.Name)
	if row.Name == "" || row.Position < 1 {
		return fmt.Errorf("%w: team name and a position of at least 1 are required", core.ErrInvalidInput)
	}
	for _, f := range row.Form {
		if f != "W" && f != "D" && f != "L" {
			return fmt.Errorf("%w: form entries must be W, D or L", core.ErrInvalidInput)
		}
	}
	if row.ID == "" {
		return s.standings.Create(row)
	}
	return s.standings.Update(row)
}

func (s *StandingsService) Delete(id string) error {
	return s.standings.Delete(id)
}

type EventService struct {
	events core.EventRepository
}

func NewEventService(events core.EventRepository) *EventService {
	return &EventService{events: events}
}

func (s *EventService) List() ([]*core.Event, error) {
	events, err := s.events.List()
	if err != nil {
		return nil, err
	}
	core.SortEventsByDate(events)
	return events, nil
}

func (s *EventService) Save(e *core.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", core.ErrInvalidInput)
	}
	if e.TicketsSold < 0 {
		return fmt.Errorf("%w: tickets sold cannot be negative", core.ErrInvalidInput)
	}
	if e.ID == "" {
		return s.events.Create(e)
	}
	return s.events.Update(e)
}

func (s *EventService) Delete(id string) error {
	return s.events.Delete(id)
}
