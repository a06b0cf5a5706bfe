package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chmfc/internal/adapter/repository"
	"chmfc/internal/core"
	"chmfc/internal/testutil"

	pbCore "github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/require"
)

// repos bundles the PocketBase-backed repositories of a test app
type repos struct {
	app        pbCore.App
	news       core.NewsRepository
	matches    core.MatchRepository
	highlights core.HighlightRepository
	players    core.PlayerRepository
	standings  core.StandingsRepository
	products   core.ProductRepository
	orders     core.OrderRepository
	events     core.EventRepository
	polls      core.PollRepository
	users      core.UserRepository
	accounts   core.AccountStore
	settings   core.SettingsRepository
	stats      core.StatsRepository
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	app := testutil.NewApp(t)
	return &repos{
		app:        app,
		news:       repository.NewNewsRepo(app),
		matches:    repository.NewMatchRepo(app),
		highlights: repository.NewHighlightRepo(app),
		players:    repository.NewPlayerRepo(app),
		standings:  repository.NewStandingsRepo(app),
		products:   repository.NewProductRepo(app),
		orders:     repository.NewOrderRepo(app),
		events:     repository.NewEventRepo(app),
		polls:      repository.NewPollRepo(app),
		users:      repository.NewUserRepo(app),
		accounts:   repository.NewAccountStore(app),
		settings:   repository.NewSettingsRepo(app),
		stats:      repository.NewStatsRepo(app),
	}
}

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 15, 0, 0, 0, time.UTC)
}

func (r *repos) match(t *testing.T, opponent string, status core.MatchStatus, when time.Time) *core.Match {
	t.Helper()
	m := &core.Match{Opponent: opponent, Status: status, Date: when, Venue: core.VenueHome, Competition: "League"}
	require.NoError(t, r.matches.Create(m))
	return m
}

func (r *repos) player(t *testing.T, name, squad string) *core.Player {
	t.Helper()
	p := &core.Player{Name: name, Squad: squad}
	require.NoError(t, r.players.Create(p))
	return p
}

func (r *repos) profile(t *testing.T, email, name string, role core.Role) *core.UserProfile {
	t.Helper()
	rec := testutil.CreateUser(t, r.app, email, name, string(role))
	u, err := r.users.GetByID(rec.Id)
	require.NoError(t, err)
	return u
}

type topicMessage struct {
	topic, title, body string
	data               map[string]string
}

type fakeNotifier struct {
	mu         sync.Mutex
	orders     []*core.Order
	tokens     []string
	stale      []string
	topics     []topicMessage
	subscribed []string
	orderErr   error
}

func (f *fakeNotifier) NotifyNewOrder(_ context.Context, tokens []string, order *core.Order) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	f.tokens = append(f.tokens, tokens...)
	return f.stale, f.orderErr
}

func (f *fakeNotifier) NotifyTopic(_ context.Context, topic, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topicMessage{topic: topic, title: title, body: body, data: data})
	return nil
}

func (f *fakeNotifier) SubscribeToTopic(_ context.Context, tokens []string, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tok := range tokens {
		f.subscribed = append(f.subscribed, topic+"/"+tok)
	}
	return nil
}

type fakeDrafter struct {
	calls int
	draft *core.ArticleDraft
	err   error
}

func (f *fakeDrafter) DraftArticle(_ context.Context, _ core.DraftRequest) (*core.ArticleDraft, error) {
	f.calls++
	return f.draft, f.err
}

var errProvider = errors.New("provider unavailable")
