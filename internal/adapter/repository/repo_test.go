package repository

import (
	"testing"
	"time"

	"chmfc/internal/core"
	"chmfc/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsRepo_FilterAndOrder(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewNewsRepo(app)

	day := func(d int) time.Time { return time.Date(2026, 2, d, 10, 0, 0, 0, time.UTC) }
	for _, a := range []*core.NewsArticle{
		{Title: "old", Date: day(1), Status: core.ArticleStatusPublished},
		{Title: "draft", Date: day(9), Status: core.ArticleStatusDraft},
		{Title: "new", Date: day(5), Status: core.ArticleStatusPublished, Tags: []string{"match"}},
	} {
		require.NoError(t, repo.Create(a))
	}

	published, err := repo.List(core.ArticleStatusPublished)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "new", published[0].Title)
	assert.Equal(t, []string{"match"}, published[0].Tags)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "draft", all[0].Title)
}

func TestNewsRepo_NotFound(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewNewsRepo(app)

	_, err := repo.GetByID("doesnotexist123")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, repo.Delete("doesnotexist123"), core.ErrNotFound)
}

func TestPlayerRepo_StatsRoundTrip(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewPlayerRepo(app)

	p := &core.Player{
		Name:   "Alex Striker",
		Number: 9,
		Squad:  core.SquadMen,
		Traits: []string{"Finesse Shot"},
		Stats: core.PlayerStats{
			"pace":     {"acceleration": 88, "sprint_speed": 90},
			"shooting": {"finishing": 84},
		},
	}
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Stats, got.Stats)
	assert.Equal(t, 87, got.Overall())

	got.Stats["pace"]["acceleration"] = 70
	got.Goals = 12
	require.NoError(t, repo.Update(got))

	again, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, again.Goals)
	assert.Equal(t, float64(70), again.Stats["pace"]["acceleration"])

	women, err := repo.List(core.SquadWomen)
	require.NoError(t, err)
	assert.Empty(t, women)
}

func TestStandingsRepo_SortedByPosition(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewStandingsRepo(app)

	for _, row := range []*core.StandingsRow{
		{Position: 3, Name: "Third"},
		{Position: 1, Name: "CHM FC", Form: []string{"W", "W", "D"}},
		{Position: 2, Name: "Second"},
	} {
		require.NoError(t, repo.Create(row))
	}

	rows, err := repo.List()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Position)
	}
	assert.Equal(t, []string{"W", "W", "D"}, rows[0].Form)
}

func TestOrderRepo_CreateDefaults(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewOrderRepo(app)

	o := &core.Order{
		UserID:          "u1",
		UserName:        "Fan",
		ProductID:       "p1",
		ProductName:     "Home Jersey",
		Price:           49.99,
		ShippingAddress: "1 Club Road",
	}
	require.NoError(t, repo.Create(o))
	assert.Equal(t, core.OrderPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())

	require.NoError(t, repo.UpdateStatus(o.ID, core.OrderDelivered))
	got, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, core.OrderDelivered, got.Status)

	mine, err := repo.ListByUser("u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSettingsRepo_PaymentUpsert(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewSettingsRepo(app)

	// seeded by migration
	s, err := repo.Payment()
	require.NoError(t, err)
	assert.Equal(t, core.PaymentSettings{}, *s)

	want := core.PaymentSettings{
		BankName:       "Club Bank",
		AccountNumber:  "0123456789",
		AccountName:    "CHM FC",
		WhatsAppNumber: "+15550100",
	}
	require.NoError(t, repo.SavePayment(&want))

	got, err := repo.Payment()
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	// the singleton is updated in place
	n, err := app.CountRecords(core.CollectionSettings)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAccountStore_RegisterAndAuthenticate(t *testing.T) {
	app := testutil.NewApp(t)
	store := NewAccountStore(app)

	profile, token, err := store.Register(&core.SignUpRequest{
		Name:     "Jamie Fan",
		Email:    "jamie@chmfc.test",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, core.RoleUser, profile.Role)
	assert.Equal(t, "https://placehold.co/40x40.png?text=J", profile.AvatarURL)

	_, _, err = store.Register(&core.SignUpRequest{Email: "jamie@chmfc.test", Password: "anotherpass1"})
	assert.ErrorIs(t, err, core.ErrEmailTaken)

	_, _, err = store.Authenticate("jamie@chmfc.test", "wrong-password")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)

	_, _, err = store.Authenticate("nobody@chmfc.test", "supersecret1")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)

	_, token, err = store.Authenticate("jamie@chmfc.test", "supersecret1")
	require.NoError(t, err)

	resolved, superuser, err := store.ResolveToken(token)
	require.NoError(t, err)
	assert.False(t, superuser)
	assert.Equal(t, profile.ID, resolved.ID)

	_, _, err = store.ResolveToken("garbage")
	assert.ErrorIs(t, err, core.ErrAuthRequired)
}

func TestUserRepo_AdminDeviceTokens(t *testing.T) {
	app := testutil.NewApp(t)
	repo := NewUserRepo(app)

	admin := testutil.CreateUser(t, app, "admin@chmfc.test", "Admin", "Admin")
	fan := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")

	require.NoError(t, repo.SetDeviceToken(admin.Id, "tok-admin"))
	require.NoError(t, repo.SetDeviceToken(fan.Id, "tok-fan"))

	tokens, err := repo.AdminDeviceTokens()
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-admin"}, tokens)

	require.NoError(t, repo.ClearDeviceToken("tok-admin"))
	tokens, err = repo.AdminDeviceTokens()
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestStatsRepo(t *testing.T) {
	app := testutil.NewApp(t)
	stats := NewStatsRepo(app)
	orders := NewOrderRepo(app)

	for _, price := range []float64{10, 15.5} {
		require.NoError(t, orders.Create(&core.Order{
			UserID: "u1", ProductID: "p1", Price: price, ShippingAddress: "x",
		}))
	}

	revenue, err := stats.OrderRevenue()
	require.NoError(t, err)
	assert.InDelta(t, 25.5, revenue, 0.001)

	pending, err := stats.Count(core.CollectionOrders, "status = {:s}", map[string]any{"s": "Pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, pending)

	days, err := stats.DailyOrders("2000-01-01")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Count)
}
