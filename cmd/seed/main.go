package main

import (
	"context"
	"log"
	"time"

	"chmfc/internal/adapter/repository"
	"chmfc/internal/core"
	"chmfc/internal/service"

	_ "chmfc/migrations"

	"github.com/pocketbase/pocketbase"
	"go.uber.org/zap"
)

func main() {
	app := pocketbase.New()
	if err := app.Bootstrap(); err != nil {
		log.Fatal(err)
	}
	if err := app.RunAllMigrations(); err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	players := repository.NewPlayerRepo(app)
	existing, err := players.List("")
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) > 0 {
		logger.Info("demo data already present", zap.Int("players", len(existing)))
		return
	}

	if err := seed(app, logger); err != nil {
		log.Fatal(err)
	}
	logger.Info("demo data created")
}

func seed(app *pocketbase.PocketBase, logger *zap.Logger) error {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	matchRepo := repository.NewMatchRepo(app)
	playerRepo := repository.NewPlayerRepo(app)

	matches := []*core.Match{
		{Opponent: "Riverside United", Date: day(-14), Time: "15:00", Competition: "League", Venue: core.VenueHome,
			Status: core.MatchPast, Score: "3-1", Result: "W", YouTubeLink: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{Opponent: "Northgate Rovers", Date: day(-7), Time: "19:45", Competition: "Cup", Venue: core.VenueAway,
			Status: core.MatchPast, Score: "1-1", Result: "D"},
		{Opponent: "Harbour City", Date: day(6), Time: "15:00", Competition: "League", Venue: core.VenueHome,
			Status: core.MatchUpcoming},
		{Opponent: "Westfield Athletic", Date: day(13), Time: "17:30", Competition: "League", Venue: core.VenueAway,
			Status: core.MatchUpcoming},
	}
	for _, m := range matches {
		if err := matchRepo.Create(m); err != nil {
			return err
		}
	}

	stats := func(base float64) core.PlayerStats {
		out := core.PlayerStats{}
		for i, cat := range core.StatCategories {
			v := base + float64(i%3)
			out[cat] = map[string]float64{"rating": v}
		}
		return out
	}
	squad := []*core.Player{
		{Name: "Alex Striker", Number: 9, Position: "ST", Squad: core.SquadMen, Nationality: "England",
			Status: "Available", Goals: 12, Assists: 4, Apps: 20, Potential: 88, SkillMoves: 4, WeakFoot: 3, Stats: stats(82)},
		{Name: "Sam Keeper", Number: 1, Position: "GK", Squad: core.SquadMen, Nationality: "Wales",
			Status: "Available", Apps: 20, Potential: 80, SkillMoves: 1, WeakFoot: 2, Stats: stats(70)},
		{Name: "Maria Lopes", Number: 10, Position: "CAM", Squad: core.SquadWomen, Nationality: "Portugal",
			Status: "Available", Goals: 8, Assists: 11, Apps: 18, Potential: 90, SkillMoves: 5, WeakFoot: 4, Stats: stats(84)},
		{Name: "Jo Castle", Number: 5, Position: "CB", Squad: core.SquadWomen, Nationality: "Scotland",
			Status: "Injured", Apps: 12, Potential: 79, SkillMoves: 2, WeakFoot: 3, Stats: stats(74)},
	}
	for _, p := range squad {
		if err := playerRepo.Create(p); err != nil {
			return err
		}
	}

	news := repository.NewNewsRepo(app)
	for _, a := range []*core.NewsArticle{
		{Title: "Three points at home", Content: "A composed display secured the win over Riverside United.",
			Author: "Club Media", Date: day(-13), Status: core.ArticleStatusPublished, Tags: []string{"match report"}},
		{Title: "Cup replay confirmed", Content: "Details to follow.", Author: "Club Media",
			Date: day(-6), Status: core.ArticleStatusDraft},
	} {
		if err := news.Create(a); err != nil {
			return err
		}
	}

	standings := repository.NewStandingsRepo(app)
	for i, row := range []*core.StandingsRow{
		{Name: "CHM FC", Played: 10, Won: 7, Drawn: 2, Lost: 1, GoalsFor: 21, GoalsAgainst: 8, Form: []string{"W", "D", "W", "W", "W"}},
		{Name: "Harbour City", Played: 10, Won: 6, Drawn: 2, Lost: 2, GoalsFor: 18, GoalsAgainst: 10, Form: []string{"W", "L", "W", "D", "W"}},
		{Name: "Riverside United", Played: 10, Won: 3, Drawn: 3, Lost: 4, GoalsFor: 12, GoalsAgainst: 15, Form: []string{"L", "L", "D", "W", "D"}},
	} {
		row.Position = i + 1
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = row.Won*3 + row.Drawn
		if err := standings.Create(row); err != nil {
			return err
		}
	}

	products := repository.NewProductRepo(app)
	for _, p := range []*core.Product{
		{Name: "Home Shirt 2026", Price: 59.99, Stock: 120, Category: "Kit", Description: "Official home shirt."},
		{Name: "Club Scarf", Price: 15, Stock: 300, Category: "Accessories", Description: "Knitted scarf in club colours."},
	} {
		if err := products.Create(p); err != nil {
			return err
		}
	}

	events := repository.NewEventRepo(app)
	if err := events.Create(&core.Event{
		Title: "Supporters Evening", Date: day(20), Location: "Clubhouse",
		Description: "Meet the squad and coaching staff.",
	}); err != nil {
		return err
	}

	polls := service.NewPollService(repository.NewPollRepo(app), matchRepo, playerRepo, nil, logger)
	_, err := polls.CreatePoll(context.Background(), &core.CreatePollRequest{
		Question:  "Who was your player of the match?",
		MatchID:   matches[0].ID,
		PlayerIDs: []string{squad[0].ID, squad[1].ID},
	})
	return err
}
