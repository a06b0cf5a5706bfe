package core

import (
	"testing"
	"time"
)

func TestOverallRating(t *testing.T) {
	tests := []struct {
		name     string
		stats    PlayerStats
		expected int
	}{
		{"nil stats", nil, 0},
		{"empty categories", PlayerStats{"pace": {}}, 0},
		{"single leaf", PlayerStats{"pace": {"acc": 77}}, 77},
		{
			"mean across categories",
			PlayerStats{
				"pace":     {"acc": 80, "speed": 90},
				"shooting": {"fin": 70, "long": 60},
			},
			75,
		},
		{"rounds half up", PlayerStats{"pace": {"acc": 70, "speed": 71}}, 71},
		{"rounds down", PlayerStats{"pace": {"acc": 70, "speed": 70, "x": 71}}, 70},
	}

	for _, tt := range tests {
		if got := OverallRating(tt.stats); got != tt.expected {
			t.Errorf("%s: OverallRating = %d; want %d", tt.name, got, tt.expected)
		}
	}
}

func TestPlayerOverallFollowsStats(t *testing.T) {
	p := &Player{Stats: PlayerStats{"defense": {"mark": 50}}}
	if p.Overall() != 50 {
		t.Fatalf("expected 50, got %d", p.Overall())
	}
	p.Stats["defense"]["mark"] = 90
	if p.Overall() != 90 {
		t.Fatalf("overall must follow current stats, got %d", p.Overall())
	}
}

func TestCategoryRatings(t *testing.T) {
	stats := PlayerStats{
		"pace":    {"acc": 90, "speed": 80},
		"passing": {"short": 60},
	}
	ratings := CategoryRatings(stats)
	if ratings["pace"] != 85 {
		t.Errorf("pace = %d; want 85", ratings["pace"])
	}
	if ratings["passing"] != 60 {
		t.Errorf("passing = %d; want 60", ratings["passing"])
	}
	if ratings["defense"] != 0 {
		t.Errorf("missing category should rate 0, got %d", ratings["defense"])
	}
	if len(ratings) != len(StatCategories) {
		t.Errorf("expected %d categories, got %d", len(StatCategories), len(ratings))
	}
}

func TestVotePercentage(t *testing.T) {
	options := []PollOption{{Name: "A", Votes: 3}, {Name: "B", Votes: 1}, {Name: "C"}}
	total := TotalVotes(options)
	if total != 4 {
		t.Fatalf("total = %d; want 4", total)
	}

	want := []float64{75, 25, 0}
	var sum float64
	for i, o := range options {
		got := VotePercentage(o.Votes, total)
		if got != want[i] {
			t.Errorf("option %s: %.2f; want %.2f", o.Name, got, want[i])
		}
		sum += got
	}
	if sum != 100 {
		t.Errorf("percentages should add to 100, got %.2f", sum)
	}

	if got := VotePercentage(0, 0); got != 0 {
		t.Errorf("zero total must give 0, got %.2f", got)
	}
}

func TestSortStandings(t *testing.T) {
	rows := []*StandingsRow{{Position: 3, Name: "C"}, {Position: 1, Name: "A"}, {Position: 2, Name: "B"}}
	SortStandings(rows)
	for i, r := range rows {
		if r.Position != i+1 {
			t.Fatalf("row %d has position %d", i, r.Position)
		}
	}
}

func TestSortMatches(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	matches := []*Match{{ID: "b", Date: day(10)}, {ID: "a", Date: day(5)}, {ID: "c", Date: day(20)}}

	SortUpcoming(matches)
	if matches[0].ID != "a" || matches[2].ID != "c" {
		t.Errorf("upcoming order wrong: %s %s %s", matches[0].ID, matches[1].ID, matches[2].ID)
	}

	SortPast(matches)
	if matches[0].ID != "c" || matches[2].ID != "a" {
		t.Errorf("past order wrong: %s %s %s", matches[0].ID, matches[1].ID, matches[2].ID)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("Cancelled").Valid() {
		t.Error("Cancelled is not an order status")
	}
}
