package core

import (
	"math"
	"sort"
)

// OverallRating is the rounded mean of every leaf attribute across all
// categories. A player without stats rates 0.
func OverallRating(stats PlayerStats) int {
	var sum float64
	var n int
	for _, attrs := range stats {
		for _, v := range attrs {
			sum += v
			n++
		}
	}
	return roundHalfUp(sum / float64(max(n, 1)))
}

// CategoryRating is OverallRating restricted to a single category
func CategoryRating(stats PlayerStats, category string) int {
	return OverallRating(PlayerStats{category: stats[category]})
}

// CategoryRatings returns the rating of every known category
func CategoryRatings(stats PlayerStats) map[string]int {
	out := make(map[string]int, len(StatCategories))
	for _, c := range StatCategories {
		out[c] = CategoryRating(stats, c)
	}
	return out
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// TotalVotes sums the vote counters of all options
func TotalVotes(options []PollOption) int {
	total := 0
	for _, o := range options {
		total += o.Votes
	}
	return total
}

// VotePercentage is votes/total*100, or 0 when nothing was cast yet
func VotePercentage(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(votes) / float64(total) * 100
}

// SortStandings orders rows by ascending league position
func SortStandings(rows []*StandingsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})
}

// SortUpcoming puts the nearest fixture first
func SortUpcoming(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
}

// SortPast puts the most recent result first
func SortPast(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.After(matches[j].Date)
	})
}

func SortNewsByDate(articles []*NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date.After(articles[j].Date)
	})
}

func SortOrdersByDate(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}

func SortEventsByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
