package services

import (
	"sort"
	"time"

	"placement-panic/internal/models"
)

const (
	recentSessionsLimit = 10
	scoreHistoryLimit   = 20
	panicIndexPerCount  = 5
	panicIndexCap       = 90
)

// ComputeStats reduces one user's interviews to the dashboard statistics.
// Callers are expected to pass a single owner's interviews; the order they
// arrive in is not trusted and they are ranked by CompletedAt, newest first.
func ComputeStats(interviews []*models.Interview) *models.UserStats {
	return computeStatsAt(interviews, time.Now())
}

func computeStatsAt(interviews []*models.Interview, now time.Time) *models.UserStats {
	stats := &models.UserStats{
		RecentSessions:      []*models.Interview{},
		CategoryBreakdown:   map[string]int{},
		DifficultyBreakdown: map[string]int{},
		ScoreHistory:        []models.ScorePoint{},
	}

	ranked := newestFirst(interviews)
	if len(ranked) == 0 {
		return stats
	}

	sum := 0
	best := ranked[0].AverageRating
	for _, iv := range ranked {
		sum += iv.AverageRating
		if iv.AverageRating > best {
			best = iv.AverageRating
		}
		stats.CategoryBreakdown[iv.Category]++
		stats.DifficultyBreakdown[iv.Difficulty]++
	}

	total := len(ranked)
	stats.TotalInterviews = total
	stats.AverageScore = roundedMean(sum, total)
	stats.BestScore = best
	stats.PanicReductionIndex = PanicReductionIndex(total)
	stats.RecentSessions = append(stats.RecentSessions, ranked[:min(total, recentSessionsLimit)]...)

	// Chart reads left to right, so the newest window is emitted oldest first.
	window := ranked[:min(total, scoreHistoryLimit)]
	for i := len(window) - 1; i >= 0; i-- {
		date := window[i].CompletedAt
		if date.IsZero() {
			date = now
		}
		stats.ScoreHistory = append(stats.ScoreHistory, models.ScorePoint{Date: date, Score: window[i].AverageRating})
	}

	return stats
}

// PanicReductionIndex grows with the number of completed interviews and
// saturates at 90. It ignores how well the interviews went.
func PanicReductionIndex(totalInterviews int) int {
	if totalInterviews <= 0 {
		return 0
	}
	return min(panicIndexPerCount*totalInterviews, panicIndexCap)
}

// roundedMean returns sum/count rounded half up (toward +Inf) to one decimal
// place. The rounding is done in integer tenths so 3.05 becomes 3.1
// regardless of how the quotient is represented in binary. Go division
// truncates toward zero, so a negative numerator is floored by hand.
func roundedMean(sum, count int) float64 {
	if count <= 0 {
		return 0
	}
	num, den := 20*sum+count, 2*count
	tenths := num / den
	if num%den != 0 && num < 0 {
		tenths--
	}
	return float64(tenths) / 10
}

func newestFirst(interviews []*models.Interview) []*models.Interview {
	ranked := make([]*models.Interview, 0, len(interviews))
	for _, iv := range interviews {
		if iv != nil {
			ranked = append(ranked, iv)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].CompletedAt, ranked[j].CompletedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return ranked
}
