package quizengine

import (
	"sort"

	"github.com/google/uuid"

	"StudyVillage/src/core/models"
)

// PlaceholderPhotoURL is shown for players without a profile photo.
const PlaceholderPhotoURL = "https://placehold.co/100x100.png"

// ProfileBatchSize is the most user ids a single profile lookup may carry.
const ProfileBatchSize = 30

// LeaderboardEntry is one ranked row of a quiz leaderboard.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	Score       int       `json:"score"`
	Duration    int       `json:"duration"` // whole seconds
}

// AttemptDuration is the attempt's wall time in whole seconds, truncated
// toward zero. Attempts missing either timestamp count as zero.
func AttemptDuration(a models.QuizAttempt) int {
	if a.StartedAt == nil || a.CompletedAt == nil {
		return 0
	}
	millis := a.CompletedAt.Sub(*a.StartedAt).Milliseconds()
	if millis < 0 {
		return 0
	}
	return int(millis / 1000)
}

// BestAttempts reduces completed attempts to one per user: highest score,
// ties broken by shorter duration.
func BestAttempts(attempts []models.QuizAttempt) []models.QuizAttempt {
	bestByUser := make(map[uuid.UUID]models.QuizAttempt)
	order := make([]uuid.UUID, 0, len(attempts))

	for _, attempt := range attempts {
		if !attempt.Completed {
			continue
		}
		best, seen := bestByUser[attempt.UserID]
		if !seen {
			bestByUser[attempt.UserID] = attempt
			order = append(order, attempt.UserID)
			continue
		}
		if attempt.Score > best.Score ||
			(attempt.Score == best.Score && AttemptDuration(attempt) < AttemptDuration(best)) {
			bestByUser[attempt.UserID] = attempt
		}
	}

	result := make([]models.QuizAttempt, 0, len(order))
	for _, userID := range order {
		result = append(result, bestByUser[userID])
	}
	return result
}

// BuildLeaderboard ranks each user's best completed attempt by score
// descending, then duration ascending. Ranks are sequential 1..N with no
// gaps; exact ties keep their stable sort order. Profiles missing from the
// map fall back to "Anonymous" and a placeholder photo.
func BuildLeaderboard(attempts []models.QuizAttempt, profiles map[uuid.UUID]models.User) []LeaderboardEntry {
	best := BestAttempts(attempts)

	entries := make([]LeaderboardEntry, 0, len(best))
	for _, attempt := range best {
		entry := LeaderboardEntry{
			UserID:      attempt.UserID,
			DisplayName: "Anonymous",
			PhotoURL:    PlaceholderPhotoURL,
			Score:       attempt.Score,
			Duration:    AttemptDuration(attempt),
		}
		if profile, ok := profiles[attempt.UserID]; ok {
			if profile.DisplayName != "" {
				entry.DisplayName = profile.DisplayName
			}
			if profile.PhotoURL != "" {
				entry.PhotoURL = profile.PhotoURL
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Duration < entries[j].Duration
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ChunkUUIDs splits ids into batches of at most size, for stores that cap
// the number of ids per lookup.
func ChunkUUIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
