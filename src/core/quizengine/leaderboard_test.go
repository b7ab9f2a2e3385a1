package quizengine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyVillage/src/core/models"
)

func completedAttempt(userID uuid.UUID, score int, duration time.Duration) models.QuizAttempt {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(duration)
	return models.QuizAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		Score:       score,
		Completed:   true,
		StartedAt:   &started,
		CompletedAt: &completed,
	}
}

func TestAttemptDuration(t *testing.T) {
	a := completedAttempt(uuid.New(), 50, 90*time.Second)
	assert.Equal(t, 90, AttemptDuration(a))

	// truncated toward zero, not rounded
	a = completedAttempt(uuid.New(), 50, 90*time.Second+900*time.Millisecond)
	assert.Equal(t, 90, AttemptDuration(a))

	// missing timestamps count as zero
	a.StartedAt = nil
	assert.Equal(t, 0, AttemptDuration(a))
}

func TestBestAttemptsScoreBeatsDuration(t *testing.T) {
	userA := uuid.New()
	attempts := []models.QuizAttempt{
		completedAttempt(userA, 80, 120*time.Second),
		completedAttempt(userA, 90, 200*time.Second),
	}

	best := BestAttempts(attempts)
	require.Len(t, best, 1)
	assert.Equal(t, 90, best[0].Score)
}

func TestBestAttemptsTieBrokenByDuration(t *testing.T) {
	userA := uuid.New()
	fast := completedAttempt(userA, 90, 150*time.Second)
	slow := completedAttempt(userA, 90, 200*time.Second)

	best := BestAttempts([]models.QuizAttempt{slow, fast})
	require.Len(t, best, 1)
	assert.Equal(t, fast.ID, best[0].ID)
}

func TestBestAttemptsSkipsIncomplete(t *testing.T) {
	userA := uuid.New()
	inProgress := models.QuizAttempt{ID: uuid.New(), UserID: userA, Score: 100}

	best := BestAttempts([]models.QuizAttempt{inProgress})
	assert.Empty(t, best)
}

func TestBuildLeaderboardOrdering(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	attempts := []models.QuizAttempt{
		completedAttempt(userA, 80, 120*time.Second),
		completedAttempt(userA, 90, 200*time.Second),
		completedAttempt(userB, 90, 150*time.Second),
	}
	profiles := map[uuid.UUID]models.User{
		userA: {ID: userA, DisplayName: "Alina", PhotoURL: "https://cdn.example.com/a.png"},
		userB: {ID: userB, DisplayName: "Brian", PhotoURL: "https://cdn.example.com/b.png"},
	}

	board := BuildLeaderboard(attempts, profiles)
	require.Len(t, board, 2)

	// B wins the 90-point tie on the shorter duration
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, userB, board[0].UserID)
	assert.Equal(t, "Brian", board[0].DisplayName)
	assert.Equal(t, 150, board[0].Duration)

	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, userA, board[1].UserID)
	assert.Equal(t, 90, board[1].Score)
	assert.Equal(t, 200, board[1].Duration)
}

func TestBuildLeaderboardSequentialRanksOnTies(t *testing.T) {
	attempts := make([]models.QuizAttempt, 0, 4)
	for i := 0; i < 4; i++ {
		attempts = append(attempts, completedAttempt(uuid.New(), 70, 60*time.Second))
	}

	board := BuildLeaderboard(attempts, nil)
	require.Len(t, board, 4)
	for i, entry := range board {
		assert.Equal(t, i+1, entry.Rank)
	}
}

func TestBuildLeaderboardMissingProfileFallbacks(t *testing.T) {
	attempts := []models.QuizAttempt{completedAttempt(uuid.New(), 55, 45*time.Second)}

	board := BuildLeaderboard(attempts, map[uuid.UUID]models.User{})
	require.Len(t, board, 1)
	assert.Equal(t, "Anonymous", board[0].DisplayName)
	assert.Equal(t, PlaceholderPhotoURL, board[0].PhotoURL)
}

func TestChunkUUIDs(t *testing.T) {
	ids := make([]uuid.UUID, 65)
	for i := range ids {
		ids[i] = uuid.New()
	}

	chunks := ChunkUUIDs(ids, ProfileBatchSize)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 30)
	assert.Len(t, chunks[1], 30)
	assert.Len(t, chunks[2], 5)

	// exactly one batch at the boundary
	chunks = ChunkUUIDs(ids[:30], ProfileBatchSize)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 30)

	assert.Nil(t, ChunkUUIDs(nil, ProfileBatchSize))
}
