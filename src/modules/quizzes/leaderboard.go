package quizzes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
	"StudyVillage/src/core/quizengine"
)

// buildBoard assembles the ranked leaderboard for a quiz from its completed
// attempts. Profile hydration runs in id batches so a popular quiz never
// produces an unbounded IN clause.
func buildBoard(quizID string) ([]quizengine.LeaderboardEntry, error) {
	db := database.DB

	var attempts []models.QuizAttempt
	if err := db.Where("quiz_id = ? AND completed = ?", quizID, true).
		Order("completed_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	best := quizengine.BestAttempts(attempts)

	userIDs := make([]uuid.UUID, 0, len(best))
	for _, attempt := range best {
		userIDs = append(userIDs, attempt.UserID)
	}

	profiles := make(map[uuid.UUID]models.User, len(userIDs))
	for _, chunk := range quizengine.ChunkUUIDs(userIDs, quizengine.ProfileBatchSize) {
		var users []models.User
		if err := db.Where("id IN ?", chunk).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, user := range users {
			profiles[user.ID] = user
		}
	}

	return quizengine.BuildLeaderboard(best, profiles), nil
}

// Leaderboard returns the best completed attempt per user for a quiz,
// ranked by score then by time taken.
func Leaderboard(c *fiber.Ctx) error {
	board, err := buildBoard(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to build leaderboard", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Leaderboard fetched successfully", board)
}
