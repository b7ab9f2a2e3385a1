package quizzes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"StudyVillage/src/core/apperrors"
	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
	"StudyVillage/src/core/quizengine"
	"StudyVillage/src/modules/admin"
)

type answersInput struct {
	Answers map[int]int `json:"answers"`
}

func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return userID, nil
}

// loadOwnAttempt fetches an attempt and verifies it belongs to the caller.
// Attempts owned by other users read as not found.
func loadOwnAttempt(db *gorm.DB, attemptID, userID string) (*models.QuizAttempt, error) {
	attempt := new(models.QuizAttempt)
	err := db.Where("id = ? AND user_id = ?", attemptID, userID).First(attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// StartAttempt resumes the caller's open attempt on a quiz if one exists,
// otherwise creates a fresh one. The response carries the index of the
// question the client should show next.
func StartAttempt(c *fiber.Ctx) error {
	db := database.DB

	userID, err := currentUserID(c)
	if err != nil {
		return helpers.HandleAppError(c, "Invalid or missing user_id", err)
	}

	fullAccess, _, err := admin.ResolveFullAccess(userID)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to resolve access", err)
	}
	if !fullAccess {
		return helpers.HandleError(c, fiber.StatusForbidden, "Quizzes require full access", nil)
	}

	quiz := new(models.Quiz)
	if err := db.Where("id = ?", c.Params("id")).First(quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleAppError(c, "Quiz not found", apperrors.ErrNotFound)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quiz", err)
	}

	questions := quiz.Questions.Data()
	if len(questions) == 0 {
		return helpers.HandleAppError(c, "Quiz has no questions", apperrors.ErrInvalidState)
	}

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid user_id", err)
	}

	attempt := new(models.QuizAttempt)
	err = db.Where("quiz_id = ? AND user_id = ? AND completed = ?", quiz.ID, userID, false).
		Order("created_at DESC").
		First(attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		attempt = &models.QuizAttempt{
			ID:        uuid.New(),
			UserID:    ownerID,
			QuizID:    quiz.ID,
			Answers:   datatypes.NewJSONType(map[int]int{}),
			StartedAt: &now,
		}
		if err := db.Create(attempt).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to start attempt", err)
		}
	} else if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch attempt", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Attempt ready", fiber.Map{
		"attempt":      attempt,
		"resume_index": quizengine.ResumeIndex(attempt.Answers.Data(), len(questions)),
	})
}

// SaveAnswers persists partial progress on an open attempt.
func SaveAnswers(c *fiber.Ctx) error {
	db := database.DB

	userID, err := currentUserID(c)
	if err != nil {
		return helpers.HandleAppError(c, "Invalid or missing user_id", err)
	}

	input := new(answersInput)
	if err := c.BodyParser(input); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid answers payload", err)
	}

	attempt, err := loadOwnAttempt(db, c.Params("attempt_id"), userID)
	if err != nil {
		return helpers.HandleAppError(c, "Attempt not found", err)
	}
	if attempt.Completed {
		return helpers.HandleAppError(c, "Attempt already completed", apperrors.ErrInvalidState)
	}

	attempt.Answers = datatypes.NewJSONType(input.Answers)
	if err := db.Model(attempt).Updates(map[string]interface{}{
		"answers":    attempt.Answers,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to save answers", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Answers saved", attempt)
}

// SubmitAttempt grades an open attempt and closes it. An answers payload in
// the body replaces the stored answers before grading; otherwise the saved
// progress is graded as-is.
func SubmitAttempt(c *fiber.Ctx) error {
	db := database.DB

	userID, err := currentUserID(c)
	if err != nil {
		return helpers.HandleAppError(c, "Invalid or missing user_id", err)
	}

	attempt, err := loadOwnAttempt(db, c.Params("attempt_id"), userID)
	if err != nil {
		return helpers.HandleAppError(c, "Attempt not found", err)
	}
	if attempt.Completed {
		return helpers.HandleAppError(c, "Attempt already completed", apperrors.ErrInvalidState)
	}

	quiz := new(models.Quiz)
	if err := db.Where("id = ?", attempt.QuizID).First(quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleAppError(c, "Quiz not found", apperrors.ErrNotFound)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quiz", err)
	}

	questions := quiz.Questions.Data()
	if len(questions) == 0 {
		return helpers.HandleAppError(c, "Quiz has no questions", apperrors.ErrInvalidState)
	}

	answers := attempt.Answers.Data()
	input := new(answersInput)
	if err := c.BodyParser(input); err == nil && input.Answers != nil {
		answers = input.Answers
	}

	result := quizengine.ScoreAttempt(questions, answers)

	now := time.Now()
	startedAt := attempt.StartedAt
	if startedAt == nil {
		startedAt = &now
	}

	updates := map[string]interface{}{
		"answers":      datatypes.NewJSONType(answers),
		"score":        result.Score,
		"completed":    true,
		"started_at":   startedAt,
		"completed_at": now,
		"updated_at":   now,
	}
	if err := db.Model(attempt).Updates(updates).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to submit attempt", err)
	}

	attempt.Answers = datatypes.NewJSONType(answers)
	attempt.Score = result.Score
	attempt.Completed = true
	attempt.StartedAt = startedAt
	attempt.CompletedAt = &now

	go BroadcastLeaderboard(attempt.QuizID.String())

	return helpers.HandleSuccess(c, fiber.StatusOK, "Attempt submitted", fiber.Map{
		"attempt":       attempt,
		"score":         result.Score,
		"correct_count": result.CorrectCount,
		"total":         len(questions),
	})
}

// MyAttempts lists the caller's attempts on a quiz, newest first.
func MyAttempts(c *fiber.Ctx) error {
	db := database.DB

	userID, err := currentUserID(c)
	if err != nil {
		return helpers.HandleAppError(c, "Invalid or missing user_id", err)
	}

	var attempts []models.QuizAttempt
	if err := db.Where("quiz_id = ? AND user_id = ?", c.Params("id"), userID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch attempts", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Attempts fetched successfully", attempts)
}

// AttemptHistory lists every attempt by the caller across all quizzes,
// newest first, together with the study statistics shown on the profile
// page (completed quizzes taken and their average score).
func AttemptHistory(c *fiber.Ctx) error {
	db := database.DB

	userID, err := currentUserID(c)
	if err != nil {
		return helpers.HandleAppError(c, "Invalid or missing user_id", err)
	}

	var attempts []models.QuizAttempt
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch attempts", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Attempt history fetched successfully", fiber.Map{
		"attempts": attempts,
		"stats":    quizengine.SummarizeAttempts(attempts),
	})
}
