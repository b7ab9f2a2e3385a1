package quizzes

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
	"StudyVillage/src/core/quizengine"
	"StudyVillage/src/modules/admin"
)

type quizInput struct {
	Title     string            `json:"title" validate:"required,min=2"`
	Grade     string            `json:"grade" validate:"required"`
	Subject   string            `json:"subject" validate:"required,min=2"`
	Questions []models.Question `json:"questions" validate:"required,min=1"`
}

func parseQuizBody(c *fiber.Ctx) (*quizInput, error) {
	input := new(quizInput)
	if err := c.BodyParser(input); err != nil {
		return nil, err
	}
	if err := helpers.Validate(input); err != nil {
		return nil, err
	}
	if bad := quizengine.ValidateQuestions(input.Questions); bad != -1 {
		return nil, fmt.Errorf("question %d must have text, at least two options and exactly one correct option", bad+1)
	}
	return input, nil
}

// CreateQuiz registers a new quiz with its inline question list.
func CreateQuiz(c *fiber.Ctx) error {
	db := database.DB

	input, err := parseQuizBody(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quiz data", err)
	}

	quiz := models.Quiz{
		ID:        uuid.New(),
		Title:     input.Title,
		Grade:     input.Grade,
		Subject:   input.Subject,
		Questions: datatypes.NewJSONType(input.Questions),
	}

	if err := db.Create(&quiz).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create quiz", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Quiz created successfully", quiz)
}

// UpdateQuiz republishes a quiz. Editing the questions invalidates every
// prior attempt, so the rewrite and the attempt purge commit together.
func UpdateQuiz(c *fiber.Ctx) error {
	db := database.DB
	quizID := c.Params("id")

	input, err := parseQuizBody(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quiz data", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Quiz{}).Where("id = ?", quizID).Updates(map[string]interface{}{
			"title":      input.Title,
			"grade":      input.Grade,
			"subject":    input.Subject,
			"questions":  datatypes.NewJSONType(input.Questions),
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.QuizAttempt{}, "quiz_id = ?", quizID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Quiz not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update quiz", err)
	}

	go BroadcastLeaderboard(quizID)

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz updated successfully, prior attempts invalidated", nil)
}

// DeleteQuiz removes a quiz and all attempts against it.
func DeleteQuiz(c *fiber.Ctx) error {
	db := database.DB
	quizID := c.Params("id")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.QuizAttempt{}, "quiz_id = ?", quizID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Quiz{}, "id = ?", quizID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Quiz not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete quiz", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz deleted successfully", nil)
}

// GetQuiz fetches a single quiz. Restricted users have no quiz access.
func GetQuiz(c *fiber.Ctx) error {
	db := database.DB

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
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
			return helpers.HandleError(c, fiber.StatusNotFound, "Quiz not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quiz", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quiz fetched successfully", quiz)
}

// ListQuizzes returns the caller's grade quizzes, newest first.
// Restricted users get an empty list rather than an error so the client
// can render the locked state.
func ListQuizzes(c *fiber.Ctx) error {
	db := database.DB

	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing user_id", nil)
	}

	fullAccess, profile, err := admin.ResolveFullAccess(userID)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to resolve access", err)
	}
	if profile == nil {
		return helpers.HandleError(c, fiber.StatusNotFound, "User profile not found", nil)
	}
	if !fullAccess {
		return helpers.HandleSuccess(c, fiber.StatusOK, "Quizzes require full access", fiber.Map{
			"restricted": true,
			"quizzes":    []models.Quiz{},
		})
	}

	grade := c.Query("grade", profile.Grade)

	var quizzes []models.Quiz
	query := db.Where("grade = ?", grade).Order("created_at DESC")
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&quizzes).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quizzes fetched successfully", quizzes)
}
