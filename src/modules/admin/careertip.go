package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
)

const careerTipRowID = 1

// defaultCareerTip is served until an admin saves one.
var defaultCareerTip = models.CareerTip{
	Text:   "The best way to predict the future is to create it. Start building your skills today for the career you want tomorrow. Every small step in your studies is a big leap towards your professional goals.",
	Author: "Abraham Lincoln (paraphrased)",
}

// GetCareerTip returns the dashboard career tip, falling back to a default.
func GetCareerTip(c *fiber.Ctx) error {
	db := database.DB

	var tip models.CareerTip
	err := db.Where("id = ?", careerTipRowID).First(&tip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.HandleSuccess(c, fiber.StatusOK, "Career tip retrieved successfully", defaultCareerTip)
	}
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch career tip", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Career tip retrieved successfully", tip)
}

// UpdateCareerTip replaces the dashboard career tip.
func UpdateCareerTip(c *fiber.Ctx) error {
	db := database.DB

	var input struct {
		Text   string `json:"text" validate:"required"`
		Author string `json:"author" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(&input); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	tip := models.CareerTip{
		ID:        careerTipRowID,
		Text:      input.Text,
		Author:    input.Author,
		UpdatedAt: time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "author", "updated_at"}),
	}).Create(&tip).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update career tip", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Career tip updated successfully", tip)
}
