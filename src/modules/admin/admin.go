package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"StudyVillage/src/core/accesspolicy"
	"StudyVillage/src/core/config"
	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
)

// GetAccessSettings returns the global restriction flag.
func GetAccessSettings(c *fiber.Ctx) error {
	settings, err := CurrentSettings()
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch access settings", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Access settings retrieved successfully", settings)
}

// UpdateAccessSettings flips the global restriction flag.
func UpdateAccessSettings(c *fiber.Ctx) error {
	db := database.DB

	var input struct {
		IsRestricted bool `json:"is_restricted"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	settings := models.AccessControlSettings{
		ID:           settingsRowID,
		IsRestricted: input.IsRestricted,
		UpdatedAt:    time.Now(),
	}
	// Single-row upsert, last write wins
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_restricted", "updated_at"}),
	}).Create(&settings).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update access settings", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Access settings updated successfully", settings)
}

// userWithAccess decorates a profile with its computed access status for
// the admin panel user table.
type userWithAccess struct {
	models.User
	HasFullAccess bool `json:"has_full_access"`
}

// ListUsers returns all profiles with their computed access status.
func ListUsers(c *fiber.Ctx) error {
	db := database.DB

	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	settings, err := CurrentSettings()
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch access settings", err)
	}

	now := time.Now()
	adminEmail := config.AdminEmail()
	decorated := make([]userWithAccess, 0, len(users))
	for i := range users {
		decorated = append(decorated, userWithAccess{
			User:          users[i],
			HasFullAccess: accesspolicy.HasFullAccess(&users[i], settings, adminEmail, now),
		})
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Users retrieved successfully", decorated)
}

// GrantAccess gives a user a full-access grant expiring 31 days from now.
// Idempotent: re-granting just moves the expiry forward.
func GrantAccess(c *fiber.Ctx) error {
	db := database.DB
	targetID := c.Params("user_id")

	expiry := accesspolicy.GrantExpiry(time.Now())
	result := db.Model(&models.User{}).Where("id = ?", targetID).Updates(map[string]interface{}{
		"access_expires_at": expiry,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to grant access", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, "User not found", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User granted full access for 1 month", fiber.Map{"access_expires_at": expiry})
}

// RevokeAccess clears a user's grant entirely. Idempotent.
func RevokeAccess(c *fiber.Ctx) error {
	db := database.DB
	targetID := c.Params("user_id")

	result := db.Model(&models.User{}).Where("id = ?", targetID).Updates(map[string]interface{}{
		"access_expires_at": nil,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to revoke access", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, "User not found", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User access revoked", nil)
}
