package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
)

// GetProfile returns the authenticated user's own profile.
func GetProfile(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Locals("user_id").(string)

	profile := new(models.User)
	if err := db.Where("id = ?", userID).First(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "User profile not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch profile", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User profile retrieved successfully", profile)
}

// UpdateProfile updates the editable profile fields: display name and grade.
func UpdateProfile(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Locals("user_id").(string)

	var input struct {
		DisplayName string `json:"display_name"`
		Grade       string `json:"grade"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	updates := map[string]interface{}{}
	if input.DisplayName != "" {
		updates["display_name"] = input.DisplayName
	}
	if input.Grade != "" {
		updates["grade"] = input.Grade
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates); result.Error != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update profile", result.Error)
		}
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User profile updated successfully", nil)
}

// UploadProfilePhoto stores a new profile photo and records its URL.
func UploadProfilePhoto(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("profile_photo")
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "File upload failed", err)
	}

	fileContent, err := file.Open()
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to open file", err)
	}
	defer fileContent.Close()

	filePath := fmt.Sprintf("profile-photos/%s-%s", uuid.New().String(), file.Filename)
	publicURL, err := database.UploadFile(filePath, fileContent)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to upload file to storage", err)
	}

	// Drop the previous photo so the bucket does not accumulate orphans
	var current models.User
	if err := db.Select("photo_storage_path").Where("id = ?", userID).First(&current).Error; err == nil {
		if current.PhotoStoragePath != "" && current.PhotoStoragePath != filePath {
			if err := database.DeleteFile(current.PhotoStoragePath); err != nil {
				fmt.Println("Could not delete old profile photo:", err)
			}
		}
	}

	updates := map[string]interface{}{
		"photo_url":          publicURL,
		"photo_size":         file.Size,
		"photo_storage_path": filePath,
		"updated_at":         time.Now(),
	}

	if result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates); result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update profile photo metadata", result.Error)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Profile photo updated successfully", fiber.Map{"photo_url": publicURL})
}
