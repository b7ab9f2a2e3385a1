package materials

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"StudyVillage/src/core/accesspolicy"
	"StudyVillage/src/core/database"
	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
	"StudyVillage/src/modules/admin"
)

type materialInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
	Grade       string `json:"grade" validate:"required"`
	Subject     string `json:"subject" validate:"required,min=2"`
	Type        string `json:"type" validate:"required,oneof=notes video past-paper"`
	FileURL     string `json:"file_url"`
}

func parseMaterialForm(c *fiber.Ctx) (*materialInput, error) {
	input := &materialInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Grade:       c.FormValue("grade"),
		Subject:     c.FormValue("subject"),
		Type:        c.FormValue("type"),
		FileURL:     c.FormValue("file_url"),
	}
	if err := helpers.Validate(input); err != nil {
		return nil, err
	}
	return input, nil
}

// storeMaterialFile uploads the form file under a grade/subject prefix and
// returns the public URL and storage path.
func storeMaterialFile(c *fiber.Ctx, input *materialInput) (string, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", "", err
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer fileContent.Close()

	filePath := fmt.Sprintf("study-materials/%s/%s/%d-%s", input.Grade, input.Subject, time.Now().UnixMilli(), file.Filename)
	publicURL, err := database.UploadFile(filePath, fileContent)
	if err != nil {
		return "", "", err
	}
	return publicURL, filePath, nil
}

// CreateMaterial registers a study material. Videos carry an external URL;
// notes and past papers require an uploaded file.
func CreateMaterial(c *fiber.Ctx) error {
	db := database.DB

	input, err := parseMaterialForm(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	material := models.Material{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Grade:       input.Grade,
		Subject:     input.Subject,
		Type:        input.Type,
		FileURL:     input.FileURL,
	}

	if input.Type != models.MaterialTypeVideo {
		publicURL, filePath, err := storeMaterialFile(c, input)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "A file is required for this material type", err)
		}
		material.FileURL = publicURL
		material.FilePath = filePath
	} else if material.FileURL == "" {
		return helpers.HandleError(c, fiber.StatusBadRequest, "A valid URL is required for videos", nil)
	}

	if err := db.Create(&material).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create material", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Material uploaded successfully", material)
}

// UpdateMaterial edits a material in place. Replacing the file removes the
// old object; switching to a video link clears the stored path.
func UpdateMaterial(c *fiber.Ctx) error {
	db := database.DB
	materialID := c.Params("id")

	existing := new(models.Material)
	if err := db.Where("id = ?", materialID).First(existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Material not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch material", err)
	}

	input, err := parseMaterialForm(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"grade":       input.Grade,
		"subject":     input.Subject,
		"type":        input.Type,
		"updated_at":  time.Now(),
	}

	if input.Type != models.MaterialTypeVideo {
		// File is optional on edit; keep the current one unless replaced
		if _, err := c.FormFile("file"); err == nil {
			publicURL, filePath, err := storeMaterialFile(c, input)
			if err != nil {
				return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to upload file to storage", err)
			}
			if existing.FilePath != "" {
				if err := database.DeleteFile(existing.FilePath); err != nil {
					log.Println("Could not delete old file, it may not exist:", err)
				}
			}
			updates["file_url"] = publicURL
			updates["file_path"] = filePath
		}
	} else {
		if input.FileURL == "" {
			return helpers.HandleError(c, fiber.StatusBadRequest, "A valid URL is required for videos", nil)
		}
		// Was a file before, now a link: drop the stored object
		if existing.FilePath != "" {
			if err := database.DeleteFile(existing.FilePath); err != nil {
				log.Println("Could not delete old file, it may not exist:", err)
			}
		}
		updates["file_url"] = input.FileURL
		updates["file_path"] = ""
	}

	if err := db.Model(&models.Material{}).Where("id = ?", materialID).Updates(updates).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update material", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Material updated successfully", nil)
}

// DeleteMaterial removes the material row and its stored file if any.
func DeleteMaterial(c *fiber.Ctx) error {
	db := database.DB
	materialID := c.Params("id")

	existing := new(models.Material)
	if err := db.Where("id = ?", materialID).First(existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Material not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch material", err)
	}

	if existing.FilePath != "" {
		if err := database.DeleteFile(existing.FilePath); err != nil {
			log.Printf("Could not delete file %s, it might have been already removed: %v\n", existing.FilePath, err)
		}
	}

	if err := db.Delete(&models.Material{}, "id = ?", materialID).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete material", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Material deleted successfully", nil)
}

// ListMaterials returns the caller's grade materials. Full-access users get
// everything newest first (optionally limited); restricted users only see
// the oldest slice the access policy allows.
func ListMaterials(c *fiber.Ctx) error {
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

	grade := c.Query("grade", profile.Grade)

	var materials []models.Material
	query := db.Where("grade = ?", grade).Order("created_at DESC")
	if fullAccess {
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
			query = query.Limit(limit)
		}
		if err := query.Find(&materials).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch materials", err)
		}
		return helpers.HandleSuccess(c, fiber.StatusOK, "Materials fetched successfully", materials)
	}

	if err := query.Find(&materials).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch materials", err)
	}

	preview := accesspolicy.RestrictMaterials(materials)
	return helpers.HandleSuccess(c, fiber.StatusOK, "Materials fetched successfully", fiber.Map{
		"restricted": true,
		"materials":  preview,
	})
}
