package posts

import (
	"errors"
	"fmt"
	"log"
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

type postInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	Grade       string `json:"grade" validate:"required"`
	Link        string `json:"link" validate:"omitempty,url"`
}

func parsePostForm(c *fiber.Ctx) (*postInput, error) {
	input := &postInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Grade:       c.FormValue("grade"),
		Link:        c.FormValue("link"),
	}
	if err := helpers.Validate(input); err != nil {
		return nil, err
	}
	return input, nil
}

func storePostImage(c *fiber.Ctx, grade string) (string, string, error) {
	image, err := c.FormFile("image")
	if err != nil {
		return "", "", err
	}

	imageContent, err := image.Open()
	if err != nil {
		return "", "", err
	}
	defer imageContent.Close()

	imagePath := fmt.Sprintf("posts/%s/%d-%s", grade, time.Now().UnixMilli(), image.Filename)
	publicURL, err := database.UploadFile(imagePath, imageContent)
	if err != nil {
		return "", "", err
	}
	return publicURL, imagePath, nil
}

// CreatePost publishes an announcement. An image is required at creation.
func CreatePost(c *fiber.Ctx) error {
	db := database.DB

	input, err := parsePostForm(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	publicURL, imagePath, err := storePostImage(c, input.Grade)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "An image is required to create a new post", err)
	}

	post := models.Post{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Grade:       input.Grade,
		Link:        input.Link,
		ImageURL:    publicURL,
		ImagePath:   imagePath,
	}

	if err := db.Create(&post).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create post", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Post created successfully", post)
}

// UpdatePost edits an announcement; a new image replaces (and deletes) the
// old one.
func UpdatePost(c *fiber.Ctx) error {
	db := database.DB
	postID := c.Params("id")

	existing := new(models.Post)
	if err := db.Where("id = ?", postID).First(existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Post not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch post", err)
	}

	input, err := parsePostForm(c)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"grade":       input.Grade,
		"link":        input.Link,
		"updated_at":  time.Now(),
	}

	if _, err := c.FormFile("image"); err == nil {
		publicURL, imagePath, err := storePostImage(c, input.Grade)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to upload image", err)
		}
		if existing.ImagePath != "" {
			if err := database.DeleteFile(existing.ImagePath); err != nil {
				log.Println("Could not delete old image, it may not exist:", err)
			}
		}
		updates["image_url"] = publicURL
		updates["image_path"] = imagePath
	}

	if err := db.Model(&models.Post{}).Where("id = ?", postID).Updates(updates).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update post", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Post updated successfully", nil)
}

// DeletePost removes an announcement and its stored image.
func DeletePost(c *fiber.Ctx) error {
	db := database.DB
	postID := c.Params("id")

	existing := new(models.Post)
	if err := db.Where("id = ?", postID).First(existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Post not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch post", err)
	}

	if existing.ImagePath != "" {
		if err := database.DeleteFile(existing.ImagePath); err != nil {
			log.Printf("Could not delete image %s, it might have been already removed: %v\n", existing.ImagePath, err)
		}
	}

	if err := db.Delete(&models.Post{}, "id = ?", postID).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to delete post", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Post deleted successfully", nil)
}

// ListPosts returns the caller's grade announcements, newest first.
// Restricted users only get the oldest preview slice, like materials.
func ListPosts(c *fiber.Ctx) error {
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

	var posts []models.Post
	if fullAccess {
		if err := db.Where("grade = ?", grade).Order("created_at DESC").Find(&posts).Error; err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch posts", err)
		}
		return helpers.HandleSuccess(c, fiber.StatusOK, "Posts fetched successfully", posts)
	}

	if err := db.Where("grade = ?", grade).Order("created_at ASC").Find(&posts).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch posts", err)
	}

	quota := accesspolicy.RestrictedQuota(len(posts))
	return helpers.HandleSuccess(c, fiber.StatusOK, "Posts fetched successfully", fiber.Map{
		"restricted": true,
		"posts":      posts[:quota],
	})
}
