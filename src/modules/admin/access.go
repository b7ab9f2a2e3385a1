package admin

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"StudyVillage/src/core/accesspolicy"
	"StudyVillage/src/core/config"
	"StudyVillage/src/core/database"
	"StudyVillage/src/core/models"
)

// settingsRowID pins the access control settings to a single row.
const settingsRowID = 1

// CurrentSettings loads the global access control row. A missing row means
// the gate was never closed, so the default is unrestricted.
func CurrentSettings() (models.AccessControlSettings, error) {
	db := database.DB

	var settings models.AccessControlSettings
	err := db.Where("id = ?", settingsRowID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AccessControlSettings{ID: settingsRowID, IsRestricted: false}, nil
	}
	if err != nil {
		return models.AccessControlSettings{}, err
	}
	return settings, nil
}

// ResolveFullAccess loads the caller's profile and the global settings and
// evaluates the access policy for them. The profile is returned so callers
// can reuse it (grade scoping) without a second query.
func ResolveFullAccess(userID string) (bool, *models.User, error) {
	db := database.DB

	profile := new(models.User)
	if err := db.Where("id = ?", userID).First(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = nil
		} else {
			return false, nil, err
		}
	}

	settings, err := CurrentSettings()
	if err != nil {
		return false, profile, err
	}

	full := accesspolicy.HasFullAccess(profile, settings, config.AdminEmail(), time.Now())
	return full, profile, nil
}
