// Package accesspolicy decides whether a user sees full or throttled
// content. Pure functions over profile and settings; persistence of grants
// lives in the admin module.
package accesspolicy

import (
	"sort"
	"time"

	"StudyVillage/src/core/models"
)

// GrantDays is how long an individual full-access grant lasts, in calendar
// days so the expiry lands on the same wall-clock time across DST changes.
const GrantDays = 31

// HasFullAccess reports whether the user has unrestricted access.
// Administrators are always unrestricted, as is everyone while the global
// gate is open. Otherwise access requires an unexpired individual grant.
func HasFullAccess(profile *models.User, settings models.AccessControlSettings, adminEmail string, now time.Time) bool {
	if profile != nil && adminEmail != "" && profile.Email == adminEmail {
		return true
	}
	if !settings.IsRestricted {
		return true
	}
	if profile == nil {
		return false
	}
	return profile.AccessExpiresAt != nil && profile.AccessExpiresAt.After(now)
}

// GrantExpiry returns the expiry timestamp for a grant issued at now.
func GrantExpiry(now time.Time) time.Time {
	return now.AddDate(0, 0, GrantDays)
}

// RestrictedQuota is how many materials a restricted user may see out of
// total: 10% rounded down, floored at 1 when any exist.
func RestrictedQuota(total int) int {
	if total <= 0 {
		return 0
	}
	quota := total / 10
	if quota < 1 {
		quota = 1
	}
	return quota
}

// RestrictMaterials returns the preview slice a restricted user may see:
// the oldest RestrictedQuota(len) materials, oldest first. The input is not
// modified.
func RestrictMaterials(materials []models.Material) []models.Material {
	quota := RestrictedQuota(len(materials))
	if quota == 0 {
		return []models.Material{}
	}

	oldestFirst := make([]models.Material, len(materials))
	copy(oldestFirst, materials)
	sort.SliceStable(oldestFirst, func(i, j int) bool {
		return oldestFirst[i].CreatedAt.Before(oldestFirst[j].CreatedAt)
	})

	return oldestFirst[:quota]
}
