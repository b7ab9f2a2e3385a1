package accesspolicy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyVillage/src/core/models"
)

const adminEmail = "admin@studyvillage.app"

func TestHasFullAccess(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		profile  *models.User
		settings models.AccessControlSettings
		want     bool
	}{
		{
			name:     "global gate open grants everyone",
			profile:  &models.User{Email: "student@example.com"},
			settings: models.AccessControlSettings{IsRestricted: false},
			want:     true,
		},
		{
			name:     "global gate open grants even unauthenticated",
			profile:  nil,
			settings: models.AccessControlSettings{IsRestricted: false},
			want:     true,
		},
		{
			name:     "admin bypasses restriction and expiry",
			profile:  &models.User{Email: adminEmail, AccessExpiresAt: &past},
			settings: models.AccessControlSettings{IsRestricted: true},
			want:     true,
		},
		{
			name:     "restricted without profile denied",
			profile:  nil,
			settings: models.AccessControlSettings{IsRestricted: true},
			want:     false,
		},
		{
			name:     "restricted without grant denied",
			profile:  &models.User{Email: "student@example.com"},
			settings: models.AccessControlSettings{IsRestricted: true},
			want:     false,
		},
		{
			name:     "expired grant denied",
			profile:  &models.User{Email: "student@example.com", AccessExpiresAt: &past},
			settings: models.AccessControlSettings{IsRestricted: true},
			want:     false,
		},
		{
			name:     "active grant allowed",
			profile:  &models.User{Email: "student@example.com", AccessExpiresAt: &future},
			settings: models.AccessControlSettings{IsRestricted: true},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasFullAccess(tt.profile, tt.settings, adminEmail, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrantExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	want := now.AddDate(0, 0, 31)
	assert.Equal(t, want, GrantExpiry(now))
}

func TestGrantExpiryCalendarDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 31 days spanning the March 2025 spring-forward keep the wall-clock
	// time; a fixed 744h offset would land an hour later.
	start := time.Date(2025, 2, 20, 9, 0, 0, 0, loc)
	got := GrantExpiry(start)
	assert.Equal(t, time.Date(2025, 3, 23, 9, 0, 0, 0, loc), got)
	assert.NotEqual(t, start.Add(31*24*time.Hour), got)
}

func TestRestrictedQuota(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{9, 1},
		{10, 1},
		{19, 1},
		{20, 2},
		{105, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RestrictedQuota(tt.total), "total=%d", tt.total)
	}
}

func TestRestrictMaterials(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	materials := make([]models.Material, 25)
	// newest first, like the store returns them
	for i := range materials {
		materials[i] = models.Material{
			Title:     string(rune('A' + i)),
			CreatedAt: base.Add(time.Duration(len(materials)-i) * time.Hour),
		}
	}

	got := RestrictMaterials(materials)
	require.Len(t, got, 2) // floor(25 * 0.1)

	// oldest first
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
	assert.Equal(t, base.Add(time.Hour), got[0].CreatedAt)
	assert.Equal(t, base.Add(2*time.Hour), got[1].CreatedAt)
}

func TestRestrictMaterialsBounds(t *testing.T) {
	assert.Empty(t, RestrictMaterials(nil))

	one := []models.Material{{Title: "only"}}
	got := RestrictMaterials(one)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Title)

	// never more than max(1, floor(0.1*total))
	for total := 1; total <= 40; total++ {
		materials := make([]models.Material, total)
		for i := range materials {
			materials[i].CreatedAt = time.Unix(int64(i), 0)
		}
		got := RestrictMaterials(materials)
		assert.Equal(t, RestrictedQuota(total), len(got), "total=%d", total)
	}
}
