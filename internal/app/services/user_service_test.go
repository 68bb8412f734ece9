package services

import (
	"context"
	"strings"
	"testing"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAnonymityWithoutUsernameDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.User.SetAnonymity(ctx, f.owner.ID, true, "   ")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	ce, ok := apperrors.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, "username", ce.Field)

	stored, err := f.store.FindUserByID(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAnonymous)
	assert.Empty(t, stored.Username)
	assert.Empty(t, stored.AvatarStyle)
}

func TestSetAnonymityDefaultsAvatarAndClearsUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.services.User.SetAnonymity(ctx, f.owner.ID, true, "quietfox")
	require.NoError(t, err)
	assert.True(t, user.IsAnonymous)
	assert.Equal(t, "quietfox", user.Username)
	assert.Equal(t, models.AvatarStyleGradient, user.AvatarStyle)
	assert.Equal(t, models.AvatarColorBlue, user.AvatarColor)

	user, err = f.services.User.SetAnonymity(ctx, f.owner.ID, false, "ignored")
	require.NoError(t, err)
	assert.False(t, user.IsAnonymous)
	assert.Empty(t, user.Username)
	assert.Equal(t, models.AvatarStyleGradient, user.AvatarStyle)
}

func TestSetAnonymityKeepsStoredAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	style := models.AvatarStyleEmoji
	color := models.AvatarColorTeal
	_, err := f.services.User.UpdateProfile(ctx, f.owner.ID, &dto.UpdateProfileRequest{AvatarStyle: &style, AvatarColor: &color})
	require.NoError(t, err)

	user, err := f.services.User.SetAnonymity(ctx, f.owner.ID, true, "tealfox")
	require.NoError(t, err)
	assert.Equal(t, models.AvatarStyleEmoji, user.AvatarStyle)
	assert.Equal(t, models.AvatarColorTeal, user.AvatarColor)
}

func TestSetAnonymityUsernameLength(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.User.SetAnonymity(ctx, f.owner.ID, true, strings.Repeat("n", validation.UsernameMaxLength+1))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	user, err := f.services.User.SetAnonymity(ctx, f.owner.ID, true, strings.Repeat("n", validation.UsernameMaxLength))
	require.NoError(t, err)
	assert.Len(t, user.Username, validation.UsernameMaxLength)
}

func TestSetAnonymityUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.User.SetAnonymity(context.Background(), "ghost", true, "name")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bio := "  Hello there  "
	endYear := 2020
	user, err := f.services.User.UpdateProfile(ctx, f.owner.ID, &dto.UpdateProfileRequest{
		Bio:    &bio,
		Skills: []string{"Go", " go ", "", "SQL"},
		SocialLinks: []dto.SocialLinkRequest{
			{Platform: "GitHub", URL: "https://github.com/owner"},
		},
		Education: []dto.EducationRequest{
			{Institution: "IIT Delhi", StartYear: 2016, EndYear: &endYear},
			{Institution: "IIT Bombay", StartYear: 2021, EndYear: &endYear, Current: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there", user.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, user.Skills)
	require.Len(t, user.Education, 2)
	assert.NotEmpty(t, user.Education[0].ID)
	assert.Nil(t, user.Education[1].EndYear)
	assert.Equal(t, "Owner Person", user.Name)
	assert.Equal(t, []string{realtime.DashboardView(f.owner.ID)}, f.broadcaster.Views())
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := " "
	badStyle := models.AvatarStyle("sparkles")
	early := 2000

	tests := []struct {
		name  string
		req   *dto.UpdateProfileRequest
		field string
	}{
		{"empty name", &dto.UpdateProfileRequest{Name: &empty}, "name"},
		{"unknown style", &dto.UpdateProfileRequest{AvatarStyle: &badStyle}, "avatarStyle"},
		{"end before start", &dto.UpdateProfileRequest{Education: []dto.EducationRequest{{Institution: "X", StartYear: 2010, EndYear: &early}}}, "education"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.User.UpdateProfile(ctx, f.owner.ID, tt.req)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			ce, ok := apperrors.AsCustomError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestProfileCompleteness(t *testing.T) {
	user := &models.User{Name: "Jane", Email: "jane@example.com"}
	resp := ProfileCompleteness(user)
	assert.Equal(t, 9, resp.Total)
	// avatar, name and email
	assert.Equal(t, 3, resp.Completed)
	assert.Equal(t, 33, resp.Percentage)

	user.IsAnonymous = true
	user.Bio = "bio"
	user.Location = "Delhi"
	user.Skills = []string{"Go"}
	user.SocialLinks = []models.SocialLink{{Platform: "GitHub"}}
	resp = ProfileCompleteness(user)
	assert.Equal(t, 5, resp.Completed)
	assert.Equal(t, 56, resp.Percentage)

	user.AvatarStyle = models.AvatarStyleEmoji
	user.Website = "https://example.com"
	user.SocialLinks[0].URL = "https://github.com/jane"
	user.Education = []models.Education{{Institution: "IIT"}}
	resp = ProfileCompleteness(user)
	assert.Equal(t, 9, resp.Completed)
	assert.Equal(t, 100, resp.Percentage)
}

func TestAvatarPreview(t *testing.T) {
	f := newFixture(t)

	a, err := f.services.User.AvatarPreview("quietfox", models.AvatarStyleInitials, models.AvatarColorRed)
	require.NoError(t, err)
	assert.Equal(t, "QU", a.Text)

	again, err := f.services.User.AvatarPreview("quietfox", models.AvatarStyleInitials, models.AvatarColorRed)
	require.NoError(t, err)
	assert.Equal(t, a, again)

	_, err = f.services.User.AvatarPreview("x", "bogus", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
