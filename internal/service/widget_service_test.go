package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/pkg/apperror"
)

type widgetServiceFixture struct {
	svc         WidgetService
	profileRepo *fakeProfileRepo
	widgetRepo  *fakeWidgetRepo
	linkRepo    *fakeCustomLinkRepo
	socialRepo  *fakeSocialLinkRepo
	serviceRepo *fakeServiceRepo

	ownerID uuid.UUID
	card    *model.Profile
}

func newWidgetServiceFixture() *widgetServiceFixture {
	ownerID := uuid.New()
	card := &model.Profile{UserID: ownerID, Username: "owner-card"}

	f := &widgetServiceFixture{
		profileRepo: newFakeProfileRepo(card),
		widgetRepo:  newFakeWidgetRepo(),
		linkRepo:    newFakeCustomLinkRepo(),
		socialRepo:  newFakeSocialLinkRepo(),
		serviceRepo: newFakeServiceRepo(),
		ownerID:     ownerID,
		card:        card,
	}
	f.svc = NewWidgetService(f.profileRepo, f.widgetRepo, f.linkRepo, f.socialRepo, f.serviceRepo)
	return f
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestUpsertSettingUsesDefaultOrder(t *testing.T) {
	f := newWidgetServiceFixture()

	setting, err := f.svc.UpsertSetting(context.Background(), f.ownerID, f.card.ID, model.WidgetBio, dto.UpsertWidgetSettingInput{
		Enabled: boolPtr(false),
	})
	require.NoError(t, err)

	assert.False(t, setting.Enabled)
	assert.Equal(t, model.DefaultWidgetOrder(model.WidgetBio), setting.Order)
}

func TestUpsertSettingPreservesStoredOrder(t *testing.T) {
	f := newWidgetServiceFixture()

	_, err := f.svc.UpsertSetting(context.Background(), f.ownerID, f.card.ID, model.WidgetBio, dto.UpsertWidgetSettingInput{
		Enabled: boolPtr(true),
		Order:   intPtr(5),
	})
	require.NoError(t, err)

	// Toggling without an order keeps the stored rank.
	setting, err := f.svc.UpsertSetting(context.Background(), f.ownerID, f.card.ID, model.WidgetBio, dto.UpsertWidgetSettingInput{
		Enabled: boolPtr(false),
	})
	require.NoError(t, err)

	assert.False(t, setting.Enabled)
	assert.Equal(t, 5, setting.Order)
}

func TestUpsertSettingRejectsUnknownType(t *testing.T) {
	f := newWidgetServiceFixture()

	_, err := f.svc.UpsertSetting(context.Background(), f.ownerID, f.card.ID, model.WidgetType("banner"), dto.UpsertWidgetSettingInput{
		Enabled: boolPtr(true),
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpsertSettingRejectsNonOwner(t *testing.T) {
	f := newWidgetServiceFixture()

	_, err := f.svc.UpsertSetting(context.Background(), uuid.New(), f.card.ID, model.WidgetBio, dto.UpsertWidgetSettingInput{
		Enabled: boolPtr(false),
	})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Zero(t, f.widgetRepo.upsertCount)
}

func TestCreateCustomLinkDefaultsEnabled(t *testing.T) {
	f := newWidgetServiceFixture()

	link, err := f.svc.CreateCustomLink(context.Background(), f.ownerID, f.card.ID, dto.CreateCustomLinkInput{
		Title: "Portfolio",
		URL:   "https://example.com",
	})
	require.NoError(t, err)

	assert.True(t, link.Enabled)
	assert.Equal(t, f.card.ID, link.ProfileID)
}

func TestCreateCustomLinkRejectsNonOwner(t *testing.T) {
	f := newWidgetServiceFixture()

	_, err := f.svc.CreateCustomLink(context.Background(), uuid.New(), f.card.ID, dto.CreateCustomLinkInput{
		Title: "Portfolio",
		URL:   "https://example.com",
	})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, f.linkRepo.links)
}

func TestUpdateCustomLinkFromAnotherCardNotFound(t *testing.T) {
	f := newWidgetServiceFixture()

	otherCard := &model.Profile{UserID: f.ownerID, Username: "other-card"}
	require.NoError(t, f.profileRepo.Create(context.Background(), otherCard, nil))

	foreign := &model.CustomLink{ProfileID: otherCard.ID, Title: "Elsewhere", URL: "https://example.org"}
	require.NoError(t, f.linkRepo.Create(context.Background(), foreign))

	_, err := f.svc.UpdateCustomLink(context.Background(), f.ownerID, f.card.ID, foreign.ID, dto.UpdateCustomLinkInput{
		Title: strPtr("Renamed"),
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteSocialLink(t *testing.T) {
	f := newWidgetServiceFixture()

	link, err := f.svc.CreateSocialLink(context.Background(), f.ownerID, f.card.ID, dto.CreateSocialLinkInput{
		Platform: "github",
		URL:      "https://github.com/janedoe",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSocialLink(context.Background(), f.ownerID, f.card.ID, link.ID))
	assert.Empty(t, f.socialRepo.links)
}

func TestDeleteServiceUnknownID(t *testing.T) {
	f := newWidgetServiceFixture()

	err := f.svc.DeleteService(context.Background(), f.ownerID, f.card.ID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateServicePartialFields(t *testing.T) {
	f := newWidgetServiceFixture()

	created, err := f.svc.CreateService(context.Background(), f.ownerID, f.card.ID, dto.CreateServiceInput{
		Title:   "Consulting",
		Bullets: []string{"strategy", "audits"},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateService(context.Background(), f.ownerID, f.card.ID, created.ID, dto.UpdateServiceInput{
		Enabled: boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Consulting", updated.Title)
	assert.Equal(t, []string{"strategy", "audits"}, updated.Bullets)
	assert.False(t, updated.Enabled)
}
