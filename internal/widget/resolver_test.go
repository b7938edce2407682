package widget

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapfolio.app/backend/internal/model"
)

func strPtr(s string) *string { return &s }

func fullProfile() model.Profile {
	lat, lng := 52.52, 13.405
	return model.Profile{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Username:    "janedoe",
		CardName:    "My Card",
		DisplayName: strPtr("Jane Doe"),
		JobTitle:    strPtr("Engineer"),
		Bio:         strPtr("Building things."),
		Email:       strPtr("jane@example.com"),
		Phone:       strPtr("+4915112345678"),
		Latitude:    &lat,
		Longitude:   &lng,
	}
}

func setting(profileID uuid.UUID, wt model.WidgetType, enabled bool, order int) model.WidgetSetting {
	return model.WidgetSetting{
		ID:         uuid.New(),
		ProfileID:  profileID,
		WidgetType: wt,
		Enabled:    enabled,
		Order:      order,
	}
}

func types(resolved []Resolved) []model.WidgetType {
	out := make([]model.WidgetType, 0, len(resolved))
	for _, w := range resolved {
		out = append(out, w.Type)
	}
	return out
}

func TestResolveDefaultOrdering(t *testing.T) {
	p := fullProfile()
	link := model.CustomLink{ID: uuid.New(), ProfileID: p.ID, Title: "Blog", URL: "https://blog.example.com", Enabled: true}
	social := model.SocialLink{ID: uuid.New(), ProfileID: p.ID, Platform: "github", URL: "https://github.com/janedoe", Enabled: true}
	svc := model.Service{ID: uuid.New(), ProfileID: p.ID, Title: "Consulting", Enabled: true}

	got := Resolve(Input{
		Profile:     p,
		CustomLinks: []model.CustomLink{link},
		SocialLinks: []model.SocialLink{social},
		Services:    []model.Service{svc},
	})

	assert.Equal(t, []model.WidgetType{
		model.WidgetProfile,
		model.WidgetBio,
		model.WidgetLinks,
		model.WidgetSocial,
		model.WidgetServices,
		model.WidgetContact,
		model.WidgetMap,
	}, types(got))
}

func TestResolveOrderOverride(t *testing.T) {
	p := fullProfile()
	link := model.CustomLink{ID: uuid.New(), ProfileID: p.ID, Title: "Blog", URL: "https://blog.example.com", Enabled: true}

	got := Resolve(Input{
		Profile:     p,
		CustomLinks: []model.CustomLink{link},
		Settings: []model.WidgetSetting{
			setting(p.ID, model.WidgetLinks, true, 1),
			setting(p.ID, model.WidgetProfile, true, 2),
		},
	})

	order := types(got)
	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, model.WidgetLinks, order[0])
	assert.Equal(t, model.WidgetProfile, order[1])
}

func TestResolveOwnerSeesDisabledLink(t *testing.T) {
	p := fullProfile()
	disabled := model.CustomLink{ID: uuid.New(), ProfileID: p.ID, Title: "Draft", URL: "https://draft.example.com", Enabled: false}

	ownerEdit := Resolve(Input{
		Profile:       p,
		CustomLinks:   []model.CustomLink{disabled},
		ViewerIsOwner: true,
		Mode:          ModeEdit,
	})
	visitor := Resolve(Input{
		Profile:       p,
		CustomLinks:   []model.CustomLink{disabled},
		ViewerIsOwner: false,
		Mode:          ModePreview,
	})

	var ownerLinks, visitorHasLinksWidget = 0, false
	for _, w := range ownerEdit {
		if w.Type == model.WidgetLinks {
			ownerLinks = len(w.CustomLinks)
		}
	}
	for _, w := range visitor {
		if w.Type == model.WidgetLinks {
			visitorHasLinksWidget = true
		}
	}

	assert.Equal(t, 1, ownerLinks, "owner editing should see the disabled link")
	// The only link is hidden, so the whole widget is suppressed for visitors.
	assert.False(t, visitorHasLinksWidget)
}

func TestResolveEmptyBioSuppressedForVisitors(t *testing.T) {
	p := fullProfile()
	p.Bio = nil

	visitor := Resolve(Input{Profile: p, Mode: ModePreview})
	assert.NotContains(t, types(visitor), model.WidgetBio)

	owner := Resolve(Input{Profile: p, ViewerIsOwner: true, Mode: ModeEdit})
	assert.Contains(t, types(owner), model.WidgetBio)
	assert.Len(t, owner, len(model.WidgetTypes), "owner editing always gets all widget slots")
}

func TestResolveIdempotent(t *testing.T) {
	p := fullProfile()
	in := Input{
		Profile:     p,
		CustomLinks: []model.CustomLink{{ID: uuid.New(), ProfileID: p.ID, Title: "Blog", URL: "https://blog.example.com", Enabled: true}},
		Settings:    []model.WidgetSetting{setting(p.ID, model.WidgetMap, false, 9)},
	}

	first := Resolve(in)
	second := Resolve(in)
	assert.Equal(t, first, second)
}

func TestResolveDisabledWidgetHidesEnabledChildren(t *testing.T) {
	p := fullProfile()
	link := model.CustomLink{ID: uuid.New(), ProfileID: p.ID, Title: "Blog", URL: "https://blog.example.com", Enabled: true}

	got := Resolve(Input{
		Profile:     p,
		CustomLinks: []model.CustomLink{link},
		Settings: []model.WidgetSetting{
			setting(p.ID, model.WidgetProfile, true, 1),
			setting(p.ID, model.WidgetBio, true, 2),
			setting(p.ID, model.WidgetLinks, false, 3),
			setting(p.ID, model.WidgetSocial, false, 4),
			setting(p.ID, model.WidgetServices, false, 5),
			setting(p.ID, model.WidgetContact, false, 6),
			setting(p.ID, model.WidgetMap, false, 7),
		},
		ViewerIsOwner: false,
		Mode:          ModePreview,
	})

	assert.Equal(t, []model.WidgetType{model.WidgetProfile, model.WidgetBio}, types(got))
}

func TestResolveTieBreakKeepsDefaultSequence(t *testing.T) {
	p := fullProfile()

	got := Resolve(Input{
		Profile: p,
		Settings: []model.WidgetSetting{
			setting(p.ID, model.WidgetContact, true, 1),
			setting(p.ID, model.WidgetBio, true, 1),
		},
	})

	order := types(got)
	require.GreaterOrEqual(t, len(order), 2)
	// Both rank 1: bio precedes contact in the fixed default sequence.
	assert.Equal(t, model.WidgetBio, order[0])
	assert.Equal(t, model.WidgetContact, order[1])
}

func TestShouldInclude(t *testing.T) {
	assert.True(t, ShouldInclude(false, true, ModeEdit))
	assert.False(t, ShouldInclude(false, true, ModePreview))
	assert.False(t, ShouldInclude(false, false, ModePreview))
	assert.True(t, ShouldInclude(true, false, ModePreview))
}

func TestSettingsMapEmptyInput(t *testing.T) {
	assert.Empty(t, SettingsMap(nil))
}
