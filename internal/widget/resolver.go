// Package widget resolves which widgets of a card are visible to a given
// viewer and in what order. Everything here is pure: the inputs are the
// already-loaded records of one card, the output is the render list.
package widget

import (
	"sort"

	"tapfolio.app/backend/internal/model"
)

// Mode is the render mode of a card page. Owners toggle between editing
// their card and previewing it as a visitor would see it.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// ParseMode maps the query value to a Mode, defaulting to preview.
func ParseMode(s string) Mode {
	if s == string(ModeEdit) {
		return ModeEdit
	}
	return ModePreview
}

// Input carries one card and its child records plus the viewer context.
type Input struct {
	Profile     model.Profile
	CustomLinks []model.CustomLink
	SocialLinks []model.SocialLink
	Services    []model.Service
	Settings    []model.WidgetSetting

	ViewerIsOwner bool
	Mode          Mode
}

// Resolved is one widget slot in its final render position. Only the
// content slices matching the widget type are populated.
type Resolved struct {
	Type    model.WidgetType `json:"type"`
	Order   int              `json:"order"`
	Enabled bool             `json:"enabled"`

	CustomLinks []model.CustomLink `json:"custom_links,omitempty"`
	SocialLinks []model.SocialLink `json:"social_links,omitempty"`
	Services    []model.Service    `json:"services,omitempty"`
}

// SettingsMap indexes widget settings by type. Types without a stored row
// get no entry; callers fall back to defaults.
func SettingsMap(settings []model.WidgetSetting) map[model.WidgetType]model.WidgetSetting {
	m := make(map[model.WidgetType]model.WidgetSetting, len(settings))
	for _, s := range settings {
		m[s.WidgetType] = s
	}
	return m
}

// ShouldInclude decides whether an item with the given enabled flag is
// visible. Owners editing their card see everything, including disabled
// items; everyone else (visitors, and owners previewing) only sees
// enabled ones.
func ShouldInclude(enabled, viewerIsOwner bool, mode Mode) bool {
	if viewerIsOwner && mode == ModeEdit {
		return true
	}
	return enabled
}

// Resolve produces the ordered, filtered widget list for one card.
//
// Stored settings override the default order; widgets and child records
// failing their visibility check are dropped; widgets left without any
// content are suppressed unless the owner is editing, in which case all
// seven slots come back so the owner can populate them.
func Resolve(in Input) []Resolved {
	settings := SettingsMap(in.Settings)
	ownerEditing := in.ViewerIsOwner && in.Mode == ModeEdit

	// Walk the fixed type list so equal orders keep the default sequence
	// under the stable sort below.
	resolved := make([]Resolved, 0, len(model.WidgetTypes))
	for _, wt := range model.WidgetTypes {
		order := model.DefaultWidgetOrder(wt)
		enabled := true
		if s, ok := settings[wt]; ok {
			order = s.Order
			enabled = s.Enabled
		}

		if !ShouldInclude(enabled, in.ViewerIsOwner, in.Mode) {
			continue
		}

		w := Resolved{Type: wt, Order: order, Enabled: enabled}
		switch wt {
		case model.WidgetLinks:
			w.CustomLinks = filterCustomLinks(in.CustomLinks, in.ViewerIsOwner, in.Mode)
		case model.WidgetSocial:
			w.SocialLinks = filterSocialLinks(in.SocialLinks, in.ViewerIsOwner, in.Mode)
		case model.WidgetServices:
			w.Services = filterServices(in.Services, in.ViewerIsOwner, in.Mode)
		}

		if !ownerEditing && !hasContent(w, in.Profile) {
			continue
		}

		resolved = append(resolved, w)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Order < resolved[j].Order
	})

	return resolved
}

func filterCustomLinks(links []model.CustomLink, owner bool, mode Mode) []model.CustomLink {
	out := make([]model.CustomLink, 0, len(links))
	for _, l := range links {
		if ShouldInclude(l.Enabled, owner, mode) {
			out = append(out, l)
		}
	}
	return out
}

func filterSocialLinks(links []model.SocialLink, owner bool, mode Mode) []model.SocialLink {
	out := make([]model.SocialLink, 0, len(links))
	for _, l := range links {
		if ShouldInclude(l.Enabled, owner, mode) {
			out = append(out, l)
		}
	}
	return out
}

func filterServices(services []model.Service, owner bool, mode Mode) []model.Service {
	out := make([]model.Service, 0, len(services))
	for _, s := range services {
		if ShouldInclude(s.Enabled, owner, mode) {
			out = append(out, s)
		}
	}
	return out
}

// hasContent reports whether a widget has anything to show a visitor.
func hasContent(w Resolved, p model.Profile) bool {
	switch w.Type {
	case model.WidgetProfile:
		return notEmpty(p.DisplayName) || notEmpty(p.JobTitle) ||
			notEmpty(p.Company) || notEmpty(p.Location) || notEmpty(p.ProfileImageURL)
	case model.WidgetBio:
		return notEmpty(p.Bio)
	case model.WidgetLinks:
		return len(w.CustomLinks) > 0
	case model.WidgetSocial:
		return len(w.SocialLinks) > 0
	case model.WidgetServices:
		return len(w.Services) > 0
	case model.WidgetContact:
		return notEmpty(p.Email) || notEmpty(p.Phone) ||
			notEmpty(p.Website) || notEmpty(p.Address)
	case model.WidgetMap:
		return p.Latitude != nil && p.Longitude != nil
	}
	return false
}

func notEmpty(s *string) bool {
	return s != nil && *s != ""
}
