package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/model"
)

// In-memory repositories used across the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if user, ok := r.users[parsed]; ok {
		found := *user
		return &found, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
	settings map[uuid.UUID][]model.WidgetSetting

	updateCount     int
	setPrimaryCount int
	deleteCount     int
	viewsAdded      map[uuid.UUID]int64
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{
		profiles:   make(map[uuid.UUID]*model.Profile),
		settings:   make(map[uuid.UUID][]model.WidgetSetting),
		viewsAdded: make(map[uuid.UUID]int64),
	}
	for _, p := range profiles {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.profiles[p.ID] = p
	}
	return repo
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *model.Profile, settings []model.WidgetSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.Username = strings.ToLower(profile.Username)
	for i := range settings {
		settings[i].ProfileID = profile.ID
	}
	r.profiles[profile.ID] = profile
	r.settings[profile.ID] = settings
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile, ok := r.profiles[id]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindByUsername(_ context.Context, username string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	username = strings.ToLower(username)
	for _, profile := range r.profiles {
		if profile.Username == username {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var profiles []*model.Profile
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (r *fakeProfileRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	username = strings.ToLower(username)
	for _, profile := range r.profiles {
		if profile.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCount++
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCount++
	delete(r.profiles, id)
	delete(r.settings, id)
	return nil
}

func (r *fakeProfileRepo) SetPrimary(_ context.Context, userID, profileID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setPrimaryCount++
	target, ok := r.profiles[profileID]
	if !ok || target.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profile.IsPrimary = profile.ID == profileID
		}
	}
	return nil
}

func (r *fakeProfileRepo) FindPublic(_ context.Context, limit, _ int) ([]*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var profiles []*model.Profile
	for _, profile := range r.profiles {
		if profile.IsPublic && len(profiles) < limit {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (r *fakeProfileRepo) AddViews(_ context.Context, id uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewsAdded[id] += delta
	return nil
}

type fakeWidgetRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID][]model.WidgetSetting

	upsertCount int
}

func newFakeWidgetRepo() *fakeWidgetRepo {
	return &fakeWidgetRepo{settings: make(map[uuid.UUID][]model.WidgetSetting)}
}

func (r *fakeWidgetRepo) FindByProfileID(_ context.Context, profileID uuid.UUID) ([]model.WidgetSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings[profileID], nil
}

func (r *fakeWidgetRepo) Upsert(_ context.Context, setting *model.WidgetSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCount++
	existing := r.settings[setting.ProfileID]
	for i := range existing {
		if existing[i].WidgetType == setting.WidgetType {
			existing[i].Enabled = setting.Enabled
			existing[i].Order = setting.Order
			return nil
		}
	}
	r.settings[setting.ProfileID] = append(existing, *setting)
	return nil
}

type fakeCustomLinkRepo struct {
	mu    sync.Mutex
	links map[uuid.UUID]*model.CustomLink
}

func newFakeCustomLinkRepo() *fakeCustomLinkRepo {
	return &fakeCustomLinkRepo{links: make(map[uuid.UUID]*model.CustomLink)}
}

func (r *fakeCustomLinkRepo) Create(_ context.Context, link *model.CustomLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	r.links[link.ID] = link
	return nil
}

func (r *fakeCustomLinkRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CustomLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link, ok := r.links[id]; ok {
		return link, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomLinkRepo) FindByProfileID(_ context.Context, profileID uuid.UUID) ([]model.CustomLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var links []model.CustomLink
	for _, link := range r.links {
		if link.ProfileID == profileID {
			links = append(links, *link)
		}
	}
	return links, nil
}

func (r *fakeCustomLinkRepo) Update(_ context.Context, link *model.CustomLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.ID] = link
	return nil
}

func (r *fakeCustomLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.links, id)
	return nil
}

type fakeSocialLinkRepo struct {
	mu    sync.Mutex
	links map[uuid.UUID]*model.SocialLink
}

func newFakeSocialLinkRepo() *fakeSocialLinkRepo {
	return &fakeSocialLinkRepo{links: make(map[uuid.UUID]*model.SocialLink)}
}

func (r *fakeSocialLinkRepo) Create(_ context.Context, link *model.SocialLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	r.links[link.ID] = link
	return nil
}

func (r *fakeSocialLinkRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link, ok := r.links[id]; ok {
		return link, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSocialLinkRepo) FindByProfileID(_ context.Context, profileID uuid.UUID) ([]model.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var links []model.SocialLink
	for _, link := range r.links {
		if link.ProfileID == profileID {
			links = append(links, *link)
		}
	}
	return links, nil
}

func (r *fakeSocialLinkRepo) Update(_ context.Context, link *model.SocialLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.ID] = link
	return nil
}

func (r *fakeSocialLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.links, id)
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *fakeServiceRepo) Create(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if service, ok := r.services[id]; ok {
		return service, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeServiceRepo) FindByProfileID(_ context.Context, profileID uuid.UUID) ([]model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var services []model.Service
	for _, service := range r.services {
		if service.ProfileID == profileID {
			services = append(services, *service)
		}
	}
	return services, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, id)
	return nil
}
