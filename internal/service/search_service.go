package service

import (
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
)

const profileIndex = "profiles"

// SearchService keeps the public card directory searchable. Only public
// cards are indexed; going private or deleting a card removes the document.
type SearchService interface {
	IndexProfile(profile *model.Profile) error
	RemoveProfile(id string) error
	SearchDirectory(query string, limit int) ([]dto.DirectoryEntry, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

func NewSearchService(client meilisearch.ServiceManager, logger *zap.Logger) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	searchable := []string{"username", "card_name", "display_name", "job_title", "company", "location", "bio"}
	if _, err := s.client.Index(profileIndex).UpdateSearchableAttributes(&searchable); err != nil {
		s.logger.Warn("failed to update profile searchable attributes", zap.Error(err))
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(profileIndex).UpdateSortableAttributes(&sortable); err != nil {
		s.logger.Warn("failed to update profile sortable attributes", zap.Error(err))
	}
}

type meiliProfileDoc struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	CardName        string `json:"card_name"`
	DisplayName     string `json:"display_name"`
	JobTitle        string `json:"job_title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url"`
	CreatedAt       int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexProfile(profile *model.Profile) error {
	if !profile.IsPublic {
		return s.RemoveProfile(profile.ID.String())
	}

	doc := meiliProfileDoc{
		ID:              profile.ID.String(),
		Username:        profile.Username,
		CardName:        s.sanitizer.Sanitize(profile.CardName),
		DisplayName:     s.sanitizer.Sanitize(getStringOrEmpty(profile.DisplayName)),
		JobTitle:        s.sanitizer.Sanitize(getStringOrEmpty(profile.JobTitle)),
		Company:         s.sanitizer.Sanitize(getStringOrEmpty(profile.Company)),
		Location:        s.sanitizer.Sanitize(getStringOrEmpty(profile.Location)),
		Bio:             s.sanitizer.Sanitize(getStringOrEmpty(profile.Bio)),
		ProfileImageURL: getStringOrEmpty(profile.ProfileImageURL),
		CreatedAt:       profile.CreatedAt.Unix(),
	}

	task, err := s.client.Index(profileIndex).AddDocuments([]meiliProfileDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	s.logger.Debug("indexed profile", zap.String("profile_id", doc.ID), zap.Int64("task_id", task.TaskUID))
	return nil
}

func (s *meiliSearchService) RemoveProfile(id string) error {
	_, err := s.client.Index(profileIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchDirectory(query string, limit int) ([]dto.DirectoryEntry, error) {
	res, err := s.client.Index(profileIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}

	entries := make([]dto.DirectoryEntry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc meiliProfileDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		entries = append(entries, dto.DirectoryEntry{
			Username:        doc.Username,
			CardName:        doc.CardName,
			DisplayName:     strPtrOrNil(doc.DisplayName),
			JobTitle:        strPtrOrNil(doc.JobTitle),
			Company:         strPtrOrNil(doc.Company),
			Location:        strPtrOrNil(doc.Location),
			ProfileImageURL: strPtrOrNil(doc.ProfileImageURL),
		})
	}

	return entries, nil
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
