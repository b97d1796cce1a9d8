package service

import (
	"encoding/json"
	"log"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

const mentorIndex = "mentors"

// MentorSearchService maintains the mentor directory index. All methods
// are best-effort: the SQL store stays authoritative and callers fall back
// to ILIKE matching when search is unavailable.
type MentorSearchService interface {
	IndexMentor(mentor *entity.Mentor) error
	RemoveMentor(id uuid.UUID) error
	SearchMentors(query string, universityID *string, limit int) ([]uuid.UUID, error)
}

type mentorDocument struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Headline     string   `json:"headline"`
	Expertise    []string `json:"expertise"`
	Availability string   `json:"availability"`
	UniversityID string   `json:"university_id"`
}

type mentorSearchService struct {
	client meilisearch.ServiceManager
}

func NewMentorSearchService(client meilisearch.ServiceManager) MentorSearchService {
	s := &mentorSearchService{client: client}
	s.initIndex()
	return s
}

func (s *mentorSearchService) initIndex() {
	filterable := []string{"university_id"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(mentorIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update mentors filterable attributes: %v", err)
	}
}

func (s *mentorSearchService) IndexMentor(mentor *entity.Mentor) error {
	if mentor == nil || mentor.User == nil {
		return nil
	}

	doc := mentorDocument{
		ID:           mentor.ID.String(),
		Name:         mentor.User.Name,
		Expertise:    mentor.Expertise,
		Availability: mentor.Availability,
	}
	if mentor.User.Headline != nil {
		doc.Headline = *mentor.User.Headline
	}
	if mentor.User.UniversityID != nil {
		doc.UniversityID = *mentor.User.UniversityID
	}

	// Deactivated mentors drop out of the directory entirely.
	if !mentor.IsActive() || !mentor.User.IsActive() {
		return s.RemoveMentor(mentor.ID)
	}

	_, err := s.client.Index(mentorIndex).AddDocuments([]mentorDocument{doc}, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}

func (s *mentorSearchService) RemoveMentor(id uuid.UUID) error {
	_, err := s.client.Index(mentorIndex).DeleteDocument(id.String())
	return err
}

func (s *mentorSearchService) SearchMentors(query string, universityID *string, limit int) ([]uuid.UUID, error) {
	req := &meilisearch.SearchRequest{
		Limit: int64(limit),
	}
	if universityID != nil {
		req.Filter = "university_id = \"" + *universityID + "\""
	}

	resp, err := s.client.Index(mentorIndex).Search(query, req)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc mentorDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if id, err := uuid.Parse(doc.ID); err == nil {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
