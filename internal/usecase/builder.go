package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"careerprep/internal/domain"
	"careerprep/internal/model"
	"careerprep/internal/shared"

	"github.com/google/uuid"
)

// ResumesRepo is the persistence gateway for stored resumes.
type ResumesRepo interface {
	Save(ctx context.Context, r *domain.StoredResume) (*domain.StoredResume, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredResume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoredResume, error)
}

// ErrDraftNotFound is returned for unknown or already-closed draft ids.
var ErrDraftNotFound = errors.New("draft not found")

type draftSession struct {
	owner uuid.UUID
	draft *model.ResumeDraft
}

// BuilderService owns the draft editing sessions. Each draft belongs to
// exactly one user and lives only until it is submitted or discarded.
type BuilderService struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*draftSession
	repo   ResumesRepo
}

func NewBuilderService(repo ResumesRepo) *BuilderService {
	return &BuilderService{
		drafts: make(map[uuid.UUID]*draftSession),
		repo:   repo,
	}
}

// Open starts a new editing session. The draft's email is pre-filled from
// the session user; careerID tags the draft when the user arrived from a
// career page.
func (s *BuilderService) Open(owner uuid.UUID, email string, careerID *string) (uuid.UUID, *model.ResumeDraft) {
	id := uuid.New()
	d := model.NewDraft(email, careerID)
	s.mu.Lock()
	s.drafts[id] = &draftSession{owner: owner, draft: d}
	s.mu.Unlock()
	return id, d
}

// Get returns the draft for an editing session.
func (s *BuilderService) Get(owner, id uuid.UUID) (*model.ResumeDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.drafts[id]
	if !ok || sess.owner != owner {
		return nil, ErrDraftNotFound
	}
	return sess.draft, nil
}

// Discard drops a draft without saving. Discarding an unknown draft is a
// no-op; navigation away must never fail.
func (s *BuilderService) Discard(owner, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.drafts[id]; ok && sess.owner == owner {
		delete(s.drafts, id)
	}
}

// Edit applies one mutation to a draft under the session lock.
func (s *BuilderService) Edit(owner, id uuid.UUID, fn func(*model.ResumeDraft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.drafts[id]
	if !ok || sess.owner != owner {
		return ErrDraftNotFound
	}
	return fn(sess.draft)
}

// Submit validates a draft and persists it as a StoredResume. On a
// validation error no persistence call is made; on a gateway error the
// draft is left in place, still editable, and the generic retry error is
// returned. A successful submission closes the editing session.
func (s *BuilderService) Submit(ctx context.Context, owner, id uuid.UUID) (*domain.StoredResume, error) {
	// Validate and snapshot under the lock: Edit mutates the draft under
	// the same lock, and Save must not read it concurrently.
	s.mu.Lock()
	sess, ok := s.drafts[id]
	if !ok || sess.owner != owner {
		s.mu.Unlock()
		return nil, ErrDraftNotFound
	}
	d := sess.draft

	if verr := model.Validate(d); verr != nil {
		s.mu.Unlock()
		return nil, verr
	}

	stored := &domain.StoredResume{
		UserID:         owner,
		CareerID:       d.CareerID,
		FullName:       d.FullName(),
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		ZipCode:        d.ZipCode,
		City:           d.City,
		LinkedinURL:    d.LinkedinURL,
		WebsiteURL:     d.WebsiteURL,
		Summary:        d.Summary,
		PhotoURL:       d.PhotoURL,
		WorkExperience: copySlice(d.WorkExperience),
		Education:      copySlice(d.Education),
		Skills:         copySlice(d.Skills),
		Interests:      copySlice(d.Interests),
		References:     copySlice(d.References),
		CreatedAt:      time.Now(),
	}
	s.mu.Unlock()

	payload, err := toPayload(stored)
	if err != nil {
		return nil, fmt.Errorf("building payload: %w", err)
	}
	if err := model.ValidatePayload(payload); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, stored)
	if err != nil {
		log.Printf("builder: resume save failed: %v", err)
		return nil, shared.ErrSaveFailed
	}

	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
	return saved, nil
}

// Resume fetches a stored resume owned by the user. The stored copy is
// read-only; it only feeds the rendering engine.
func (s *BuilderService) Resume(ctx context.Context, owner, id uuid.UUID) (*domain.StoredResume, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != owner {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

// Resumes lists the user's stored resumes, newest first.
func (s *BuilderService) Resumes(ctx context.Context, owner uuid.UUID) ([]domain.StoredResume, error) {
	return s.repo.ListByUser(ctx, owner)
}

// copySlice keeps empty sections empty rather than nil; the stored form
// serializes them as [] to match the table defaults.
func copySlice[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

func toPayload(r *domain.StoredResume) (map[string]interface{}, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
