package store

import (
	"context"
	"sync"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/models"
)

// MemoryProfileStore is the in-process document store used by tests and
// local development. Write stamps are strictly increasing per document,
// mirroring a server-side clock.
type MemoryProfileStore struct {
	mu         sync.Mutex
	docs       map[string]*models.UserProfile
	teacherKey string
	hasKey     bool

	// FailWrites makes every upsert fail; used to exercise the
	// signup-without-rollback path.
	FailWrites error
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{docs: make(map[string]*models.UserProfile)}
}

func (s *MemoryProfileStore) GetDocument(ctx context.Context, principalID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[principalID]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *MemoryProfileStore) UpsertDocument(ctx context.Context, principalID string, fields ProfileFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}

	doc, ok := s.docs[principalID]
	if !ok {
		doc = &models.UserProfile{
			PrincipalID: principalID,
			Role:        models.RoleStudent,
			CreatedAt:   time.Now().UTC(),
		}
		s.docs[principalID] = doc
	}
	applyFields(doc, fields)
	doc.UpdatedAt = s.stamp(doc.UpdatedAt)
	return nil
}

func (s *MemoryProfileStore) TeacherAccessKey(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasKey {
		return "", ErrSettingNotFound
	}
	return s.teacherKey, nil
}

func (s *MemoryProfileStore) SetTeacherAccessKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teacherKey = key
	s.hasKey = true
	return nil
}

// stamp emulates a monotonic server clock: never behind the previous stamp.
func (s *MemoryProfileStore) stamp(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
