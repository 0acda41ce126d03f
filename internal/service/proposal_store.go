package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
)

const proposalKeyPrefix = "curriculum:proposal:"

// curriculumProposal is a generated preview waiting to be persisted.
type curriculumProposal struct {
	ID         string           `json:"id"`
	RoundID    string           `json:"roundId"`
	TemplateID string           `json:"templateId"`
	Result     scheduler.Result `json:"result"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type proposalStore interface {
	Save(ctx context.Context, proposal curriculumProposal) error
	Get(ctx context.Context, id string) (curriculumProposal, bool, error)
	Delete(ctx context.Context, id string) error
}

// newProposalStore keeps proposals in Redis when the cache is enabled and in process memory otherwise.
func newProposalStore(cache *CacheService, ttl time.Duration) proposalStore {
	if cache.Enabled() {
		return &cacheProposalStore{cache: cache, ttl: ttl}
	}
	return newMemoryProposalStore(ttl)
}

type cacheProposalStore struct {
	cache *CacheService
	ttl   time.Duration
}

func (s *cacheProposalStore) Save(ctx context.Context, proposal curriculumProposal) error {
	return s.cache.Set(ctx, proposalKeyPrefix+proposal.ID, proposal, s.ttl)
}

func (s *cacheProposalStore) Get(ctx context.Context, id string) (curriculumProposal, bool, error) {
	var proposal curriculumProposal
	hit, err := s.cache.Get(ctx, proposalKeyPrefix+id, &proposal)
	if err != nil || !hit {
		return curriculumProposal{}, false, err
	}
	return proposal, true, nil
}

func (s *cacheProposalStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, proposalKeyPrefix+id)
}

type memoryProposalStore struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]curriculumProposal
}

func newMemoryProposalStore(ttl time.Duration) *memoryProposalStore {
	return &memoryProposalStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]curriculumProposal),
	}
}

func (s *memoryProposalStore) Save(_ context.Context, proposal curriculumProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
	s.items[proposal.ID] = proposal
	return nil
}

func (s *memoryProposalStore) Get(ctx context.Context, id string) (curriculumProposal, bool, error) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return curriculumProposal{}, false, nil
	}
	if s.expired(proposal) {
		_ = s.Delete(ctx, id)
		return curriculumProposal{}, false, nil
	}
	return proposal, true, nil
}

func (s *memoryProposalStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

func (s *memoryProposalStore) expired(proposal curriculumProposal) bool {
	return s.now().Sub(proposal.CreatedAt) > s.ttl
}
