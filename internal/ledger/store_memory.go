package ledger

import (
	"context"
	"sync"

	"docseal/pkg/domain"
)

// InMemoryStore is a map-backed Store for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []SealedRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Seal registers a sealed record. Test/dev seeding only; the engine itself
// never writes through the Store port.
func (s *InMemoryStore) Seal(record SealedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Replace swaps the record for an artifact id, simulating an out-of-band
// ledger mutation in tests.
func (s *InMemoryStore) Replace(artifactID domain.ArtifactID, record SealedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ArtifactID == artifactID {
			s.records[i] = record
			return
		}
	}
	s.records = append(s.records, record)
}

func (s *InMemoryStore) LookupByHash(_ context.Context, hash domain.Digest) (*SealedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ContentHash == hash {
			record := s.records[i]
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) LookupByIdentifier(_ context.Context, identifier string) (*SealedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ArtifactID.String() == identifier || s.records[i].LoanID.String() == identifier {
			record := s.records[i]
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) LookupByBorrowerIdentity(_ context.Context, identity BorrowerIdentity) ([]SealedRecord, error) {
	if identity.IsZero() {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []SealedRecord
	for i := range s.records {
		if s.records[i].Borrower.Matches(identity) {
			matched = append(matched, s.records[i])
		}
	}
	return matched, nil
}

func (s *InMemoryStore) FetchLedgerReference(_ context.Context, artifactID domain.ArtifactID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ArtifactID == artifactID {
			return s.records[i].LedgerRef, nil
		}
	}
	return "", ErrNotFound
}
