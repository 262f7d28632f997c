// Package analysis produces AI candidate analyses and caches them by
// (candidate, company, job description hash). Cached records are immutable:
// a repeat request returns the stored analysis even when the candidate's
// data has changed since, and a changed job description text produces a new
// hash and therefore a fresh analysis.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/daniel/talent-ranker/internal/types"
)

// Store is the persistence surface the cache needs. InsertAnalysis must be
// idempotent under the (candidate_id, company_id, jd_hash) unique constraint:
// when a concurrent insert already won, it returns the existing record.
type Store interface {
	GetAnalysis(ctx context.Context, candidateID, companyID uuid.UUID, jdHash string) (*types.AnalysisRecord, error)
	InsertAnalysis(ctx context.Context, record *types.AnalysisRecord) (*types.AnalysisRecord, error)
	GetCandidateBundle(ctx context.Context, candidateID, companyID uuid.UUID) (*types.CandidateBundle, error)
}

// GeneratorFunc produces an analysis from a candidate profile document and
// job description text.
type GeneratorFunc func(ctx context.Context, profileDoc, jdText string) (*types.CandidateAnalysis, error)

// Service is the analysis cache. Concurrent requests for the same key are
// collapsed in-process by singleflight; the storage unique constraint covers
// races across processes.
type Service struct {
	store    Store
	generate GeneratorFunc
	group    singleflight.Group
}

// NewService creates an analysis service backed by store and generator.
func NewService(store Store, generate GeneratorFunc) *Service {
	return &Service{store: store, generate: generate}
}

// HashJD returns the SHA-256 hex digest of the job description text. The
// digest is computed over the exact text: whitespace and casing differences
// produce distinct keys.
func HashJD(jdText string) string {
	sum := sha256.Sum256([]byte(jdText))
	return hex.EncodeToString(sum[:])
}

// GetOrCreate returns the cached analysis for (candidate, company, jdText),
// generating and persisting one on a cache miss. Generation failure surfaces
// to every collapsed caller and persists nothing; the next request retries
// from scratch.
func (s *Service) GetOrCreate(ctx context.Context, candidateID, companyID uuid.UUID, jdText string) (*types.AnalysisRecord, error) {
	jdHash := HashJD(jdText)
	key := fmt.Sprintf("%s|%s|%s", candidateID, companyID, jdHash)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.getOrCreate(ctx, candidateID, companyID, jdHash, jdText)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.AnalysisRecord), nil
}

func (s *Service) getOrCreate(ctx context.Context, candidateID, companyID uuid.UUID, jdHash, jdText string) (*types.AnalysisRecord, error) {
	existing, err := s.store.GetAnalysis(ctx, candidateID, companyID, jdHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up analysis: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	bundle, err := s.store.GetCandidateBundle(ctx, candidateID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if bundle == nil {
		return nil, &CandidateNotFoundError{CandidateID: candidateID}
	}

	generated, err := s.generate(ctx, BuildProfileDocument(bundle), jdText)
	if err != nil {
		return nil, &GenerationError{Message: "generator returned error", Cause: err}
	}

	record := &types.AnalysisRecord{
		ID:          uuid.New(),
		CandidateID: candidateID,
		CompanyID:   companyID,
		JDHash:      jdHash,
		Analysis:    *generated,
	}

	stored, err := s.store.InsertAnalysis(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}
	return stored, nil
}
