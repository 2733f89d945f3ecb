// Package matcher exposes the two entry points of the pipeline: extraction
// followed by a registry search, and a registry search over a profile the
// caller already has (the refinement loop re-enters here with edited query
// strings and no new completion call).
package matcher

import (
	"context"
	"log"
	"time"

	"trialmatch/internal/profile"
)

type Extractor interface {
	Extract(ctx context.Context, transcript string) (profile.PatientProfile, error)
}

type TrialSearcher interface {
	Search(ctx context.Context, p profile.PatientProfile) ([]profile.Trial, error)
}

type Result struct {
	Profile profile.PatientProfile `json:"profile"`
	Trials  []profile.Trial        `json:"trials"`
}

type Service struct {
	extractor Extractor
	registry  TrialSearcher
}

func NewService(extractor Extractor, registry TrialSearcher) *Service {
	return &Service{extractor: extractor, registry: registry}
}

// ExtractAndSearch runs the full pipeline over a raw transcript.
func (s *Service) ExtractAndSearch(ctx context.Context, transcript string) (Result, error) {
	started := time.Now()
	p, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		return Result{}, err
	}
	trials, err := s.registry.Search(ctx, p)
	if err != nil {
		return Result{}, err
	}
	log.Printf("matcher extract_and_search_done trials=%d elapsed_ms=%d", len(trials), time.Since(started).Milliseconds())
	return Result{Profile: p, Trials: trials}, nil
}

// SearchByProfile searches with a caller-supplied profile. Profiles without
// minimal medical content are rejected before any external call.
func (s *Service) SearchByProfile(ctx context.Context, p profile.PatientProfile) (Result, error) {
	if !p.HasMinimalContent() {
		return Result{}, &profile.InvalidInputError{Reason: "profile needs at least one condition, biomarker, or stage"}
	}
	started := time.Now()
	trials, err := s.registry.Search(ctx, p)
	if err != nil {
		return Result{}, err
	}
	log.Printf("matcher search_by_profile_done trials=%d elapsed_ms=%d", len(trials), time.Since(started).Milliseconds())
	return Result{Profile: p, Trials: trials}, nil
}
