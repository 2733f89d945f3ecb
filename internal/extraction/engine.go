// Package extraction turns a free-text clinical transcript into a validated
// patient profile via one completion call. It fails closed: a response that
// does not parse and validate yields no profile at all.
package extraction

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"trialmatch/internal/llm"
	"trialmatch/internal/profile"
)

const (
	// Low temperature favors deterministic extraction.
	extractionTemperature = 0.1
	schemaName            = "patient_profile"
)

// Error wraps the underlying cause when the completion output fails to
// parse as JSON or fails profile schema validation.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "extraction failed: " + e.Message + ": " + e.Err.Error()
	}
	return "extraction failed: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

type Engine struct {
	provider llm.Provider
	model    string
}

func NewEngine(provider llm.Provider, model string) *Engine {
	return &Engine{provider: provider, model: model}
}

// Extract runs the extraction prompt over the transcript and returns the
// validated profile. Blank input is rejected before any network call.
func (e *Engine) Extract(ctx context.Context, transcript string) (profile.PatientProfile, error) {
	if strings.TrimSpace(transcript) == "" {
		return profile.PatientProfile{}, &profile.InvalidInputError{Reason: "transcript is empty"}
	}

	started := time.Now()
	log.Printf("extraction request_start model=%s transcript_chars=%d", e.model, len(transcript))
	raw, err := e.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: "TRANSCRIPT:\n" + transcript},
	}, llm.Options{
		Model:       e.model,
		Temperature: extractionTemperature,
		Schema:      &llm.ResponseSchema{Name: schemaName, Schema: json.RawMessage(profileSchema)},
	})
	if err != nil {
		log.Printf("extraction completion_error elapsed_ms=%d err=%q", time.Since(started).Milliseconds(), err.Error())
		return profile.PatientProfile{}, err
	}

	clean := stripCodeFences(raw)
	var p profile.PatientProfile
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		log.Printf("extraction json_error elapsed_ms=%d err=%q", time.Since(started).Milliseconds(), err.Error())
		return profile.PatientProfile{}, &Error{Message: "completion output is not valid JSON", Err: err}
	}
	if err := profile.ValidateProfile(p); err != nil {
		log.Printf("extraction validation_error elapsed_ms=%d err=%q", time.Since(started).Milliseconds(), err.Error())
		return profile.PatientProfile{}, &Error{Message: "completion output failed profile validation", Err: err}
	}
	log.Printf("extraction request_success elapsed_ms=%d conditions=%d biomarkers=%d", time.Since(started).Milliseconds(), len(p.Conditions), len(p.Biomarkers))
	return p, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
