// Package profile defines the patient profile extracted from a clinical
// transcript and the trial records returned to callers. Both shapes are
// validated with struct tags; nothing in this package touches the network.
package profile

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

type Demographics struct {
	Age *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
	Sex string `json:"sex,omitempty" validate:"omitempty,oneof=male female other"`
}

type Biomarker struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value,omitempty"`
}

// Location is extracted but not used for filtering yet. Reserved for
// geographic matching.
type Location struct {
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// RegistryQuery holds the two derived search strings for the trial registry.
// ConditionQuery is a standardized disease category; TermQuery is a
// boolean-OR expression over biomarkers, stage and synonyms. Either may be
// empty, and empty values are never sent to the registry.
type RegistryQuery struct {
	ConditionQuery string `json:"conditionQuery,omitempty"`
	TermQuery      string `json:"termQuery,omitempty"`
}

type PatientProfile struct {
	Demographics      Demographics  `json:"demographics"`
	Conditions        []string      `json:"conditions"`
	DiagnosisDate     string        `json:"diagnosisDate,omitempty"`
	Stage             string        `json:"stage,omitempty"`
	Biomarkers        []Biomarker   `json:"biomarkers,omitempty" validate:"dive"`
	PriorTherapies    []string      `json:"priorTherapies,omitempty"`
	PerformanceStatus string        `json:"performanceStatus,omitempty"`
	Location          *Location     `json:"location,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CTGovQuery        RegistryQuery `json:"ctgovQuery"`
}

// HasMinimalContent reports whether the profile carries enough medical
// content to search on: at least one condition, biomarker, or a stage.
func (p PatientProfile) HasMinimalContent() bool {
	for _, c := range p.Conditions {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	if len(p.Biomarkers) > 0 {
		return true
	}
	return strings.TrimSpace(p.Stage) != ""
}

var validate = validator.New()

// ValidateProfile checks the profile against the schema tags.
func ValidateProfile(p PatientProfile) error {
	return validate.Struct(p)
}

// ValidateTrial checks an assembled trial against the schema tags.
func ValidateTrial(t Trial) error {
	return validate.Struct(t)
}
