package profile

const TrialStatusUnknown = "UNKNOWN"

const (
	AgeUnitYears  = "Years"
	AgeUnitMonths = "Months"
	AgeUnitDays   = "Days"
)

const (
	EligibilitySexAll    = "ALL"
	EligibilitySexFemale = "FEMALE"
	EligibilitySexMale   = "MALE"
)

type AgeValue struct {
	Value int    `json:"value" validate:"gte=0"`
	Unit  string `json:"unit" validate:"oneof=Years Months Days"`
}

type Eligibility struct {
	CriteriaText      string    `json:"criteriaText,omitempty"`
	MinAge            *AgeValue `json:"minAge,omitempty"`
	MaxAge            *AgeValue `json:"maxAge,omitempty"`
	Sex               string    `json:"sex,omitempty" validate:"omitempty,oneof=ALL FEMALE MALE"`
	HealthyVolunteers bool      `json:"healthyVolunteers"`
}

type TrialLocation struct {
	Facility string `json:"facility,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Trial is rebuilt from the registry response on every call and never
// stored. A trial reaches the caller only if it validates fully.
type Trial struct {
	NCTID         string          `json:"nctId" validate:"required"`
	Title         string          `json:"title" validate:"required"`
	OverallStatus string          `json:"overallStatus" validate:"required"`
	Conditions    []string        `json:"conditions"`
	Phases        []string        `json:"phases,omitempty"`
	Interventions []string        `json:"interventions,omitempty"`
	Eligibility   Eligibility     `json:"eligibility"`
	Locations     []TrialLocation `json:"locations,omitempty" validate:"dive"`
	URL           string          `json:"url" validate:"required,url"`
}
