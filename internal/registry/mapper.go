package registry

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"trialmatch/internal/profile"
)

const trialURLPrefix = "https://clinicaltrials.gov/study/"

type studyRecord struct {
	ProtocolSection protocolSection `json:"protocolSection"`
}

type protocolSection struct {
	Identification    identificationModule    `json:"identificationModule"`
	Status            statusModule            `json:"statusModule"`
	Conditions        conditionsModule        `json:"conditionsModule"`
	Design            designModule            `json:"designModule"`
	ArmsInterventions armsInterventionsModule `json:"armsInterventionsModule"`
	Eligibility       eligibilityModule       `json:"eligibilityModule"`
	ContactsLocations contactsLocationsModule `json:"contactsLocationsModule"`
}

type identificationModule struct {
	NCTID         string `json:"nctId"`
	BriefTitle    string `json:"briefTitle"`
	OfficialTitle string `json:"officialTitle"`
}

type statusModule struct {
	OverallStatus string `json:"overallStatus"`
}

type conditionsModule struct {
	Conditions []string `json:"conditions"`
}

type designModule struct {
	Phases []string `json:"phases"`
}

type armsInterventionsModule struct {
	Interventions []interventionRecord `json:"interventions"`
}

type interventionRecord struct {
	Name string `json:"name"`
}

type eligibilityModule struct {
	EligibilityCriteria string `json:"eligibilityCriteria"`
	MinimumAge          string `json:"minimumAge"`
	MaximumAge          string `json:"maximumAge"`
	Sex                 string `json:"sex"`
	HealthyVolunteers   bool   `json:"healthyVolunteers"`
}

type contactsLocationsModule struct {
	Locations []locationRecord `json:"locations"`
}

type locationRecord struct {
	Facility string `json:"facility"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

var ageStringRe = regexp.MustCompile(`(?i)^(\d+)\s+(year|month|day)s?$`)

// mapStudy assembles and validates one trial. The false return stands for
// "skip this record"; a malformed study never fails the whole search.
func mapStudy(rec studyRecord) (profile.Trial, bool) {
	ps := rec.ProtocolSection
	id := strings.TrimSpace(ps.Identification.NCTID)
	title := strings.TrimSpace(ps.Identification.BriefTitle)
	if title == "" {
		title = strings.TrimSpace(ps.Identification.OfficialTitle)
	}
	if id == "" || title == "" {
		return profile.Trial{}, false
	}

	status := strings.TrimSpace(ps.Status.OverallStatus)
	if status == "" {
		status = profile.TrialStatusUnknown
	}

	t := profile.Trial{
		NCTID:         id,
		Title:         title,
		OverallStatus: status,
		Conditions:    compactStrings(ps.Conditions.Conditions),
		Phases:        compactStrings(ps.Design.Phases),
		Interventions: interventionNames(ps.ArmsInterventions.Interventions),
		Eligibility: profile.Eligibility{
			CriteriaText:      strings.TrimSpace(ps.Eligibility.EligibilityCriteria),
			MinAge:            parseAgeString(ps.Eligibility.MinimumAge),
			MaxAge:            parseAgeString(ps.Eligibility.MaximumAge),
			Sex:               mapSexString(ps.Eligibility.Sex),
			HealthyVolunteers: ps.Eligibility.HealthyVolunteers,
		},
		Locations: mapLocations(ps.ContactsLocations.Locations),
		URL:       trialURLPrefix + id,
	}
	if err := profile.ValidateTrial(t); err != nil {
		log.Printf("registry dropping invalid study nct_id=%s err=%q", id, err.Error())
		return profile.Trial{}, false
	}
	return t, true
}

// parseAgeString reads registry age strings like "18 Years" or "6 months".
// Anything else, including empty input, yields nil rather than an error.
func parseAgeString(s string) *profile.AgeValue {
	m := ageStringRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	var unit string
	switch strings.ToLower(m[2]) {
	case "year":
		unit = profile.AgeUnitYears
	case "month":
		unit = profile.AgeUnitMonths
	default:
		unit = profile.AgeUnitDays
	}
	return &profile.AgeValue{Value: n, Unit: unit}
}

func mapSexString(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL", "BOTH":
		return profile.EligibilitySexAll
	case "FEMALE":
		return profile.EligibilitySexFemale
	case "MALE":
		return profile.EligibilitySexMale
	default:
		return ""
	}
}

func mapLocations(in []locationRecord) []profile.TrialLocation {
	if len(in) == 0 {
		return nil
	}
	out := make([]profile.TrialLocation, 0, len(in))
	for _, l := range in {
		loc := profile.TrialLocation{
			Facility: strings.TrimSpace(l.Facility),
			City:     strings.TrimSpace(l.City),
			State:    strings.TrimSpace(l.State),
			Country:  strings.TrimSpace(l.Country),
		}
		if loc == (profile.TrialLocation{}) {
			continue
		}
		out = append(out, loc)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func interventionNames(in []interventionRecord) []string {
	out := make([]string, 0, len(in))
	for _, iv := range in {
		name := strings.TrimSpace(iv.Name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
