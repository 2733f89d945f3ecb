// Package registry builds ClinicalTrials.gov search requests from a patient
// profile and maps the response records into validated trials.
package registry

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"trialmatch/internal/profile"
)

const (
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2"
	studiesPath    = "/studies"

	// Policy defaults, not derived from the profile.
	statusFilter     = "RECRUITING,NOT_YET_RECRUITING"
	defaultPageSize  = 20
	defaultSortOrder = "LastUpdatePostDate:desc"

	// Ages outside (0, maxFilterAge] add no age filter.
	maxFilterAge = 120
)

var resultFields = strings.Join([]string{
	"IdentificationModule",
	"StatusModule",
	"ConditionsModule",
	"DesignModule",
	"ArmsInterventionsModule",
	"EligibilityModule",
	"ContactsLocationsModule",
}, ",")

// QueryParams is the outgoing parameter set for one registry search. Empty
// string fields are omitted from the query string entirely.
type QueryParams struct {
	Cond          string
	Term          string
	OverallStatus string
	Advanced      string
	AggFilters    string
	Fields        string
	PageSize      int
	Sort          string
}

// BuildQuery derives search parameters from the profile. Pure function, no
// I/O.
func BuildQuery(p profile.PatientProfile) QueryParams {
	q := QueryParams{
		OverallStatus: statusFilter,
		Fields:        resultFields,
		PageSize:      defaultPageSize,
		Sort:          defaultSortOrder,
	}
	if strings.TrimSpace(p.CTGovQuery.ConditionQuery) != "" {
		q.Cond = p.CTGovQuery.ConditionQuery
	}
	if strings.TrimSpace(p.CTGovQuery.TermQuery) != "" {
		q.Term = p.CTGovQuery.TermQuery
	}
	if age := p.Demographics.Age; age != nil && *age > 0 && *age <= maxFilterAge {
		q.Advanced = fmt.Sprintf("AREA[MinimumAge]RANGE[MIN,%d years] AND AREA[MaximumAge]RANGE[%d years,MAX]", *age, *age)
	}
	switch strings.ToLower(strings.TrimSpace(p.Demographics.Sex)) {
	case "male":
		q.AggFilters = "sex:m"
	case "female":
		q.AggFilters = "sex:f"
	case "other", "all":
		q.AggFilters = "sex:all"
	}
	return q
}

// Values serializes the params, omitting unset optional filters.
func (q QueryParams) Values() url.Values {
	v := url.Values{}
	if q.Cond != "" {
		v.Set("query.cond", q.Cond)
	}
	if q.Term != "" {
		v.Set("query.term", q.Term)
	}
	v.Set("filter.overallStatus", q.OverallStatus)
	if q.Advanced != "" {
		v.Set("filter.advanced", q.Advanced)
	}
	if q.AggFilters != "" {
		v.Set("aggFilters", q.AggFilters)
	}
	v.Set("fields", q.Fields)
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	v.Set("sort", q.Sort)
	return v
}
