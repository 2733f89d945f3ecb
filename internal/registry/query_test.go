package registry

import (
	"fmt"
	"testing"

	"trialmatch/internal/profile"
)

func intPtr(v int) *int { return &v }

func TestBuildQueryPolicyDefaults(t *testing.T) {
	q := BuildQuery(profile.PatientProfile{})
	if q.OverallStatus != "RECRUITING,NOT_YET_RECRUITING" {
		t.Fatalf("unexpected status filter %q", q.OverallStatus)
	}
	if q.PageSize != 20 {
		t.Fatalf("unexpected page size %d", q.PageSize)
	}
	if q.Sort != "LastUpdatePostDate:desc" {
		t.Fatalf("unexpected sort %q", q.Sort)
	}
	if q.Fields == "" {
		t.Fatal("fields list must be set")
	}
}

func TestBuildQueryOmitsEmptyCondAndTerm(t *testing.T) {
	p := profile.PatientProfile{
		Conditions: []string{"melanoma"},
		CTGovQuery: profile.RegistryQuery{ConditionQuery: "", TermQuery: "   "},
	}
	v := BuildQuery(p).Values()
	if _, ok := v["query.cond"]; ok {
		t.Fatal("query.cond must be omitted when empty")
	}
	if _, ok := v["query.term"]; ok {
		t.Fatal("query.term must be omitted when blank")
	}
}

func TestBuildQueryCopiesQueriesVerbatim(t *testing.T) {
	p := profile.PatientProfile{CTGovQuery: profile.RegistryQuery{
		ConditionQuery: "melanoma",
		TermQuery:      `(BRAF OR "BRAF V600E") OR metastatic`,
	}}
	v := BuildQuery(p).Values()
	if got := v.Get("query.cond"); got != "melanoma" {
		t.Fatalf("query.cond = %q", got)
	}
	if got := v.Get("query.term"); got != `(BRAF OR "BRAF V600E") OR metastatic` {
		t.Fatalf("query.term = %q", got)
	}
}

func TestBuildQueryAdvancedAgeFilterForValidAges(t *testing.T) {
	for a := 1; a <= 120; a++ {
		p := profile.PatientProfile{Demographics: profile.Demographics{Age: intPtr(a)}}
		want := fmt.Sprintf("AREA[MinimumAge]RANGE[MIN,%d years] AND AREA[MaximumAge]RANGE[%d years,MAX]", a, a)
		if got := BuildQuery(p).Advanced; got != want {
			t.Fatalf("age %d: advanced = %q, want %q", a, got, want)
		}
	}
}

func TestBuildQuerySkipsAdvancedFilterForOutOfRangeAges(t *testing.T) {
	for _, a := range []int{0, -5, 121, 400} {
		p := profile.PatientProfile{Demographics: profile.Demographics{Age: intPtr(a)}}
		if got := BuildQuery(p).Advanced; got != "" {
			t.Fatalf("age %d: expected no advanced filter, got %q", a, got)
		}
	}
	if got := BuildQuery(profile.PatientProfile{}).Advanced; got != "" {
		t.Fatalf("absent age: expected no advanced filter, got %q", got)
	}
}

func TestBuildQuerySexFilter(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"male", "sex:m"},
		{"MALE", "sex:m"},
		{"female", "sex:f"},
		{"Female", "sex:f"},
		{"other", "sex:all"},
		{"ALL", "sex:all"},
		{"", ""},
		{"unknown", ""},
	}
	for _, tc := range cases {
		p := profile.PatientProfile{Demographics: profile.Demographics{Sex: tc.in}}
		q := BuildQuery(p)
		if q.AggFilters != tc.want {
			t.Fatalf("sex %q: aggFilters = %q, want %q", tc.in, q.AggFilters, tc.want)
		}
		v := q.Values()
		if tc.want == "" {
			if _, ok := v["aggFilters"]; ok {
				t.Fatalf("sex %q: aggFilters key must be absent", tc.in)
			}
		} else if v.Get("aggFilters") != tc.want {
			t.Fatalf("sex %q: serialized aggFilters = %q", tc.in, v.Get("aggFilters"))
		}
	}
}

func TestBuildQueryIgnoresLocation(t *testing.T) {
	p := profile.PatientProfile{Location: &profile.Location{City: "San Francisco", State: "CA"}}
	v := BuildQuery(p).Values()
	for key := range v {
		switch key {
		case "filter.overallStatus", "fields", "pageSize", "sort":
		default:
			t.Fatalf("unexpected query parameter %q", key)
		}
	}
}
