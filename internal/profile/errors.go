package profile

// InvalidInputError marks caller mistakes: blank transcripts or profiles
// without enough medical content to search on. No network call is made once
// one of these is raised.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
