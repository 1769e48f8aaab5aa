package topdesk

// Person is the creation payload of the persons endpoint.
type Person struct {
	SurName         string         `json:"surName" yaml:"surName"`
	FirstName       string         `json:"firstName" yaml:"firstName"`
	Email           string         `json:"email" yaml:"email"`
	TasLoginName    string         `json:"tasLoginName" yaml:"tasLoginName"`
	Branch          BranchRef      `json:"branch" yaml:"branch"`
	OptionalFields1 OptionalFields `json:"optionalFields1" yaml:"optionalFields1"`
}

// BranchRef references an existing branch by id.
type BranchRef struct {
	ID string `json:"id" yaml:"id"`
}

// OptionalFields holds the free-text optional fields of a person.
type OptionalFields struct {
	Text1 string `json:"text1" yaml:"text1"`
}

// LookupOutcome is the result of an existence probe.
type LookupOutcome int

const (
	// Indeterminate means the probe could not decide, see the returned error.
	Indeterminate LookupOutcome = iota
	// Exists means a person with the login name is already known.
	Exists
	// Absent means no person with the login name is known.
	Absent
)

// String returns the outcome name.
func (o LookupOutcome) String() string {
	switch o {
	case Exists:
		return "exists"
	case Absent:
		return "absent"
	default:
		return "indeterminate"
	}
}

// CreateResult captures the creation response regardless of outcome.
type CreateResult struct {
	StatusCode int
	Body       string
}
