package model

// OutcomeKind identifies which of the three mutually exclusive states a
// SiteOutcome is in.
//
// Design decision: We use an explicit tag rather than inferring the state
// from which fields happen to be set. Renderers switch over the tag, which
// keeps the three cases exhaustive and removes "has an error field" guessing.
type OutcomeKind int

const (
	// OutcomeEmpty means the site answered but returned no findings.
	OutcomeEmpty OutcomeKind = iota

	// OutcomeError means querying the site failed.
	// The failure is data to be rendered, not an error to be returned.
	OutcomeError

	// OutcomeResults means the site returned at least one finding.
	OutcomeResults
)

// String returns a human-readable representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEmpty:
		return "empty"
	case OutcomeError:
		return "error"
	case OutcomeResults:
		return "results"
	default:
		return "unknown"
	}
}

// SiteOutcome is one site's response for one target.
type SiteOutcome struct {
	// SiteName identifies the queried intelligence site.
	SiteName string `json:"site" yaml:"site"`

	// State is the tag selecting which of ErrorMessage or Items is meaningful.
	State OutcomeKind `json:"-" yaml:"-"`

	// ErrorMessage is the failure reported by the site. Only used for OutcomeError.
	ErrorMessage string `json:"error,omitempty" yaml:"error,omitempty"`

	// Items holds the findings. Only used for OutcomeResults.
	Items []ResultItem `json:"results,omitempty" yaml:"results,omitempty"`
}

// NewErrorOutcome creates an outcome recording a failed site query.
func NewErrorOutcome(site, message string) SiteOutcome {
	return SiteOutcome{
		SiteName:     site,
		State:        OutcomeError,
		ErrorMessage: message,
	}
}

// NewEmptyOutcome creates an outcome for a site that returned nothing.
func NewEmptyOutcome(site string) SiteOutcome {
	return SiteOutcome{
		SiteName: site,
		State:    OutcomeEmpty,
	}
}

// NewResultsOutcome creates an outcome holding the given findings.
// A call with no items yields an outcome that reports itself as empty.
func NewResultsOutcome(site string, items ...ResultItem) SiteOutcome {
	return SiteOutcome{
		SiteName: site,
		State:    OutcomeResults,
		Items:    items,
	}
}

// Kind returns the effective state of the outcome.
// A results outcome with no items is reported as OutcomeEmpty so that every
// renderer treats "no findings" the same way regardless of how it was built.
func (o SiteOutcome) Kind() OutcomeKind {
	if o.State == OutcomeResults && len(o.Items) == 0 {
		return OutcomeEmpty
	}
	return o.State
}
