package model

// TargetRow is one observable submitted for enrichment together with the
// outcome of every site queried for it, in query order.
type TargetRow struct {
	// Target is the observable value (domain, IP, hash, URL, ...).
	Target string `json:"target" yaml:"target"`

	// ObservableType is the type the caller requested or inferred.
	ObservableType string `json:"observable_type" yaml:"observable_type"`

	// ObservableTypeDetected is the type auto-detected from the value.
	// It may differ from ObservableType.
	ObservableTypeDetected string `json:"observable_type_detected" yaml:"observable_type_detected"`

	// Outcomes holds one entry per queried site. It is never nil.
	Outcomes []SiteOutcome `json:"outcomes" yaml:"outcomes"`
}

// NewTargetRow creates a TargetRow with an initialized, empty outcome list.
func NewTargetRow(target, observableType, detected string) TargetRow {
	return TargetRow{
		Target:                 target,
		ObservableType:         observableType,
		ObservableTypeDetected: detected,
		Outcomes:               make([]SiteOutcome, 0),
	}
}

// AddOutcome appends a site outcome, preserving insertion order.
func (r *TargetRow) AddOutcome(outcome SiteOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}
