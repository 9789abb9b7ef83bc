package model

// Severity grades a finding's effect on the composed decision.
type Severity int

const (
	// SeverityNone marks bookkeeping findings that never affect the outcome.
	SeverityNone Severity = iota
	// SeverityInfo findings surface as advisory text on an allow decision.
	SeverityInfo
	// SeverityWarn findings escalate the outcome to ask.
	SeverityWarn
	// SeverityBlock findings deny a pre-invocation event outright.
	SeverityBlock
	// SeverityFatal marks a post-hoc failure: the action already ran, so the
	// composer reports a hard stop instead of a deny.
	SeverityFatal
)

// String returns the severity label used in audit records.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityBlock:
		return "block"
	case SeverityFatal:
		return "fatal"
	default:
		return "none"
	}
}

// Finding is a single classifier observation about one event. Findings are
// ephemeral: produced during classification, consumed by the composer,
// never persisted.
type Finding struct {
	Category   string
	Severity   Severity
	Message    string
	Suggestion string
	Classifier string
}
