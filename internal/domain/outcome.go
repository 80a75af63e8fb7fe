package domain

import "time"

// Report is a validated sounding ready to be stored.
type Report struct {
	Request  Request
	Filename string
	Text     string
}

// OutcomeKind classifies how a single day ended.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	// OutcomeError covers transport failures, timeouts, non-2xx responses and
	// failed file writes.
	OutcomeError
	// OutcomeEmptyOrInvalid is a page without a marker-terminated sounding.
	OutcomeEmptyOrInvalid
)

// Status returns the console tag for the outcome: "OK", "ERR" or "SKIP".
func (k OutcomeKind) Status() string {
	switch k {
	case OutcomeOK:
		return "OK"
	case OutcomeError:
		return "ERR"
	case OutcomeEmptyOrInvalid:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

func (k OutcomeKind) String() string { return k.Status() }

// Outcome is the result of processing one day. Exactly one of Filename
// (OutcomeOK), Err (OutcomeError) or Reason (OutcomeEmptyOrInvalid)
// is meaningful.
type Outcome struct {
	Date     time.Time
	Kind     OutcomeKind
	Filename string
	Err      error
	Reason   string
}
