package domain

// OutcomeStatus tags an Outcome.
type OutcomeStatus int

const (
	OutcomeOK OutcomeStatus = iota
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	if s == OutcomeOK {
		return "ok"
	}
	return "failed"
}

// Outcome is the result of one lookup. Range is set when Status is
// OutcomeOK; Err and Kind are set when Status is OutcomeFailed.
type Outcome struct {
	Status OutcomeStatus
	CIK    string
	Range  ShareRange
	Err    error
	Kind   ErrorKind
}

// Succeeded wraps a completed range.
func Succeeded(r ShareRange) Outcome {
	return Outcome{Status: OutcomeOK, CIK: r.CIK, Range: r}
}

// Failed wraps the error that stopped a lookup for cik. cik is the raw input
// when resolution itself failed.
func Failed(cik string, err error) Outcome {
	return Outcome{Status: OutcomeFailed, CIK: cik, Err: err, Kind: KindOf(err)}
}
