package workflow

// FallbackMessage is committed when message generation fails for any reason.
const FallbackMessage = "chore: update submodule changes"

// Message is a generated commit message. Fallback distinguishes a message the
// service produced from the substitute used when the service failed.
type Message struct {
	Text     string
	Fallback bool
	// Cause is the generation error behind a fallback message.
	Cause error
}

// Status classifies the result of processing one repository.
type Status int

const (
	// StatusCommitted means the repository was committed and pushed.
	StatusCommitted Status = iota
	// StatusSkippedClean means the working tree had no changes.
	StatusSkippedClean
	// StatusDryRun means changes were detected but left untouched.
	StatusDryRun
	// StatusFailed means a pipeline step failed; the error is in Err.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusSkippedClean:
		return "skipped (clean)"
	case StatusDryRun:
		return "dry-run"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-repository processing result. Failures are recorded
// here and logged, never propagated to sibling repositories.
type Outcome struct {
	Repo    string
	Status  Status
	Message Message
	Err     error
}

// Count tallies outcomes by status.
func Count(outcomes []Outcome) (committed, skipped, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusCommitted:
			committed++
		case StatusSkippedClean, StatusDryRun:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return committed, skipped, failed
}
