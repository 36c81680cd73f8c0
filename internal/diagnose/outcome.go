package diagnose

// Outcome is how a diagnostic run ended.
type Outcome int

const (
	OutcomeTextFound Outcome = iota
	OutcomeNoText
	OutcomeEngineUnavailable
	OutcomeFileNotFound
	OutcomeProcessingError
	OutcomeUnexpected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTextFound:
		return "text_found"
	case OutcomeNoText:
		return "no_text"
	case OutcomeEngineUnavailable:
		return "engine_unavailable"
	case OutcomeFileNotFound:
		return "file_not_found"
	case OutcomeProcessingError:
		return "processing_error"
	default:
		return "unexpected"
	}
}

// Extracted reports whether the engine produced output, blank or not.
func (o Outcome) Extracted() bool {
	return o == OutcomeTextFound || o == OutcomeNoText
}

// ExitCode maps the outcome to a process exit status for --strict runs.
// Runs that reached the engine and got output exit 0.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeTextFound, OutcomeNoText:
		return 0
	case OutcomeEngineUnavailable:
		return 2
	case OutcomeFileNotFound:
		return 3
	case OutcomeProcessingError:
		return 4
	default:
		return 5
	}
}
