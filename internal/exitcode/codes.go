// Package exitcode defines named exit codes for the triage-loop CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants for a triage run.
const (
	Success        = 0   // Every repository cycle completed
	Error          = 1   // Invalid args, misconfiguration, or every cycle failed
	PartialFailure = 2   // Some repository cycles failed, others completed
	Interrupted    = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case PartialFailure:
		return "PartialFailure"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
