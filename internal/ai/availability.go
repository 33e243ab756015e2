package ai

import "os/exec"

// CheckAvailability reports which of the named CLI tools resolve on PATH,
// keyed by tool name. Used before wiring a reasoner so a missing AI CLI
// downgrades planning instead of failing every cycle.
func CheckAvailability(tools ...string) map[string]bool {
	found := make(map[string]bool, len(tools))
	for _, tool := range tools {
		_, err := exec.LookPath(tool)
		found[tool] = err == nil
	}
	return found
}
