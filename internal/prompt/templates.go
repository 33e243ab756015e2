package prompt

import _ "embed"

// Template files embedded at compile time.
var (
	//go:embed templates/planner-system.txt
	PlannerSystemTemplate string

	//go:embed templates/planning.txt
	PlanningTemplate string
)
