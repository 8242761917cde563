package application

// stageOutcome tells the orchestrator whether the pipeline may continue.
// Only the two prerequisite stages (component validation, record creation)
// ever halt; version and code checks are advisory.
type stageOutcome int

const (
	stageContinue stageOutcome = iota
	stageHalt
)

// Stage names, in pipeline order. Appended to StagesCompleted as each
// stage finishes.
const (
	StageComponentValidation = "Component Validation"
	StageRecordCreation      = "Documentation Record Creation"
	StageVersionCheck        = "Version Check"
	StageCodeValidation      = "Code/Contract Validation"
)

const totalStages = 4
