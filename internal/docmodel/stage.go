package docmodel

// Stage is a strongly-typed pipeline stage identifier.
type Stage string

// Canonical stages in execution order.
const (
	StagePrepareOutput Stage = "prepare_output"
	StageScan          Stage = "scan"
	StageNormalize     Stage = "normalize"
	StageCategorize    Stage = "categorize"
	StageIndex         Stage = "index"
	StageStats         Stage = "stats"
	StageWrite         Stage = "write"
)
