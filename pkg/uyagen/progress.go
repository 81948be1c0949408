package uyagen

// Stage identifies which section of the fixture a progress report refers to.
type Stage string

const (
	StageStructs   Stage = "structs"
	StageFunctions Stage = "functions"
)

// Progress receives periodic updates while a fixture is being written.
// done is the number of items already emitted out of total.
type Progress interface {
	Report(stage Stage, done, total int)
}

type ProgressFunc func(stage Stage, done, total int)

func (f ProgressFunc) Report(stage Stage, done, total int) {
	f(stage, done, total)
}

// NopProgress discards every report.
var NopProgress Progress = ProgressFunc(func(Stage, int, int) {})
