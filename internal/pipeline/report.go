package pipeline

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

// Outcome is the final build result state.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures timing and counts of one build.
type Report struct {
	Start          time.Time                        `json:"start"`
	End            time.Time                        `json:"end"`
	Outcome        Outcome                          `json:"outcome"`
	StageDurations map[docmodel.Stage]time.Duration `json:"stage_durations"`
	StageResults   map[docmodel.Stage]StageResult   `json:"stage_results"`
	Sources        map[docmodel.Kind]int            `json:"sources"`
	Entries        map[docmodel.Kind]int            `json:"entries"`
	WarningCodes   map[docmodel.WarningCode]int     `json:"warning_codes"`
	Warnings       int                              `json:"warnings"`
	Synthesized    int                              `json:"synthesized"`
	WrittenBack    int                              `json:"written_back"`
	Dropped        int                              `json:"dropped"`
	Workers        int                              `json:"workers"`
	Errors         []error                          `json:"-"`
}

func newReport(start time.Time) *Report {
	return &Report{
		Start:          start,
		StageDurations: make(map[docmodel.Stage]time.Duration),
		StageResults:   make(map[docmodel.Stage]StageResult),
		Sources:        make(map[docmodel.Kind]int),
		Entries:        make(map[docmodel.Kind]int),
		WarningCodes:   make(map[docmodel.WarningCode]int),
	}
}

func (r *Report) recordStage(name docmodel.Stage, d time.Duration, result StageResult, se *StageError) {
	r.StageDurations[name] = d
	r.StageResults[name] = result
	if se != nil && se.Kind != StageErrorWarning {
		r.Errors = append(r.Errors, se)
	}
}

// finish stamps the end time and derives the outcome.
func (r *Report) finish(end time.Time, warnings []docmodel.Warning) {
	r.End = end
	r.Warnings = len(warnings)
	r.WarningCodes = docmodel.CountByCode(warnings)
	for _, e := range r.Errors {
		if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("components=%d milestones=%d project=%d reports=%d synthesized=%d dropped=%d warnings=%d duration=%s outcome=%s",
		r.Entries[docmodel.KindComponent], r.Entries[docmodel.KindMilestone], r.Entries[docmodel.KindProject], r.Entries[docmodel.KindReport],
		r.Synthesized, r.Dropped, r.Warnings, r.Duration().Truncate(time.Millisecond), r.Outcome)
}
