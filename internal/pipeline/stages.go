package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage docmodel.Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageResult enumerates per-stage classification outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// newFatalStageError wraps err so the CLI can classify it. Errors that are
// already classified keep their category.
func newFatalStageError(stage docmodel.Stage, err error) *StageError {
	if !derrors.IsClassified(err) {
		err = derrors.BuildError("build failed").
			Fatal().
			WithCause(err).
			WithContext("stage", string(stage)).
			Build()
	}
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage docmodel.Stage, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage docmodel.Stage, err error) *StageError {
	return &StageError{
		Kind:  StageErrorCanceled,
		Stage: stage,
		Err:   derrors.CanceledError(err).WithContext("stage", string(stage)).Build(),
	}
}

// stage is a discrete unit of work in the build.
type stage struct {
	name docmodel.Stage
	fn   func(ctx context.Context, bs *buildState) error
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func (p *Pipeline) runStages(ctx context.Context, bs *buildState, stages []stage) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.name, err)
			bs.report.recordStage(st.name, 0, StageResultCanceled, se)
			p.observer.OnStageComplete(st.name, 0, StageResultCanceled)
			return se
		}

		p.observer.OnStageStart(st.name)
		before := len(bs.warnings)
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)

		for _, w := range bs.warnings[before:] {
			p.observer.OnWarning(w)
		}

		result := StageResultSuccess
		if len(bs.warnings) > before {
			result = StageResultWarning
		}

		var se *StageError
		switch {
		case err == nil:
		case errors.As(err, &se):
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			se = newCanceledStageError(st.name, err)
		default:
			se = newFatalStageError(st.name, err)
		}

		if se != nil {
			switch se.Kind {
			case StageErrorWarning:
				result = StageResultWarning
			case StageErrorCanceled:
				result = StageResultCanceled
			default:
				result = StageResultFatal
			}
		}
		bs.report.recordStage(st.name, dur, result, se)
		p.observer.OnStageComplete(st.name, dur, result)

		if se != nil && se.Kind != StageErrorWarning {
			return se
		}
	}
	return nil
}
