package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
)

func TestReportFinish(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	warn := []docmodel.Warning{{Code: docmodel.WarnDocSynthesized}, {Code: docmodel.WarnDocSynthesized}}

	tests := []struct {
		name     string
		errs     []error
		warnings []docmodel.Warning
		want     Outcome
	}{
		{name: "clean", want: OutcomeSuccess},
		{name: "warnings", warnings: warn, want: OutcomeWarning},
		{name: "fatal", errs: []error{newFatalStageError(docmodel.StageWrite, errors.New("disk full"))}, warnings: warn, want: OutcomeFailed},
		{name: "canceled", errs: []error{newCanceledStageError(docmodel.StageScan, context.Canceled)}, want: OutcomeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReport(start)
			r.Errors = tt.errs
			r.finish(start.Add(1500*time.Millisecond), tt.warnings)
			assert.Equal(t, tt.want, r.Outcome)
			assert.Equal(t, len(tt.warnings), r.Warnings)
			assert.Equal(t, 1500*time.Millisecond, r.Duration())
			assert.Contains(t, r.Summary(), "outcome="+string(tt.want))
		})
	}
}

func TestReportWarningCodes(t *testing.T) {
	r := newReport(time.Now())
	r.finish(time.Now(), []docmodel.Warning{
		{Code: docmodel.WarnDocSynthesized},
		{Code: docmodel.WarnSourceMissing},
		{Code: docmodel.WarnDocSynthesized},
	})
	assert.Equal(t, 2, r.WarningCodes[docmodel.WarnDocSynthesized])
	assert.Equal(t, 1, r.WarningCodes[docmodel.WarnSourceMissing])
}

func TestFatalStageErrorClassifiesPlainErrors(t *testing.T) {
	cause := errors.New("disk full")
	se := newFatalStageError(docmodel.StageIndex, cause)

	ce, ok := derrors.AsClassified(se.Err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryBuild, ce.Category())
	assert.True(t, ce.IsFatal())
	assert.ErrorIs(t, se, cause)
	stage, _ := ce.Context().GetString("stage")
	assert.Equal(t, string(docmodel.StageIndex), stage)

	classified := derrors.FileSystemError("read-only").Build()
	assert.Same(t, classified, newFatalStageError(docmodel.StageWrite, classified).Err)
}
