package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
	"git.home.luguber.info/inful/docmeta/internal/metrics"
)

// Observer receives callbacks around stage execution, per-source warnings and
// build completion. Logging and metrics are both observers.
type Observer interface {
	OnStageStart(stage docmodel.Stage)
	OnStageComplete(stage docmodel.Stage, duration time.Duration, result StageResult)
	OnWarning(w docmodel.Warning)
	OnBuildComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(docmodel.Stage)                                 {}
func (NoopObserver) OnStageComplete(docmodel.Stage, time.Duration, StageResult) {}
func (NoopObserver) OnWarning(docmodel.Warning)                                  {}
func (NoopObserver) OnBuildComplete(*Report)                                     {}

// MultiObserver fans callbacks out in order.
type MultiObserver []Observer

func (m MultiObserver) OnStageStart(stage docmodel.Stage) {
	for _, o := range m {
		o.OnStageStart(stage)
	}
}

func (m MultiObserver) OnStageComplete(stage docmodel.Stage, d time.Duration, r StageResult) {
	for _, o := range m {
		o.OnStageComplete(stage, d, r)
	}
}

func (m MultiObserver) OnWarning(w docmodel.Warning) {
	for _, o := range m {
		o.OnWarning(w)
	}
}

func (m MultiObserver) OnBuildComplete(report *Report) {
	for _, o := range m {
		o.OnBuildComplete(report)
	}
}

// LogObserver writes progress and warnings to a slog.Logger.
type LogObserver struct {
	Logger *slog.Logger
}

// NewLogObserver returns a LogObserver; nil uses slog.Default().
func NewLogObserver(logger *slog.Logger) LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return LogObserver{Logger: logger}
}

func (l LogObserver) OnStageStart(stage docmodel.Stage) {
	l.Logger.Debug("Stage started", logfields.Stage(string(stage)))
}

func (l LogObserver) OnStageComplete(stage docmodel.Stage, d time.Duration, r StageResult) {
	level := slog.LevelDebug
	if r == StageResultFatal || r == StageResultCanceled {
		level = slog.LevelError
	}
	l.Logger.Log(context.Background(), level, "Stage complete",
		logfields.Stage(string(stage)), logfields.Duration(d), logfields.Outcome(string(r)))
}

func (l LogObserver) OnWarning(w docmodel.Warning) {
	attrs := []any{
		logfields.Code(string(w.Code)),
		logfields.Stage(string(w.Stage)),
		logfields.Kind(string(w.Kind)),
		logfields.Source(w.Source),
	}
	if w.Err != nil {
		attrs = append(attrs, logfields.Error(w.Err))
	}
	level := slog.LevelWarn
	if w.Code == docmodel.WarnDocSynthesized {
		level = slog.LevelInfo
	}
	l.Logger.Log(context.Background(), level, w.Message, attrs...)
}

func (l LogObserver) OnBuildComplete(r *Report) {
	l.Logger.Info("Build complete",
		logfields.Outcome(string(r.Outcome)),
		logfields.Duration(r.Duration()),
		slog.Int("components", r.Entries[docmodel.KindComponent]),
		slog.Int("milestones", r.Entries[docmodel.KindMilestone]),
		slog.Int("project", r.Entries[docmodel.KindProject]),
		slog.Int("reports", r.Entries[docmodel.KindReport]),
		logfields.Count(r.Warnings))
}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct {
	Recorder metrics.Recorder
}

func (r RecorderObserver) OnStageStart(docmodel.Stage) {}

func (r RecorderObserver) OnStageComplete(stage docmodel.Stage, d time.Duration, res StageResult) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveStageDuration(string(stage), d)
	r.Recorder.IncStageResult(string(stage), metrics.ResultLabel(res))
}

func (r RecorderObserver) OnWarning(w docmodel.Warning) {
	if r.Recorder != nil {
		r.Recorder.IncWarning(string(w.Code))
	}
}

func (r RecorderObserver) OnBuildComplete(report *Report) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveBuildDuration(report.Duration())
	r.Recorder.IncBuildOutcome(string(report.Outcome))
	r.Recorder.SetSourceWorkers(report.Workers)
	for _, k := range docmodel.Kinds {
		r.Recorder.SetEntries(string(k), report.Entries[k])
	}
}
