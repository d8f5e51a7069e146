package docmodel

import "fmt"

// WarningCode is a stable, machine-parseable identifier for a per-source problem.
// Codes are a contract: append only.
type WarningCode string

const (
	WarnSourceRootMissing WarningCode = "SOURCE_ROOT_MISSING"
	WarnSourceMissing     WarningCode = "SOURCE_MISSING"
	WarnSourceUnreadable  WarningCode = "SOURCE_UNREADABLE"
	WarnMetadataMalformed WarningCode = "METADATA_MALFORMED"
	WarnFrontmatter       WarningCode = "FRONTMATTER_MALFORMED"
	WarnDocSynthesized    WarningCode = "DOC_SYNTHESIZED"
	WarnDuplicateName     WarningCode = "DUPLICATE_NAME"
	WarnCopyFailed        WarningCode = "COPY_FAILED"
	WarnWriteBackFailed   WarningCode = "WRITE_BACK_FAILED"
	WarnGitTimestamp      WarningCode = "GIT_TIMESTAMP_UNAVAILABLE"
)

// Warning records a per-source problem. It never aborts a build; the source is
// skipped or degraded instead.
type Warning struct {
	Code    WarningCode `json:"code"`
	Stage   Stage       `json:"stage"`
	Kind    Kind        `json:"kind,omitempty"`
	Source  string      `json:"source,omitempty"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

func (w Warning) String() string {
	msg := fmt.Sprintf("%s [%s] %s", w.Code, w.Stage, w.Message)
	if w.Source != "" {
		msg += " (" + w.Source + ")"
	}
	if w.Err != nil {
		msg += ": " + w.Err.Error()
	}
	return msg
}

// CountByCode tallies warnings by code.
func CountByCode(ws []Warning) map[WarningCode]int {
	out := make(map[WarningCode]int)
	for _, w := range ws {
		out[w.Code]++
	}
	return out
}
