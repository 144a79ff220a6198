package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithRunTagsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, Config{Debug: true})
	ctx := WithRun(base.WithContext(context.Background()), "run-1", "problem-1")

	From(ctx).Info().Str("stage", "critic").Msg("stage finished")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["run_id"] != "run-1" || line["problem_id"] != "problem-1" || line["stage"] != "critic" {
		t.Fatalf("unexpected log fields: %v", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Debug: false})
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug line to be dropped, got %q", buf.String())
	}
}
