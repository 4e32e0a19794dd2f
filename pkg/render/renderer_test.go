// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/logging"
)

func TestJSONRenderer_OneLinePerFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	frames := []engine.Frame{
		{Tick: 1, Phase: "grounded", Position: mgl64.Vec3{1, 0, 0}},
		{Tick: 2, Phase: "ascending", Jumped: true},
	}
	for _, f := range frames {
		if err := r.Render(f); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(frames) {
		t.Fatalf("got %d lines, want %d", len(lines), len(frames))
	}
	for i, line := range lines {
		var got engine.Frame
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got.Tick != frames[i].Tick || got.Phase != frames[i].Phase || got.Jumped != frames[i].Jumped {
			t.Errorf("line %d = %+v, want %+v", i, got, frames[i])
		}
	}
}

func TestNullRenderer_LogsOnlyEvents(t *testing.T) {
	tests := []struct {
		name    string
		frame   engine.Frame
		wantLog bool
	}{
		{"quiet frame", engine.Frame{Tick: 1, Phase: "grounded"}, false},
		{"jump", engine.Frame{Tick: 2, Phase: "ascending", Jumped: true}, true},
		{"landing", engine.Frame{Tick: 3, Phase: "grounded", Landed: true}, true},
		{"glide stop", engine.Frame{Tick: 4, Phase: "falling", GlideStopped: true}, true},
	}

	t.Setenv(logging.LevelEnv, "DEBUG")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewNullRenderer(logging.NewLoggerWithWriter(&buf, logging.FormatJSON))

			if err := r.Render(tt.frame); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got := strings.Contains(buf.String(), "Frame event"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestNullRenderer_NilLogger(t *testing.T) {
	r := NewNullRenderer(nil)
	if err := r.Render(engine.Frame{Landed: true}); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}
