// pkg/render/renderer.go
package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/logging"
)

// FrameRenderer presents simulation frames.
type FrameRenderer interface {
	Render(f engine.Frame) error
}

// JSONRenderer writes each frame as one JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer creates a renderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

// Render implements FrameRenderer.
func (r *JSONRenderer) Render(f engine.Frame) error {
	return r.enc.Encode(f)
}

// NullRenderer drops frames, logging only the ones that carry an event.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a null renderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Render implements FrameRenderer.
func (d *NullRenderer) Render(f engine.Frame) error {
	if !f.Jumped && !f.Landed && !f.GlideStarted && !f.GlideStopped {
		return nil
	}
	d.logger.Debug(context.Background(), "Frame event",
		"tick", f.Tick,
		"phase", f.Phase,
		"jumped", f.Jumped,
		"landed", f.Landed,
		"glide_started", f.GlideStarted,
		"glide_stopped", f.GlideStopped,
	)
	return nil
}
