//go:build headless
// +build headless

package display

import (
	"fmt"

	"nesppu/internal/drive"
)

// Window is a stub for headless builds: Ebitengine is not linked in, so
// constructing a windowed display is a run-time error rather than a
// window that silently never appears.
type Window struct{}

// NewWindow returns a Window whose Run always fails; headless builds are
// expected to use HeadlessRecorder via drive.Run instead.
func NewWindow(cfg Config, messages chan<- drive.Message, surface *drive.Surface) *Window {
	return &Window{}
}

func (w *Window) Run() error {
	return fmt.Errorf("display: windowed backend not available in headless build")
}
