package display

import (
	"os"
	"path/filepath"
	"testing"

	"nesppu/internal/ppu"
)

func TestHeadlessRecorderWritesRequestedFrames(t *testing.T) {
	dir := t.TempDir()
	r := NewHeadlessRecorder(dir, 2)

	frame := make([]byte, ppu.Width*ppu.Height*4)
	r.Observe(frame) // frame 1: skipped
	r.Observe(frame) // frame 2: saved

	if r.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", r.FrameCount())
	}

	path := filepath.Join(dir, "frame_002.ppm")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_001.ppm")); err == nil {
		t.Fatalf("frame_001.ppm should not have been written")
	}
}

func TestHeadlessRecorderRejectsShortFrame(t *testing.T) {
	dir := t.TempDir()
	r := NewHeadlessRecorder(dir, 1)
	r.Observe([]byte{1, 2, 3})

	if _, err := os.Stat(filepath.Join(dir, "frame_001.ppm")); err == nil {
		t.Fatalf("frame_001.ppm should not exist for a too-short frame")
	}
}
