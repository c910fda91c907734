package display

import (
	"fmt"
	"os"

	"nesppu/internal/ppu"
)

// HeadlessRecorder saves selected frames from a drive.Surface-style RGBA
// buffer to disk as PPM images, mirroring the teacher's headless backend's
// debug frame dumps but driven by explicit frame numbers rather than a
// fixed schedule.
type HeadlessRecorder struct {
	outputDir string
	frames    map[int]bool
	count     int
}

// NewHeadlessRecorder records frames whose 1-based sequence number is in
// atFrames, writing PPM files under dir.
func NewHeadlessRecorder(dir string, atFrames ...int) *HeadlessRecorder {
	frames := make(map[int]bool, len(atFrames))
	for _, f := range atFrames {
		frames[f] = true
	}
	return &HeadlessRecorder{outputDir: dir, frames: frames}
}

// Observe is suitable as a ppu.PPU.OnFrameComplete callback: it increments
// the frame count and, if this frame number was requested, writes it out.
func (r *HeadlessRecorder) Observe(frame []byte) {
	r.count++
	if !r.frames[r.count] {
		return
	}
	path := fmt.Sprintf("%s/frame_%03d.ppm", r.outputDir, r.count)
	if err := savePPM(frame, path); err != nil {
		fmt.Fprintf(os.Stderr, "display: failed to save %s: %v\n", path, err)
	}
}

// FrameCount reports how many frames have been observed.
func (r *HeadlessRecorder) FrameCount() int {
	return r.count
}

func savePPM(frame []byte, path string) error {
	if len(frame) < ppu.Width*ppu.Height*4 {
		return fmt.Errorf("display: frame too short: %d bytes", len(frame))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("display: create %s: %w", path, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n%d %d\n255\n", ppu.Width, ppu.Height)
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			i := (y*ppu.Width + x) * 4
			fmt.Fprintf(file, "%d %d %d ", frame[i], frame[i+1], frame[i+2])
		}
		fmt.Fprintf(file, "\n")
	}
	return nil
}
