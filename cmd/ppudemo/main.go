// Package main implements ppudemo, a minimal executable that drives the
// PPU against the CHR-RAM cpu.Stub and displays the result, for manual
// and scripted exercising of internal/ppu, internal/drive, and
// internal/display end to end without a real 6502 or cartridge mapper.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nesppu/internal/buildinfo"
	"nesppu/internal/cpu"
	"nesppu/internal/display"
	"nesppu/internal/drive"
	"nesppu/internal/ppu"
)

func main() {
	var (
		chrFile  = flag.String("chr", "", "path to an 8KiB CHR-RAM image (optional)")
		headless = flag.Bool("headless", false, "run without a window, dumping sample frames to -out")
		outDir   = flag.String("out", ".", "directory for headless frame dumps")
		frames   = flag.Uint64("frames", 125, "number of PPU frames to run in headless mode")
		mirror   = flag.String("mirroring", "horizontal", "nametable mirroring: horizontal, vertical, four-screen, single-lower, single-upper")
		scale    = flag.Int("scale", 2, "integer window upscale factor")
		version  = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *version {
		buildinfo.PrintBuildInfo()
		return
	}

	mirroring, err := parseMirroring(*mirror)
	if err != nil {
		log.Fatalf("ppudemo: %v", err)
	}

	var chr []byte
	if *chrFile != "" {
		chr, err = os.ReadFile(*chrFile)
		if err != nil {
			log.Fatalf("ppudemo: reading %s: %v", *chrFile, err)
		}
	}
	stub := cpu.NewStub(chr)

	if *headless {
		runHeadless(stub, mirroring, *outDir, *frames)
		return
	}

	if err := runWindowed(stub, mirroring, *scale); err != nil {
		log.Fatalf("ppudemo: %v", err)
	}
}

func runHeadless(stub *cpu.Stub, mirroring ppu.Mirroring, outDir string, frameLimit uint64) {
	p := ppu.New(mirroring)
	recorder := display.NewHeadlessRecorder(outDir, 30, 60, 120)
	p.OnFrameComplete(recorder.Observe)

	cycleLimit := frameLimit * ppu.CyclesPerFrame
	opts := drive.DefaultOptions()
	if err := drive.Run(p, stub, opts, cycleLimit); err != nil {
		log.Fatalf("ppudemo: headless run failed: %v", err)
	}

	fmt.Printf("ran %d frames (%d CPU ticks), observed %d PPU frames\n", frameLimit, cycleLimit, recorder.FrameCount())
}

func runWindowed(stub *cpu.Stub, mirroring ppu.Mirroring, scale int) error {
	p := ppu.New(mirroring)
	messages := make(chan drive.Message, 16)
	var surface drive.Surface

	go func() {
		if err := drive.RunWorker(p, stub, messages, &surface); err != nil {
			log.Printf("ppudemo: pacing worker stopped: %v", err)
		}
	}()

	cfg := display.DefaultConfig()
	cfg.Scale = scale
	window := display.NewWindow(cfg, messages, &surface)
	return window.Run()
}

func parseMirroring(name string) (ppu.Mirroring, error) {
	switch name {
	case "horizontal":
		return ppu.Horizontal, nil
	case "vertical":
		return ppu.Vertical, nil
	case "four-screen":
		return ppu.FourScreen, nil
	case "single-lower":
		return ppu.SingleScreenLower, nil
	case "single-upper":
		return ppu.SingleScreenUpper, nil
	default:
		return 0, fmt.Errorf("unknown mirroring mode %q", name)
	}
}
