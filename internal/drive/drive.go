// Package drive implements the pacing loop that drives a caller-supplied
// CPU and a ppu.PPU at the correct ratio (one CPU tick to three PPU dots),
// throttled to spec.md's CPU_FREQ, while draining a Button/Pause message
// channel and handing completed frames to a double-buffered Surface.
package drive

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"nesppu/internal/ppu"
)

// ErrChannelClosed is returned when the message channel closes mid-loop —
// the pacing worker's "main thread died" fatal path (spec §7).
var ErrChannelClosed = errors.New("drive: message channel closed")

// Options configures a pacing loop run. The zero value is not meaningful;
// use DefaultOptions and override individual fields.
type Options struct {
	// BatchSize is the number of CPU ticks processed between throttle
	// checks. Spec recommends 1000.
	BatchSize int
	// TargetFreq is the CPU frequency to pace against, in Hz.
	TargetFreq float64
	// BehindThreshold is how far behind wall-clock the loop must fall,
	// sampled at batch boundaries, before it logs a "behind by X" notice.
	BehindThreshold time.Duration
}

// DefaultOptions returns the spec-recommended pacing configuration: batch
// size 1000, NTSC CPU frequency, 200ms behind-threshold.
func DefaultOptions() Options {
	return Options{
		BatchSize:       1000,
		TargetFreq:      ppu.CPUFreq,
		BehindThreshold: 200 * time.Millisecond,
	}
}

// MessageKind discriminates the two message variants the pacing channel
// carries.
type MessageKind int

const (
	MsgButton MessageKind = iota
	MsgPause
)

// Message is a Button(name, pressed) or Pause(paused) event sent from the
// main thread to the pacing worker (spec §5).
type Message struct {
	Kind    MessageKind
	Button  ppu.ButtonName
	Pressed bool
	Paused  bool
}

// ButtonMessage constructs a Button message.
func ButtonMessage(name ppu.ButtonName, pressed bool) Message {
	return Message{Kind: MsgButton, Button: name, Pressed: pressed}
}

// PauseMessage constructs a Pause message.
func PauseMessage(paused bool) Message {
	return Message{Kind: MsgPause, Paused: paused}
}

// Surface is the shared, mutex-protected framebuffer the main thread reads
// at ~60Hz while the pacing worker owns the PPU's private buffer
// exclusively (spec §5).
type Surface struct {
	mu    sync.Mutex
	frame [ppu.Width * ppu.Height * 4]byte
}

// Copy replaces the shared surface with src, copying under the lock. Called
// by the pacing worker's frame-complete callback.
func (s *Surface) Copy(src []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.frame[:], src)
}

// Snapshot returns a copy of the current shared surface for redraw.
func (s *Surface) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.frame))
	copy(out, s.frame[:])
	return out
}

// Run drives cpu against a caller-owned PPU for up to cycleLimit CPU ticks
// (0 means unbounded), with no message channel and no shared Surface.
// Callers that need access to the PPU itself — e.g. to install an
// OnFrameComplete callback for frame dumps — must construct their own
// *ppu.PPU and call Run directly; RunHeadless/RunHeadlessFor below own
// their PPU privately and so cannot expose it.
func Run(p *ppu.PPU, cpu ppu.Cpu, opts Options, cycleLimit uint64) error {
	return runPPU(p, cpu, nil, nil, opts, cycleLimit)
}

// RunHeadless runs the pacing loop without a window or input channel,
// unbounded, against an internally constructed PPU. Intended for tests and
// tools that only need to drive a CPU against a PPU and have no need to
// observe the PPU's frames; use Run for that.
func RunHeadless(cpu ppu.Cpu, mirroring ppu.Mirroring, opts Options) error {
	return Run(ppu.New(mirroring), cpu, opts, 0)
}

// RunHeadlessFor is RunHeadless bounded to cycleLimit CPU ticks.
func RunHeadlessFor(cpu ppu.Cpu, mirroring ppu.Mirroring, opts Options, cycleLimit uint64) error {
	return Run(ppu.New(mirroring), cpu, opts, cycleLimit)
}

// RunWorker runs the pacing loop against an existing PPU, draining
// messages and publishing completed frames to surface. Intended to be
// launched in its own goroutine by a windowed display backend; blocks
// until cpu.Tick fails or messages closes.
func RunWorker(p *ppu.PPU, cpu ppu.Cpu, messages <-chan Message, surface *Surface) error {
	return runPPU(p, cpu, messages, surface, DefaultOptions(), 0)
}

// runPPU is the pacing loop itself (spec §4.8). cycleLimit == 0 means
// unbounded. messages == nil means no input is ever drained (headless).
func runPPU(p *ppu.PPU, cpu ppu.Cpu, messages <-chan Message, surface *Surface, opts Options, cycleLimit uint64) error {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	if opts.TargetFreq <= 0 {
		opts.TargetFreq = ppu.CPUFreq
	}
	if opts.BehindThreshold <= 0 {
		opts.BehindThreshold = DefaultOptions().BehindThreshold
	}

	if surface != nil {
		p.OnFrameComplete(surface.Copy)
	}

	// busyTime accumulates wall-clock time actually spent ticking, excluding
	// any time spent blocked on a Pause(true) message. lastTick anchors the
	// next delta: advanced to now() at every batch boundary and again right
	// after an unpause, so a pause gap is excluded from busyTime without
	// ever discarding the time already accumulated (spec §4.8, grounded on
	// run.rs's run_ppu: busy_time += now.duration_since(last_tick), with
	// last_tick reset on unpause but busy_time itself never reset).
	var busyTime time.Duration
	var cycles uint64
	lastTick := time.Now()

	for cycleLimit == 0 || cycles < cycleLimit {
		for i := 0; i < opts.BatchSize && (cycleLimit == 0 || cycles < cycleLimit); i++ {
			if err := drain(p, messages, &lastTick); err != nil {
				return err
			}

			if err := cpu.Tick(p); err != nil {
				return fmt.Errorf("drive: cpu tick failed: %w", err)
			}

			p.Step(cpu)
			p.Step(cpu)
			p.Step(cpu)

			cycles++
		}

		now := time.Now()
		busyTime += now.Sub(lastTick)

		expected := time.Duration(float64(cycles) / opts.TargetFreq * float64(time.Second))
		if expected > busyTime {
			time.Sleep(expected - busyTime)
		} else if busyTime-expected > opts.BehindThreshold {
			log.Printf("drive: emulation behind by %s, trying to catch up...", busyTime-expected)
		}

		lastTick = now
	}

	return nil
}

// drain empties any pending messages without blocking, applying Button
// messages to the PPU's latched button state. A Pause(true) message blocks
// on further receives until Pause(false) arrives, then advances lastTick to
// now so the paused interval is excluded from the throttle's busy-time
// accounting without discarding time already accumulated before the pause.
func drain(p *ppu.PPU, messages <-chan Message, lastTick *time.Time) error {
	if messages == nil {
		return nil
	}

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return ErrChannelClosed
			}
			if err := apply(p, msg, messages, lastTick); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func apply(p *ppu.PPU, msg Message, messages <-chan Message, lastTick *time.Time) error {
	switch msg.Kind {
	case MsgButton:
		p.SetButton(msg.Button, msg.Pressed)
	case MsgPause:
		if msg.Paused {
			for {
				next, ok := <-messages
				if !ok {
					return ErrChannelClosed
				}
				if next.Kind == MsgPause && !next.Paused {
					*lastTick = time.Now()
					return nil
				}
				if err := apply(p, next, messages, lastTick); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
