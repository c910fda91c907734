package drive

import (
	"errors"
	"testing"

	"nesppu/internal/cpu"
	"nesppu/internal/ppu"
)

func TestRunHeadlessForRunsExactCycleCount(t *testing.T) {
	stub := cpu.NewStub(nil)
	opts := DefaultOptions()
	opts.BatchSize = 10

	if err := RunHeadlessFor(stub, ppu.Horizontal, opts, 25); err != nil {
		t.Fatalf("RunHeadlessFor: %v", err)
	}
	if stub.Ticks() != 25 {
		t.Fatalf("Ticks() = %d, want 25", stub.Ticks())
	}
}

func TestRunHeadlessForSurfacesTickError(t *testing.T) {
	boom := errors.New("boom")
	stub := cpu.NewStub(nil)
	stub.OnTick(func(p *ppu.PPU) error { return boom })

	err := RunHeadlessFor(stub, ppu.Horizontal, DefaultOptions(), 5)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestRunWorkerAppliesButtonMessages(t *testing.T) {
	stub := cpu.NewStub(nil)
	p := ppu.New(ppu.Horizontal)
	messages := make(chan Message, 4)
	messages <- ButtonMessage(ppu.ButtonA, true)

	var seen bool
	stub.OnTick(func(pp *ppu.PPU) error {
		if pp.GetJoypadState().A {
			seen = true
		}
		return errors.New("stop after one tick")
	})

	_ = RunWorker(p, stub, messages, nil)
	close(messages)

	if !seen {
		t.Fatalf("expected button A to be latched before the CPU tick observed it")
	}
}

func TestRunWorkerReturnsErrChannelClosed(t *testing.T) {
	stub := cpu.NewStub(nil)
	p := ppu.New(ppu.Horizontal)
	messages := make(chan Message)
	close(messages)

	if err := RunWorker(p, stub, messages, nil); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("err = %v, want ErrChannelClosed", err)
	}
}

func TestSurfaceCopyAndSnapshot(t *testing.T) {
	var s Surface
	frame := make([]byte, ppu.Width*ppu.Height*4)
	frame[0] = 0x42
	s.Copy(frame)

	got := s.Snapshot()
	if got[0] != 0x42 {
		t.Fatalf("Snapshot()[0] = %#02x, want 0x42", got[0])
	}
}
