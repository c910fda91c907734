//go:build !headless
// +build !headless

package display

import (
	"testing"
	"time"

	"nesppu/internal/drive"
	"nesppu/internal/input"
	"nesppu/internal/ppu"
)

func TestGameLayoutTracksOutsideSize(t *testing.T) {
	g := &game{windowWidth: 512, windowHeight: 480}

	w, h := g.Layout(800, 600)

	if w != 800 || h != 600 {
		t.Fatalf("Layout() = (%d,%d), want (800,600)", w, h)
	}
	if g.windowWidth != 800 || g.windowHeight != 600 {
		t.Fatalf("game did not record new window size: (%d,%d)", g.windowWidth, g.windowHeight)
	}
}

func TestEbitenKeyMapCoversEveryInputKey(t *testing.T) {
	seen := make(map[input.Key]bool)
	for _, key := range ebitenKeyMap {
		seen[key] = true
	}

	all := []input.Key{
		input.KeyLeft, input.KeyRight, input.KeyUp, input.KeyDown,
		input.KeyA, input.KeyW, input.KeyS, input.KeyD,
		input.KeyX, input.KeyZ, input.KeyEnter, input.KeyShift,
	}
	for _, key := range all {
		if !seen[key] {
			t.Errorf("ebitenKeyMap has no entry mapping to input.%v", key)
		}
	}
}

func TestGameSendDropsWhenChannelFull(t *testing.T) {
	messages := make(chan drive.Message) // unbuffered, nobody receiving
	g := &game{messages: messages}

	done := make(chan struct{})
	go func() {
		g.send(drive.ButtonMessage(ppu.ButtonA, true))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("send blocked instead of dropping the message")
	}
}
