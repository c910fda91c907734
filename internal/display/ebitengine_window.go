//go:build !headless
// +build !headless

package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nesppu/internal/drive"
	"nesppu/internal/input"
	"nesppu/internal/ppu"
)

// Window is an Ebitengine-backed display: it owns the game loop and
// translates key and focus events into drive.Message values sent to the
// pacing worker, while redrawing whatever drive.Surface currently holds.
type Window struct {
	cfg      Config
	game     *game
	messages chan<- drive.Message
}

// NewWindow configures Ebitengine and constructs a Window that redraws
// surface and sends Button/Pause messages on messages. Run blocks the
// calling goroutine; callers typically run the pacing worker (internal/drive.RunWorker)
// in its own goroutine first.
func NewWindow(cfg Config, messages chan<- drive.Message, surface *drive.Surface) *Window {
	width, height := cfg.windowSize()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.VSync)
	if cfg.FilterArea {
		ebiten.SetScreenFilterEnabled(true)
	} else {
		ebiten.SetScreenFilterEnabled(false)
	}

	g := &game{
		surface:      surface,
		messages:     messages,
		frameImage:   ebiten.NewImage(ppu.Width, ppu.Height),
		windowWidth:  width,
		windowHeight: height,
		wasFocused:   true,
	}

	return &Window{cfg: cfg, game: g, messages: messages}
}

// Run starts the Ebitengine game loop. It returns when the window closes.
func (w *Window) Run() error {
	return ebiten.RunGame(w.game)
}

// game implements ebiten.Game, redrawing the shared surface every frame
// and reporting key/focus transitions to the pacing channel.
type game struct {
	surface      *drive.Surface
	messages     chan<- drive.Message
	frameImage   *ebiten.Image
	windowWidth  int
	windowHeight int
	wasFocused   bool
}

// ebitenKeyMap is the subset of keys the teacher's Ebitengine backend
// recognizes, narrowed to the ones input.Lookup maps onto NES buttons.
var ebitenKeyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyX:          input.KeyX,
	ebiten.KeyZ:          input.KeyZ,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyShift:      input.KeyShift,
}

func (g *game) Update() error {
	for ebitenKey, key := range ebitenKeyMap {
		button, ok := input.Lookup(key)
		if !ok {
			continue
		}
		if inpututil.IsKeyJustPressed(ebitenKey) {
			g.send(drive.ButtonMessage(button, true))
		} else if inpututil.IsKeyJustReleased(ebitenKey) {
			g.send(drive.ButtonMessage(button, false))
		}
	}

	focused := ebiten.IsFocused()
	if focused != g.wasFocused {
		g.send(drive.PauseMessage(!focused))
		g.wasFocused = focused
	}

	return nil
}

func (g *game) send(msg drive.Message) {
	if g.messages == nil {
		return
	}
	select {
	case g.messages <- msg:
	default:
		// Pacing worker's channel is full; drop rather than block the
		// render loop. A bounded channel sized generously in cmd/ppudemo
		// makes this the rare case, not the common one.
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})

	if g.surface != nil {
		g.frameImage.WritePixels(g.surface.Snapshot())
	}

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(g.windowWidth) / float64(ppu.Width)
	scaleY := float64(g.windowHeight) / float64(ppu.Height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - float64(ppu.Width)*scale) / 2
	offsetY := (float64(g.windowHeight) - float64(ppu.Height)*scale) / 2
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)

	screen.DrawImage(g.frameImage, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}
