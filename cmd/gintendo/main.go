// Command gintendo is the playable frontend: it loads an iNES ROM,
// constructs the core, and drives it under ebiten for windowing,
// rendering and keyboard input. None of this is part of the emulation
// core itself (package console) — it is one possible consumer of it.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/ppu"
	"github.com/bdwalton/nescore/rom"
	"github.com/hajimehoshi/ebiten/v2"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

// keyMap translates ebiten key state into the core's Button* bitmask.
// https://www.nesdev.org/wiki/Standard_controller
var keyMap = []struct {
	key ebiten.Key
	bit uint8
}{
	{ebiten.KeyZ, console.ButtonA},
	{ebiten.KeyX, console.ButtonB},
	{ebiten.KeyShift, console.ButtonSelect},
	{ebiten.KeyEnter, console.ButtonStart},
	{ebiten.KeyUp, console.ButtonUp},
	{ebiten.KeyDown, console.ButtonDown},
	{ebiten.KeyLeft, console.ButtonLeft},
	{ebiten.KeyRight, console.ButtonRight},
}

// game adapts a *console.Bus to the ebiten.Game interface. The core runs
// on its own goroutine, pushing completed frames across a mutex-guarded
// buffer; Draw only ever reads the most recent one.
type game struct {
	bus *console.Bus

	mu    sync.Mutex
	frame []byte
}

func newGame(bus *console.Bus) *game {
	g := &game{bus: bus, frame: make([]byte, ppu.Width*ppu.Height*3)}
	return g
}

func (g *game) run(ctx context.Context) {
	g.bus.Run(func() bool {
		return ctx.Err() != nil
	}, func(frame []byte) {
		g.mu.Lock()
		copy(g.frame, frame)
		g.mu.Unlock()
	})
}

func (g *game) Update() error {
	var mask uint8
	for _, k := range keyMap {
		if ebiten.IsKeyPressed(k.key) {
			mask |= k.bit
		}
	}
	g.bus.SetController1(mask)
	return nil
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	defer g.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, ppu.Width, ppu.Height))
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			i := (y*ppu.Width + x) * 3
			img.Set(x, y, color.RGBA{g.frame[i], g.frame[i+1], g.frame[i+2], 0xFF})
		}
	}
	screen.DrawImage(ebiten.NewImageFromImage(img), nil)
}

func main() {
	flag.Parse()

	r, err := rom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := cartridge.Get(r)
	if err != nil {
		log.Fatalf("couldn't construct mapper: %v", err)
	}

	bus := console.New(m)
	g := newGame(bus)

	ctx, cancel := context.WithCancel(context.Background())
	go g.run(ctx)

	ebiten.SetWindowSize(ppu.Width*2, ppu.Height*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Print(err)
	}

	cancel()
	os.Exit(0)
}
