// Package screen displays a bus.Framebuffer in its own window, running the
// display loop on a background goroutine with its own event loop so a
// crashed or closed window never takes the simulator down with it.
package screen

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"scat/bus"
)

const defaultScale = 8

// Window owns the ebiten game loop for one framebuffer. Construct with New
// and start the display with Show; Show blocks until the first frame has
// been drawn or the window fails to open.
type Window struct {
	fb    *bus.Framebuffer
	scale int

	ready   chan struct{}
	readyMu sync.Once

	closed chan struct{}
}

// New returns a Window bound to fb. scale is the integer pixel
// magnification; 0 selects the default.
func New(fb *bus.Framebuffer, scale int) *Window {
	if scale <= 0 {
		scale = defaultScale
	}
	return &Window{
		fb:     fb,
		scale:  scale,
		ready:  make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Show opens the window on a background goroutine and blocks until the
// first frame is drawn (or the window failed to start, in which case it
// returns an error rather than panicking the simulator).
func (w *Window) Show(title string) error {
	errCh := make(chan error, 1)

	go func() {
		ebiten.SetWindowSize(bus.FramebufferWidth*w.scale, bus.FramebufferHeight*w.scale)
		ebiten.SetWindowTitle(title)
		ebiten.SetWindowResizable(true)
		err := ebiten.RunGame(w)
		close(w.closed)
		if err != nil {
			errCh <- fmt.Errorf("cannot open display: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-w.ready:
		return nil
	}
}

// Closed reports whether the window's event loop has exited.
func (w *Window) Closed() bool {
	select {
	case <-w.closed:
		return true
	default:
		return false
	}
}

// Update implements ebiten.Game. The framebuffer is driven entirely by CPU
// writes, so there is nothing to advance per tick.
func (w *Window) Update() error {
	return nil
}

// Draw implements ebiten.Game: it copies the current framebuffer contents
// and paints it pixel-by-pixel at the configured scale.
func (w *Window) Draw(screen *ebiten.Image) {
	w.readyMu.Do(func() { close(w.ready) })

	pixels := w.fb.Snapshot()
	for y := 0; y < bus.FramebufferHeight; y++ {
		for x := 0; x < bus.FramebufferWidth; x++ {
			word := pixels[y*bus.FramebufferWidth+x]
			r, g, b := bus.PixelRGB(word)
			c := color.RGBA{R: r, G: g, B: b, A: 255}
			for dy := 0; dy < w.scale; dy++ {
				for dx := 0; dx < w.scale; dx++ {
					screen.Set(x*w.scale+dx, y*w.scale+dy, c)
				}
			}
		}
	}
}

// Layout implements ebiten.Game, locking the logical resolution to the
// framebuffer's native size scaled by the configured factor; ebiten itself
// handles aspect-preserving letterboxing on window resize.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return bus.FramebufferWidth * w.scale, bus.FramebufferHeight * w.scale
}
