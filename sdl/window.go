package sdl

import (
	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/halolife/util"
)

// Largest side of the window in screen pixels
const maxWindowSide = 800

type Window struct {
	Width, Height int32
	window        *sdl.Window
	renderer      *sdl.Renderer
	points        []sdl.Point
}

// NewWindow opens a window with one logical pixel per cell
func NewWindow(width, height int32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	scale := int32(1)
	if width < maxWindowSide && height < maxWindowSide {
		scale = maxWindowSide / width
		if side := maxWindowSide / height; side < scale {
			scale = side
		}
	}

	window, err := sdl.CreateWindow("Game of Life", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width*scale, height*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, err
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}
	if err := renderer.SetLogicalSize(width, height); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, err
	}
	return &Window{
		Width:    width,
		Height:   height,
		window:   window,
		renderer: renderer,
	}, nil
}

// Draw clears the window and draws every alive cell in white
func (w *Window) Draw(alive []util.Cell) error {
	w.points = w.points[:0]
	for _, cell := range alive {
		w.points = append(w.points, sdl.Point{X: int32(cell.X), Y: int32(cell.Y)})
	}
	if err := w.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}
	if len(w.points) != 0 {
		if err := w.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
			return err
		}
		if err := w.renderer.DrawPoints(w.points); err != nil {
			return err
		}
	}
	w.renderer.Present()
	return nil
}

func (w *Window) Destroy() {
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}

// Wait blocks until the window is closed or q/escape is pressed
func (w *Window) Wait() {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && (e.Keysym.Sym == sdl.K_q || e.Keysym.Sym == sdl.K_ESCAPE) {
					return
				}
			}
		}
		sdl.Delay(16)
	}
}
