package sdl

import "uk.ac.bris.cs/halolife/util"

// Run shows the alive cells of a width x height grid until the window is closed.
// It must be called from the main OS thread.
func Run(width, height int, alive []util.Cell) error {
	w, err := NewWindow(int32(width), int32(height))
	if err != nil {
		return err
	}
	defer w.Destroy()
	if err := w.Draw(alive); err != nil {
		return err
	}
	w.Wait()
	return nil
}
