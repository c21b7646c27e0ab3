// Package display holds the sinks the render loop draws into: a freetype
// canvas pushed to an SSD1306 panel, and an in-memory recorder.
package display

import "image"

// Sink accepts one frame at a time: Clear, any number of DrawText calls,
// then Present to push the result to the screen.
type Sink interface {
	Clear()
	DrawText(x, y int, text string)
	Present() error
}

// Flusher pushes a finished image to hardware. periph.io display drivers
// satisfy it.
type Flusher interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// FlusherFunc adapts a function to Flusher.
type FlusherFunc func(r image.Rectangle, src image.Image, sp image.Point) error

func (f FlusherFunc) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	return f(r, src, sp)
}

// Blank clears s and presents the empty buffer.
func Blank(s Sink) error {
	s.Clear()
	return s.Present()
}
