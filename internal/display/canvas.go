package display

import (
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Dicklesworthstone/oledstat/internal/model"
)

// LoadFont parses the TTF at path. When path is empty or unreadable it falls
// back to the embedded Go Regular face and returns the load error alongside
// so the caller can log it.
func LoadFont(path string) (*truetype.Font, error) {
	var loadErr error
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			f, perr := truetype.Parse(data)
			if perr == nil {
				return f, nil
			}
			err = perr
		}
		loadErr = errors.Wrapf(err, "load font %s", path)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded font")
	}
	return f, loadErr
}

// Canvas is a 1-bit style frame buffer (stored as image.Gray) that
// rasterizes text with freetype and hands finished frames to a Flusher.
// A nil Flusher keeps frames in memory only.
type Canvas struct {
	img     *image.Gray
	ctx     *freetype.Context
	ascent  int
	flusher Flusher
	frame   model.Frame
}

// NewCanvas builds a w x h canvas drawing f at sizePx pixels.
func NewCanvas(w, h int, f *truetype.Font, sizePx int, flusher Flusher) *Canvas {
	img := image.NewGray(image.Rect(0, 0, w, h))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(float64(sizePx))
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)

	face := truetype.NewFace(f, &truetype.Options{Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull})
	ascent := face.Metrics().Ascent.Ceil()
	_ = face.Close()

	return &Canvas{img: img, ctx: ctx, ascent: ascent, flusher: flusher}
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Black, image.Point{}, draw.Src)
	c.frame = model.Frame{}
}

// DrawText places text with its top edge at y, like a cursor-based text
// API would; the baseline sits one ascent lower.
func (c *Canvas) DrawText(x, y int, text string) {
	c.frame.Lines = append(c.frame.Lines, model.Line{Y: y, Text: text})
	// Clipped glyphs are not an error on a 32px panel.
	_, _ = c.ctx.DrawString(text, freetype.Pt(x, y+c.ascent))
}

func (c *Canvas) Present() error {
	if c.flusher == nil {
		return nil
	}
	if err := c.flusher.Draw(c.img.Bounds(), c.img, image.Point{}); err != nil {
		return errors.Wrap(err, "flush frame")
	}
	return nil
}

// Image returns the current buffer. It is overwritten by the next frame.
func (c *Canvas) Image() *image.Gray { return c.img }

// Frame returns the text lines drawn since the last Clear.
func (c *Canvas) Frame() model.Frame {
	lines := make([]model.Line, len(c.frame.Lines))
	copy(lines, c.frame.Lines)
	return model.Frame{Lines: lines}
}

// Lit counts pixels at or above mid grey, i.e. those a 1-bit panel turns on.
func (c *Canvas) Lit() int {
	n := 0
	for _, p := range c.img.Pix {
		if p >= 0x80 {
			n++
		}
	}
	return n
}
