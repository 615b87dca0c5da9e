package render

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce   sync.Once
	fontParsed *opentype.Font

	faceMu    sync.Mutex
	faceCache = make(map[int]font.Face)
)

// face returns a cached Go Regular face at the given pixel size.
func face(sizePx float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			// goregular.TTF is embedded and always parses; a failure
			// here is a build defect.
			panic(err)
		}
		fontParsed = f
	})

	key := int(sizePx)
	if key < 1 {
		key = 1
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[key]; ok {
		return f
	}
	f, err := opentype.NewFace(fontParsed, &opentype.FaceOptions{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	faceCache[key] = f
	return f
}

// drawLabel draws text centered at (cx, cy).
func drawLabel(img *image.RGBA, text string, cx, cy, sizePx float64, col color.RGBA) {
	if text == "" {
		return
	}
	f := face(sizePx)
	width := font.MeasureString(f, text)
	metrics := f.Metrics()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot: fixed.Point26_6{
			X: fixed.I(int(cx)) - width/2,
			Y: fixed.I(int(cy)) + (metrics.Ascent-metrics.Descent)/2,
		},
	}
	d.DrawString(text)
}
