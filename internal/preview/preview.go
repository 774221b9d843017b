package preview

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/ivlev/campath/internal/camera"
	"github.com/ivlev/campath/internal/system"
)

var (
	background = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	gridColor  = color.RGBA{R: 45, G: 45, B: 56, A: 255}
	pathColor  = color.RGBA{R: 225, G: 225, B: 235, A: 255}
	startColor = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	origColor  = color.RGBA{R: 235, G: 140, B: 50, A: 255}
)

// Render plots the camera positions of a path onto a square top-down map:
// world X grows to the right, world Z downward, the scene origin sits at
// the center. The plot is drawn at twice the requested size and downscaled
// for antialiasing.
func Render(path *camera.Path, size int) *image.RGBA {
	positions := make([]r3.Vector, len(path.C2Ws))
	extent := 1e-6
	for i, c2w := range path.C2Ws {
		p := camera.TransformPoints(c2w, [][3]float64{{0, 0, 0}})[0]
		positions[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
		extent = math.Max(extent, math.Max(math.Abs(p[0]), math.Abs(p[2])))
	}

	// the oversized scratch buffer comes from the shared pool; its stale
	// content is fully overwritten below
	big := 2 * size
	img := system.GetRGBA(image.Rect(0, 0, big, big))
	defer system.PutRGBA(img)
	for y := 0; y < big; y++ {
		for x := 0; x < big; x++ {
			img.SetRGBA(x, y, background)
		}
	}

	// world-to-pixel mapping with a 10% margin around the widest excursion
	scale := float64(big) / (2 * extent * 1.1)
	center := float64(big) / 2
	toPixel := func(v r3.Vector) (int, int) {
		return int(center + v.X*scale), int(center + v.Z*scale)
	}

	// axis cross through the origin
	for i := 0; i < big; i++ {
		img.SetRGBA(i, big/2, gridColor)
		img.SetRGBA(big/2, i, gridColor)
	}

	for i := 1; i < len(positions); i++ {
		x0, y0 := toPixel(positions[i-1])
		x1, y1 := toPixel(positions[i])
		drawLine(img, x0, y0, x1, y1, pathColor)
	}
	for i, p := range positions {
		x, y := toPixel(p)
		c := pathColor
		if i == 0 {
			c = startColor
		}
		drawDot(img, x, y, 3, c)
	}
	drawDot(img, big/2, big/2, 4, origColor)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// WritePNG encodes the image into a PNG file
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create preview %s", path)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(err, "encode preview")
	}
	return nil
}

func drawDot(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setClamped(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	steps := int(math.Hypot(float64(x1-x0), float64(y1-y0))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		setClamped(img, x, y, c)
	}
}

func setClamped(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
