// Package snapshot renders trees into BMP images for visual
// inspection of the subdivision structure.
package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/yggdrasil/octree"
	"golang.org/x/image/bmp"
)

var bodyColor = color.RGBA{G: 255, A: 255}

// Write renders an XY projection of the tree into a BMP image of the
// given pixel size. Every node's volume is drawn as a rectangle
// outline that dims with depth, and every resident body as a dot.
func Write(w io.Writer, tree *octree.Tree, width, height int) error {
	if tree == nil {
		return errors.New("no tree to render")
	}
	if width <= 0 || height <= 0 {
		return errors.New("the render size is empty").
			WithTag("width", width).
			WithTag("height", height)
	}

	volume := tree.Root().Volume()
	spanX := volume.X.End - volume.X.Start
	spanY := volume.Y.End - volume.Y.Start
	if spanX <= 0 || spanY <= 0 {
		return errors.New("the root volume is flat").
			WithTag("span_x", spanX).
			WithTag("span_y", spanY)
	}

	pixelX := func(x float64) int {
		return int((x - volume.X.Start) / spanX * float64(width-1))
	}
	pixelY := func(y float64) int {
		return int((y - volume.Y.Start) / spanY * float64(height-1))
	}

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	hline := func(x1, y, x2 int, c color.RGBA) {
		for ; x1 <= x2; x1++ {
			frame.Set(x1, y, c)
		}
	}
	vline := func(x, y1, y2 int, c color.RGBA) {
		for ; y1 <= y2; y1++ {
			frame.Set(x, y1, c)
		}
	}
	rect := func(x1, y1, x2, y2 int, c color.RGBA) {
		hline(x1, y1, x2, c)
		hline(x1, y2, x2, c)
		vline(x1, y1, y2, c)
		vline(x2, y1, y2, c)
	}

	tree.Walk(func(n *octree.Node, depth int) bool {
		shade := 220 - depth*20
		if shade < 60 {
			shade = 60
		}
		c := color.RGBA{R: uint8(shade), A: 255}

		v := n.Volume()
		rect(pixelX(v.X.Start), pixelY(v.Y.Start), pixelX(v.X.End), pixelY(v.Y.End), c)

		if b, ok := n.Body(); ok {
			x := pixelX(b.Location.X)
			y := pixelY(b.Location.Y)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					frame.Set(x+dx, y+dy, bodyColor)
				}
			}
		}
		return true
	})

	if err := bmp.Encode(w, frame); err != nil {
		return errors.New("encoding the snapshot failed").Wrap(err)
	}
	return nil
}

// WriteFile renders the tree into a BMP file at the given path.
func WriteFile(path string, tree *octree.Tree, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating the snapshot file failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	return Write(f, tree, width, height)
}
