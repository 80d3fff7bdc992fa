// seehuhn.de/go/glyphfield - outline geometry for glyph textures
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command genpdf draws the test cases for visual inspection.  Every page
// shows the outline as seen by glyphfield, the texel grid, the centers of
// texels classified as inside, and the triangulation of the outline
// vertices.  With -png the PDFs are rendered to PNGs using Ghostscript.
package main

import (
	"flag"
	"fmt"
	"image"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/glyphfield"
	"seehuhn.de/go/glyphfield/outline"
	"seehuhn.de/go/glyphfield/testcases"
	"seehuhn.de/go/glyphfield/triangulate"
)

// size of a texel in PDF points
const texelPoints = 8

func main() {
	outDir := flag.String("d", "debug", "output directory")
	withPNG := flag.Bool("png", false, "render PNGs using Ghostscript")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			if *withPNG {
				pngPath := filepath.Join(*outDir, name+".png")
				if err := renderPNG(pdfPath, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	cfg := glyphfield.DefaultConfig()
	cfg.Width, cfg.Height = tc.Width, tc.Height
	if tc.Rule == testcases.EvenOdd {
		cfg.FillRule = glyphfield.OddEven
	}
	d, err := glyphfield.New(cfg, func(s outline.Sink) error {
		outline.AddPath(s, tc.Path, tc.FontMatrix())
		return nil
	})
	if err != nil {
		return err
	}
	o := d.Outline()

	conv := d.Converter()
	span := float64(conv.TexelSpan())
	origin := conv.TexelBottomLeft(image.Point{})
	toTexel := func(x, y float64) (float64, float64) {
		return (x - float64(origin.X)) / span, (y - float64(origin.Y)) / span
	}

	w, h := float64(tc.Width), float64(tc.Height)
	paper := &pdf.Rectangle{
		URx: w * texelPoints,
		URy: h * texelPoints,
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Row 0 of the texel grid is at the bottom, like the PDF y-axis.
	page.Transform(matrix.Matrix{texelPoints, 0, 0, texelPoints, 0, 0})

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// the outline, in the converted coordinates
	page.SetFillColor(color.DeviceGray(0.8))
	for c := range o.NumContours() {
		curves := o.Curves(c)
		page.MoveTo(toTexel(curves[0].Evaluate(0).X, curves[0].Evaluate(0).Y))
		for k := range curves {
			seg := curves[k].Segment()
			var pts []float64
			for _, p := range seg {
				x, y := toTexel(p.X, p.Y)
				pts = append(pts, x, y)
			}
			switch len(seg) {
			case 2:
				page.LineTo(pts[2], pts[3])
			case 3:
				// PDF has no quadratic curves
				c1x, c1y := pts[0]+2*(pts[2]-pts[0])/3, pts[1]+2*(pts[3]-pts[1])/3
				c2x, c2y := pts[4]+2*(pts[2]-pts[4])/3, pts[5]+2*(pts[3]-pts[5])/3
				page.CurveTo(c1x, c1y, c2x, c2y, pts[4], pts[5])
			case 4:
				page.CurveTo(pts[2], pts[3], pts[4], pts[5], pts[6], pts[7])
			}
		}
		page.ClosePath()
	}
	if o.NumContours() > 0 {
		if cfg.FillRule == glyphfield.OddEven {
			page.FillEvenOdd()
		} else {
			page.Fill()
		}
	}

	// texel grid
	page.SetStrokeColor(color.DeviceGray(0.6))
	page.SetLineWidth(0.02)
	for x := 0; x <= tc.Width; x++ {
		page.MoveTo(float64(x), 0)
		page.LineTo(float64(x), h)
	}
	for y := 0; y <= tc.Height; y++ {
		page.MoveTo(0, float64(y))
		page.LineTo(w, float64(y))
	}
	page.Stroke()

	// triangulation of the outline vertices
	tri := triangulate.New()
	var vertices []image.Point
	for c := range o.NumContours() {
		curves := o.Curves(c)
		loop := make([]int, len(curves))
		for k := range curves {
			loop[k] = len(vertices)
			vertices = append(vertices, curves[k].Points()[0])
		}
		tri.AddOutline(loop, func(i int) image.Point { return vertices[i] })
	}
	tris := tri.WindingRuleTriangulation()
	page.SetStrokeColor(color.DeviceGray(0.4))
	page.SetLineWidth(0.03)
	for _, t := range tris {
		for i := range 3 {
			p, q := vertices[t[i]], vertices[t[(i+1)%3]]
			page.MoveTo(toTexel(float64(p.X), float64(p.Y)))
			page.LineTo(toTexel(float64(q.X), float64(q.Y)))
		}
	}
	if len(tris) > 0 {
		page.Stroke()
	}

	// centers of inside texels
	dist := d.DistanceValues()
	inside := 0
	page.SetFillColor(color.DeviceGray(0))
	for y := range tc.Height {
		for x := range tc.Width {
			if dist.At(x, y).Inside {
				page.Rectangle(float64(x)+0.4, float64(y)+0.4, 0.2, 0.2)
				inside++
			}
		}
	}
	if inside > 0 {
		page.Fill()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -r72: one pixel per point
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
