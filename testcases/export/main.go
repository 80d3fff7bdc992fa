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

// Command export writes the test cases, together with the texel values
// computed for them, to JSON.  The output can be compared against other
// implementations of the same geometry.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/glyphfield"
	"seehuhn.de/go/glyphfield/outline"
	"seehuhn.de/go/glyphfield/testcases"
)

func main() {
	out := flag.String("o", "testdata/testcases.json", "output file")
	flag.Parse()

	var res struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				panic(err)
			}
			res.TestCases = append(res.TestCases, jtc)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		panic(err)
	}
	f, err := os.Create(*out)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name     string        `json:"name"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Path     []jsonSegment `json:"path"`
	Matrix   []float64     `json:"matrix"`
	FillRule string        `json:"fill_rule"`

	// per-texel values, bottom row first
	Inside   []bool    `json:"inside"`
	Distance []float64 `json:"distance"`
	Winding  []int     `json:"winding"`
	Coverage []float32 `json:"coverage"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	m := tc.FontMatrix()
	jtc := jsonTestCase{
		Name:     category + "_" + tc.Name,
		Width:    tc.Width,
		Height:   tc.Height,
		Path:     pathToJSON(tc.Path),
		Matrix:   m[:],
		FillRule: tc.Rule.String(),
	}

	cfg := glyphfield.DefaultConfig()
	cfg.Width, cfg.Height = tc.Width, tc.Height
	if tc.Rule == testcases.EvenOdd {
		cfg.FillRule = glyphfield.OddEven
	}
	d, err := glyphfield.New(cfg, func(s outline.Sink) error {
		outline.AddPath(s, tc.Path, m)
		return nil
	})
	if err != nil {
		return jtc, err
	}

	for _, v := range d.DistanceValues().Data {
		jtc.Inside = append(jtc.Inside, v.Inside)
		jtc.Distance = append(jtc.Distance, v.Distance)
		jtc.Winding = append(jtc.Winding, v.Winding)
	}
	jtc.Coverage = d.Coverage(cfg.FillRule).Data
	return jtc, nil
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	coordIdx := 0
	for _, cmd := range p.Cmds {
		var seg jsonSegment
		n := 0
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd, n = "M", 1
		case path.CmdLineTo:
			seg.Cmd, n = "L", 1
		case path.CmdQuadTo:
			seg.Cmd, n = "Q", 2
		case path.CmdCubeTo:
			seg.Cmd, n = "C", 3
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		seg.Pts = make([][]float64, n)
		for i := range n {
			pt := p.Coords[coordIdx+i]
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		coordIdx += n
		segs = append(segs, seg)
	}
	return segs
}
