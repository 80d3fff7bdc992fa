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

package glyphfield

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Width, valid.Height = 8, 8
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}

	type testCase struct {
		field  string
		modify func(*Config)
	}
	cases := []testCase{
		{"Width", func(c *Config) { c.Width = 0 }},
		{"Height", func(c *Config) { c.Height = -1 }},
		{"Scale", func(c *Config) { c.Scale = 3 }},
		{"Scale", func(c *Config) { c.Scale = 0 }},
		{"TexelSize", func(c *Config) { c.TexelSize = 0 }},
		{"InternalOffset", func(c *Config) { c.InternalOffset = 2 }},
		{"InternalOffset", func(c *Config) { c.Scale, c.InternalOffset = 8, -4 }},
		{"MaxDistance", func(c *Config) { c.MaxDistance = 0 }},
		{"FillRule", func(c *Config) { c.FillRule = 7 }},
		{"CubicSplit", func(c *Config) { c.CubicSplit = 3 }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			cfg := valid
			tc.modify(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %v, want a ConfigError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("field %q, want %q", cfgErr.Field, tc.field)
			}
			if _, err := cfg.Converter(); err == nil {
				t.Error("converter accepted an invalid config")
			}
		})
	}
}
