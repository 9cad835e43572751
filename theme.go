package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

type Theme struct {
	Background      mgl.Vec4
	Divider         mgl.Vec4
	Beat            mgl.Vec4
	Bar             mgl.Vec4
	Cursor          mgl.Vec4
	NoteFill        mgl.Vec4
	NoteStroke      mgl.Vec4
	SelectionFill   mgl.Vec4
	SelectionStroke mgl.Vec4
	PianoGrid       mgl.Vec4
	PianoNoteFill   mgl.Vec4
	PianoNoteStroke mgl.Vec4
	KeyHeight       float32
}

func DefaultTheme() Theme {
	return Theme{
		Background:      mgl.Vec4{0, 0, 0, 1},
		Divider:         ColorVec(colornames.Dimgray),
		Beat:            ColorVec(colornames.Darkslategray),
		Bar:             ColorVec(colornames.Slategray),
		Cursor:          ColorVec(colornames.Red),
		NoteFill:        ColorVec(colornames.Steelblue),
		NoteStroke:      ColorVec(colornames.Lightsteelblue),
		SelectionFill:   mgl.Vec4{0.53, 0.81, 0.98, 0.2},
		SelectionStroke: ColorVec(colornames.Lightskyblue),
		PianoGrid:       mgl.Vec4{0.5, 0.5, 0.5, 1},
		PianoNoteFill:   mgl.Vec4{1, 1, 1, 1},
		PianoNoteStroke: mgl.Vec4{1, 0, 0, 1},
		KeyHeight:       30,
	}
}

func ColorVec(c color.RGBA) mgl.Vec4 {
	return mgl.Vec4{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

// ParseColor accepts an SVG color name, #rrggbb or #rrggbbaa.
func ParseColor(s string) (mgl.Vec4, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return ColorVec(c), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return mgl.Vec4{}, fmt.Errorf("invalid color: %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl.Vec4{}, fmt.Errorf("invalid color: %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return ColorVec(color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}

// Apply overrides the named colors of t.
func (t *Theme) Apply(colors map[string]string) error {
	slots := map[string]*mgl.Vec4{
		"background":        &t.Background,
		"divider":           &t.Divider,
		"beat":              &t.Beat,
		"bar":               &t.Bar,
		"cursor":            &t.Cursor,
		"note_fill":         &t.NoteFill,
		"note_stroke":       &t.NoteStroke,
		"selection_fill":    &t.SelectionFill,
		"selection_stroke":  &t.SelectionStroke,
		"piano_grid":        &t.PianoGrid,
		"piano_note_fill":   &t.PianoNoteFill,
		"piano_note_stroke": &t.PianoNoteStroke,
	}
	for name, value := range colors {
		slot, ok := slots[name]
		if !ok {
			return fmt.Errorf("unknown theme color: %s", name)
		}
		c, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("theme color %s: %w", name, err)
		}
		*slot = c
	}
	return nil
}
