package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
)

// codeColor is the fill of a terrain cell with the given code.
func codeColor(c terrain.Code) color.RGBA {
	switch c {
	case terrain.Obstacle:
		return color.RGBA{R: 255, A: 255}
	case 0:
		return color.RGBA{G: 255, A: 255}
	case 1:
		return color.RGBA{R: 255, G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 128, B: 128, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// phaseAlpha is the opacity a building is drawn with.
func phaseAlpha(p timeline.Phase) float64 {
	switch p {
	case timeline.ActivePhase:
		return 1.0
	case timeline.Planned:
		return 0.3
	default:
		return 0.05
	}
}

// scaleAlpha returns c with its alpha multiplied by f, premultiplied as
// ebiten expects.
func scaleAlpha(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
}

// parseInts reads exactly n comma or space separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := splitFields(s)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseFloats reads exactly n comma or space separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := splitFields(s)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func formatFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// parseColor reads "r,g,b,a" with each channel in 0..255.
func parseColor(s string) ([4]uint8, error) {
	var out [4]uint8
	vs, err := parseInts(s, 4)
	if err != nil {
		return out, fmt.Errorf("color: %w", err)
	}
	for i, v := range vs {
		if v < 0 || v > 255 {
			return out, fmt.Errorf("color: channel %d out of range", v)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

func formatColor(c [4]uint8) string {
	return fmt.Sprintf("%d,%d,%d,%d", c[0], c[1], c[2], c[3])
}

// parseCategoryInput reads a category typed into a form field, ignoring
// case and surrounding space.
func parseCategoryInput(s string) (terrain.Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range terrain.Categories {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return terrain.ParseCategory(s)
}
