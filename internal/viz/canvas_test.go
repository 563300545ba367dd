package viz

import (
	"strings"
	"testing"

	"github.com/soundphys/tumbler/internal/drum"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)

	empty := c.String()
	if strings.ContainsFunc(empty, func(r rune) bool { return r != 0x2800 && r != '\n' }) {
		t.Error("fresh canvas should be blank braille")
	}

	c.Set(0, 0)
	if c.String() == empty {
		t.Error("Set(0,0) left the canvas blank")
	}

	// Out-of-range coordinates must be ignored, not panic.
	c.Set(-1, 2)
	c.Set(1000, 1000)

	c.Clear()
	if c.String() != empty {
		t.Error("Clear did not restore a blank canvas")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Line(0, 0, 39, 39)

	lit := 0
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("line drew nothing")
	}
}

func TestDrawDrumRendersScene(t *testing.T) {
	sim, err := drum.New(drum.DefaultDrumConfig())
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	c := NewCanvas(40, 20)
	DrawDrum(c, sim, "")

	lit := 0
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			lit++
		}
	}
	if lit < 40 {
		t.Errorf("expected a rendered drum to light many cells, got %d", lit)
	}

	// Flashing a surface must not panic and should add pixels.
	DrawDrum(c, sim, sim.Surfaces()[0].ID)
}
