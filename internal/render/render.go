// Package render presents simulation frames on a terminal.
package render

import (
	"fmt"

	"github.com/tomz197/asteroids-wire/internal/draw"
	"github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/object"
)

// hudRows is the number of terminal rows reserved below the arena.
const hudRows = 1

const controls = "←/→ turn  ↑ thrust  space fire  q quit"

func hud(f object.Frame) string {
	return fmt.Sprintf("asteroids %d  bullets %d  │  %s", len(f.Asteroids), len(f.Bullets), controls)
}

// paint draws d onto a cleared c after fitting c to a width x height terminal.
func paint(c *draw.Canvas, d object.Drawable, width, height int) {
	c.Resize(width, height-hudRows)
	c.Clear()
	d.Draw(object.DrawContext{Canvas: c})
}

func newCanvas() *draw.Canvas {
	return draw.NewScaledCanvas(0, 0, config.ArenaWidth, config.ArenaHeight)
}
