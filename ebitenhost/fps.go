package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsCounter caches the FPS/TPS readout and refreshes it every ~0.5 seconds.
type fpsCounter struct {
	elapsed float64
	text    string
}

func (c *fpsCounter) update(dt float64) {
	c.elapsed += dt
	if c.elapsed < 0.5 && c.text != "" {
		return
	}
	c.elapsed = 0
	c.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}
