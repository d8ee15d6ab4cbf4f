package render

import (
	"fmt"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/games/narrative"
)

const storyHeader = "megastructure.if — v0.1"

// drawStory draws the stats header, the shard row, the node text and its choices
func drawStory(c canvas, s *narrative.Session, width, height int, st Styles) {
	text := st.Section.Foreground(st.PageFG)
	dim := st.Section.Foreground(st.MutedFG)
	accent := st.Section.Foreground(st.AccentColor)

	c.text(0, 0, storyHeader, dim)
	stats := s.Stats()
	c.textMax(0, 1, fmt.Sprintf("depth: %d · signal: %d · entropy: %d", stats.Depth, stats.Signal, stats.Entropy),
		width, st.Section.Foreground(RgbStats))

	// shards spread evenly along one row; each pickup is worth one signal
	step := max(2, width/constants.ShardCount)
	for i := 0; i < constants.ShardCount; i++ {
		x := i*step + step/2
		if x >= width {
			break
		}
		c.set(x, 2, '◆', accent)
		c.region(x, 2, 1, 1, Target{Kind: TargetShard, Index: i})
	}

	node := s.Current()
	y := 4
	for _, para := range node.Text {
		for _, line := range wrap(para, width-2) {
			c.text(1, y, line, text)
			y++
		}
		y++
	}

	for i, ch := range node.Choices {
		if y >= height {
			break
		}
		label := fmt.Sprintf("[%d] %s", i+1, ch.Label)
		n := c.textMax(1, y, label, width-2, st.Section.Foreground(st.AccentColor).Bold(true))
		c.region(1, y, n, 1, Target{Kind: TargetChoice, Index: i})
		y++
	}

	if toast := s.Toast(); toast != "" {
		msg := " " + toast + " "
		c.text(max(0, width-len(msg)), 0, msg, st.Toast)
	}
}
