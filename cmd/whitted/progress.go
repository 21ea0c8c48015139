package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"
)

const barWidth = 40

// progressBar animates render progress toward the rows finished so far.
type progressBar struct {
	out   io.Writer
	total int
	fps   int

	done atomic.Int64 // Rows finished, written by render workers

	// Spring-smoothed displayed fraction
	spring   harmonica.Spring
	pos, vel float64
}

func newProgressBar(out io.Writer, total, fps int) *progressBar {
	return &progressBar{
		out:   out,
		total: total,
		fps:   fps,
		// Critically damped so the bar never overshoots the real progress
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Report records progress. It is safe to call from several goroutines;
// counts that arrive late never move the bar backwards.
func (p *progressBar) Report(done, total int) {
	n := int64(done)
	for {
		cur := p.done.Load()
		if n <= cur || p.done.CompareAndSwap(cur, n) {
			return
		}
	}
}

// Fraction returns the real progress in [0, 1].
func (p *progressBar) Fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	return min(1, float64(p.done.Load())/float64(p.total))
}

// Step advances the spring by one frame.
func (p *progressBar) Step() {
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.Fraction())
	p.pos = max(0, min(1, p.pos))
}

// String renders the bar at its displayed position.
func (p *progressBar) String() string {
	filled := int(p.pos * barWidth)
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", barWidth-filled),
		int(p.Fraction()*100))
}

// Run redraws the bar every frame until ctx is cancelled, then draws the
// final state and ends the line.
func (p *progressBar) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.pos = p.Fraction()
			fmt.Fprintf(p.out, "\r%s\n", p)
			return
		case <-ticker.C:
			p.Step()
			fmt.Fprintf(p.out, "\r%s", p)
		}
	}
}
