package sim

import (
	"fmt"
	"io"
	"math"

	"turtlebot/robot"
)

// Segment is one pen-down stroke in mm
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Plotter collects the strokes drawn by a turtle
type Plotter struct {
	last     robot.Pose
	segments []Segment
}

// NewPlotter starts tracking from the turtle's current pose
func NewPlotter(t *robot.Turtle) *Plotter {
	return &Plotter{last: t.Pose()}
}

// Record notes the turtle's pose after a command, adding a stroke when the
// pen was down and the position changed
func (p *Plotter) Record(t *robot.Turtle) {
	pose := t.Pose()
	moved := pose.X != p.last.X || pose.Y != p.last.Y
	if moved && t.PenIsDown() {
		p.segments = append(p.segments, Segment{p.last.X, p.last.Y, pose.X, pose.Y})
	}
	p.last = pose
}

// Segments returns the recorded strokes
func (p *Plotter) Segments() []Segment {
	return p.segments
}

// WriteSVG renders the strokes with a 10 mm margin. The Y axis is flipped so
// that counter-clockwise turns look counter-clockwise.
func (p *Plotter) WriteSVG(w io.Writer) error {
	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	for i, s := range p.segments {
		if i == 0 {
			minX, maxX = math.Min(s.X1, s.X2), math.Max(s.X1, s.X2)
			minY, maxY = math.Min(s.Y1, s.Y2), math.Max(s.Y1, s.Y2)
			continue
		}
		minX = math.Min(minX, math.Min(s.X1, s.X2))
		maxX = math.Max(maxX, math.Max(s.X1, s.X2))
		minY = math.Min(minY, math.Min(s.Y1, s.Y2))
		maxY = math.Max(maxY, math.Max(s.Y1, s.Y2))
	}
	const margin = 10.0
	width := maxX - minX + 2*margin
	height := maxY - minY + 2*margin

	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%.1fmm" height="%.1fmm" viewBox="0 0 %.1f %.1f">`+"\n",
		width, height, width, height); err != nil {
		return err
	}
	for _, s := range p.segments {
		x1, y1 := s.X1-minX+margin, maxY-s.Y1+margin
		x2, y2 := s.X2-minX+margin, maxY-s.Y2+margin
		if _, err := fmt.Fprintf(w, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="0.5"/>`+"\n",
			x1, y1, x2, y2); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}
