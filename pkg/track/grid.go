package track

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidGrid        = errors.New("invalid track grid")
	ErrInvalidCheckpoints = errors.New("invalid checkpoints")
)

// Point is a location in grid space (columns, rows), not pixels
type Point struct {
	Col float64 `mapstructure:"col" json:"col"`
	Row float64 `mapstructure:"row" json:"row"`
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.Col-p.Col, o.Row-p.Row)
}

// Grid is the road/off-road mask of a track together with its ordered
// checkpoints. The last checkpoint is the finish line.
// A Grid is immutable once created.
type Grid struct {
	columns     int
	rows        int
	road        []bool // row-major
	checkpoints []Point
}

// NewGrid creates a grid from a row-major road mask (road[row][col]).
// Every row must have the same length, there must be at least two
// checkpoints, all inside the grid and no two consecutive ones (including
// the wrap from finish to the first) on the same spot.
func NewGrid(road [][]bool, checkpoints []Point) (*Grid, error) {
	if len(road) == 0 || len(road[0]) == 0 {
		return nil, fmt.Errorf("%w: empty road mask", ErrInvalidGrid)
	}
	g := &Grid{
		columns: len(road[0]),
		rows:    len(road),
	}
	g.road = make([]bool, 0, g.columns*g.rows)
	for row := range road {
		if len(road[row]) != g.columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrInvalidGrid, row, len(road[row]), g.columns)
		}
		g.road = append(g.road, road[row]...)
	}

	if len(checkpoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2, got %d",
			ErrInvalidCheckpoints, len(checkpoints))
	}
	for i, cp := range checkpoints {
		if !g.Contains(cp) {
			return nil, fmt.Errorf("%w: checkpoint %d (%.2f, %.2f) is outside the %dx%d grid",
				ErrInvalidCheckpoints, i, cp.Col, cp.Row, g.columns, g.rows)
		}
		prev := checkpoints[(i+len(checkpoints)-1)%len(checkpoints)]
		if prev.Distance(cp) == 0 {
			return nil, fmt.Errorf("%w: checkpoint %d repeats the previous one",
				ErrInvalidCheckpoints, i)
		}
	}
	g.checkpoints = append([]Point(nil), checkpoints...)

	return g, nil
}

func (g *Grid) Columns() int {
	return g.columns
}

func (g *Grid) Rows() int {
	return g.rows
}

// Contains reports whether p lies within [0, columns) x [0, rows)
func (g *Grid) Contains(p Point) bool {
	return p.Col >= 0 && p.Col < float64(g.columns) && p.Row >= 0 && p.Row < float64(g.rows)
}

// IsRoad reports whether the cell containing (col, row) is road.
// Locations outside the grid count as off-road.
func (g *Grid) IsRoad(col, row float64) bool {
	if !g.Contains(Point{Col: col, Row: row}) {
		return false
	}
	return g.road[int(row)*g.columns+int(col)]
}

// Clamp moves p into the grid bounds. The second and third results report
// whether the column or the row had to be corrected.
func (g *Grid) Clamp(p Point) (Point, bool, bool) {
	colClamped, rowClamped := false, false
	maxCol := math.Nextafter(float64(g.columns), 0)
	maxRow := math.Nextafter(float64(g.rows), 0)
	if p.Col < 0 {
		p.Col, colClamped = 0, true
	} else if p.Col > maxCol {
		p.Col, colClamped = maxCol, true
	}
	if p.Row < 0 {
		p.Row, rowClamped = 0, true
	} else if p.Row > maxRow {
		p.Row, rowClamped = maxRow, true
	}
	return p, colClamped, rowClamped
}

func (g *Grid) CheckpointCount() int {
	return len(g.checkpoints)
}

// Checkpoint returns the checkpoint at index i. An index outside
// [0, CheckpointCount) is a broken invariant and panics.
func (g *Grid) Checkpoint(i int) Point {
	if i < 0 || i >= len(g.checkpoints) {
		panic(fmt.Sprintf("track: checkpoint index %d out of range [0, %d)", i, len(g.checkpoints)))
	}
	return g.checkpoints[i]
}

// PreviousCheckpoint returns the checkpoint before i, wrapping from the
// first checkpoint to the finish line.
func (g *Grid) PreviousCheckpoint(i int) Point {
	if i <= 0 {
		return g.Checkpoint(len(g.checkpoints) - 1)
	}
	return g.Checkpoint(i - 1)
}

// IsFinalCheckpoint reports whether i is the finish line
func (g *Grid) IsFinalCheckpoint(i int) bool {
	return i == len(g.checkpoints)-1
}

// Checkpoints returns a copy of the ordered checkpoint list
func (g *Grid) Checkpoints() []Point {
	return append([]Point(nil), g.checkpoints...)
}
