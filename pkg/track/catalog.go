package track

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

var ErrUnknownTrack = errors.New("unknown track")

// Definition describes one track entry of the catalog
type Definition struct {
	ID          string  `mapstructure:"id"`
	Name        string  `mapstructure:"name"`
	GridFile    string  `mapstructure:"grid"`
	Laps        int     `mapstructure:"laps"`
	MinLaps     int     `mapstructure:"minLaps"`
	MaxLaps     int     `mapstructure:"maxLaps"`
	Start       []Point `mapstructure:"start"`
	Checkpoints []Point `mapstructure:"checkpoints"`
}

// Track is a loaded, ready to race track
type Track struct {
	ID      string
	Name    string
	Laps    int
	MinLaps int
	MaxLaps int
	Start   []Point
	Grid    *Grid
}

// HasLapRange reports whether the required lap count should be drawn at random
func (t *Track) HasLapRange() bool {
	return t.MinLaps > 0 && t.MaxLaps >= t.MinLaps
}

// Catalog is the data table of all known tracks
type Catalog struct {
	Tracks []Definition `mapstructure:"tracks"`

	dir string
}

// LoadCatalog reads a YAML catalog. Grid files are resolved relative to
// the directory of the catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read track catalog: %w", err)
	}

	var c Catalog
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode track catalog: %w", err)
	}
	c.dir = filepath.Dir(path)

	for i := range c.Tracks {
		if c.Tracks[i].ID == "" {
			return nil, fmt.Errorf("%w: track %d has no id", ErrUnknownTrack, i)
		}
		if c.Tracks[i].Laps < 1 && !(c.Tracks[i].MinLaps > 0 && c.Tracks[i].MaxLaps >= c.Tracks[i].MinLaps) {
			c.Tracks[i].Laps = 1
		}
	}

	return &c, nil
}

// IDs returns the track ids in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Tracks))
	for i := range c.Tracks {
		ids = append(ids, c.Tracks[i].ID)
	}
	return ids
}

// Index returns the catalog position of the track with the given id
func (c *Catalog) Index(id string) (int, error) {
	idx := slices.IndexFunc(c.Tracks, func(d Definition) bool { return d.ID == id })
	if idx == -1 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	return idx, nil
}

// Load builds the track at catalog position idx
func (c *Catalog) Load(idx int) (*Track, error) {
	if idx < 0 || idx >= len(c.Tracks) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownTrack, idx)
	}
	def := c.Tracks[idx]

	gridFile := def.GridFile
	if !filepath.IsAbs(gridFile) {
		gridFile = filepath.Join(c.dir, gridFile)
	}
	mask, err := LoadMask(gridFile)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(mask, def.Checkpoints)
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", def.ID, err)
	}
	for i, p := range def.Start {
		if !grid.Contains(p) {
			return nil, fmt.Errorf("track %q: %w: start %d (%.2f, %.2f) is outside the grid",
				def.ID, ErrInvalidGrid, i, p.Col, p.Row)
		}
	}

	return &Track{
		ID:      def.ID,
		Name:    def.Name,
		Laps:    def.Laps,
		MinLaps: def.MinLaps,
		MaxLaps: def.MaxLaps,
		Start:   append([]Point(nil), def.Start...),
		Grid:    grid,
	}, nil
}
