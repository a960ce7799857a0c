package track

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	CellRoad    = '#'
	CellOffRoad = '.'
)

// LoadMask reads a road mask from a track file.
// Each line is one row; '#' marks road, '.' marks off-road.
func LoadMask(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open track file: %w", err)
	}
	defer file.Close()

	mask, err := ParseMask(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mask, nil
}

// ParseMask parses a road mask. Blank lines are skipped.
func ParseMask(r io.Reader) ([][]bool, error) {
	var mask [][]bool

	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row := make([]bool, 0, len(line))
		for pos, char := range line {
			switch char {
			case CellRoad:
				row = append(row, true)
			case CellOffRoad:
				row = append(row, false)
			default:
				return nil, fmt.Errorf("%w: invalid cell %q at line %d, column %d",
					ErrInvalidGrid, char, lineNo, pos+1)
			}
		}
		mask = append(mask, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading track file: %w", err)
	}
	if len(mask) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}

	return mask, nil
}
