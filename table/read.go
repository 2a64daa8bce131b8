package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/minigwas"
)

// newRowReader auto-detects how r is delimited: by a single character, or by
// runs of whitespace.
func newRowReader(r io.Reader) minigwas.RowReader {
	return minigwas.NewRowReader(r, '#')
}

// readHeader maps each wanted column name to its position, failing with
// ErrSchema when any of them is absent.
func readHeader(cols []string, wanted ...string) (map[string]int, error) {
	positions := make(map[string]int, len(cols))
	for i, v := range cols {
		v = strings.TrimSpace(v)
		if _, exists := positions[v]; exists {
			return nil, fmt.Errorf("column %q appears more than once in the header: %w", v, minigwas.ErrDuplicateKey)
		}
		positions[v] = i
	}

	missing := make([]string, 0)
	for _, w := range wanted {
		if _, exists := positions[w]; !exists {
			missing = append(missing, w)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("expected header columns %v, but %v were not found (header: %v): %w", wanted, missing, cols, minigwas.ErrSchema)
	}

	return positions, nil
}
