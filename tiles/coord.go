package tiles

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Coord is the placement encoded in a tile filename of the form
// sublayer_row_col.png.
type Coord struct {
	Sublayer int
	Row      int
	Col      int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d_%d_%d", c.Sublayer, c.Row, c.Col)
}

// FileName is the name a tile with this coordinate is exported under.
func (c Coord) FileName() string {
	return c.String() + Ext
}

// MalformedNameError reports a tile filename whose stem is not three
// integers separated by underscores.
type MalformedNameError struct {
	Name   string
	Reason string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("tiles: malformed tile name %q: %s", e.Name, e.Reason)
}

// ParseCoord parses the stem of name (a bare filename or a path). Negative
// fields are accepted; such tiles are clipped when composed.
func ParseCoord(name string) (Coord, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(stem, "_")
	if len(parts) != 3 {
		return Coord{}, &MalformedNameError{
			Name:   base,
			Reason: fmt.Sprintf("expected 3 underscore-separated fields, got %d", len(parts)),
		}
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Coord{}, &MalformedNameError{Name: base, Reason: fmt.Sprintf("field %d (%q) is not an integer", i, p)}
		}
		vals[i] = v
	}

	return Coord{Sublayer: vals[0], Row: vals[1], Col: vals[2]}, nil
}
