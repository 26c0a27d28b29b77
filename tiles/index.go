package tiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Ext is the only tile image extension recognised by Scan.
const Ext = ".png"

// Tile is one discovered tile file.
type Tile struct {
	Coord
	Path string
}

// Index groups the tiles of one layer directory by sublayer.
type Index struct {
	Dir   string
	bySub map[int][]Tile
	count int
}

// Scan lists the tile files in dir. A missing dir yields an empty index;
// the first malformed tile name aborts the scan.
func Scan(dir string) (*Index, error) {
	idx := &Index{Dir: dir, bySub: make(map[int][]Tile)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return nil, fmt.Errorf("tiles: read dir %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		c, err := ParseCoord(e.Name())
		if err != nil {
			return nil, err
		}
		idx.add(Tile{Coord: c, Path: filepath.Join(dir, e.Name())})
	}

	for id := range idx.bySub {
		slices.SortFunc(idx.bySub[id], compareTiles)
	}
	return idx, nil
}

func (idx *Index) add(t Tile) {
	idx.bySub[t.Sublayer] = append(idx.bySub[t.Sublayer], t)
	idx.count++
}

// compareTiles orders tiles in reading order; the path breaks ties so that
// duplicate coordinates resolve the same way on every filesystem.
func compareTiles(a, b Tile) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	if a.Col != b.Col {
		return a.Col - b.Col
	}
	return strings.Compare(a.Path, b.Path)
}

// Len is the number of tiles in the index.
func (idx *Index) Len() int {
	return idx.count
}

// Sublayers returns every sublayer id present, ascending.
func (idx *Index) Sublayers() []int {
	ids := make([]int, 0, len(idx.bySub))
	for id := range idx.bySub {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Visible returns the ascending sublayer ids for which hidden reports false.
func (idx *Index) Visible(hidden func(id int) bool) []int {
	ids := idx.Sublayers()
	if hidden == nil {
		return ids
	}
	return slices.DeleteFunc(ids, hidden)
}

// Tiles returns the tiles of one sublayer in reading order.
func (idx *Index) Tiles(id int) []Tile {
	return slices.Clone(idx.bySub[id])
}
