// Package catalog builds the in-memory station catalog for a project: the
// canonically ordered station list, per-station coordinates and network
// codes, and the receiver/source role assignments.
//
// The catalog is constructed once at startup from the files named in the
// parameter file and is immutable afterwards, so resolver components may
// read it concurrently.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
)

// Station is a seismic sensor site: unique name, network code, coordinates.
type Station struct {
	Name    string
	Network string
	Lon     float64
	Lat     float64
}

// Catalog holds the parsed station inventory and role assignments.
//
// Names preserves station-list file order, including repeated occurrences of
// a duplicated id; ordering lookups use the first occurrence while the
// Station record keeps the last line's coordinates. This mirrors the
// historical behavior of the pipeline (override files relied on it) and is
// kept as-is rather than corrected.
type Catalog struct {
	byName map[string]Station
	index  map[string]int // name -> first-occurrence position in Names

	Names     []string
	Receivers []string
	Sources   []string

	// GroupOne/GroupTwo partition Receivers when the receiver file carries a
	// group column; both are nil otherwise.
	GroupOne []string
	GroupTwo []string
}

// Load reads the station-list and role files named in the parameters and
// builds the catalog. Every receiver and source id must appear in the
// station list.
func Load(p *config.Params) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]Station),
		index:  make(map[string]int),
	}

	if err := c.readStationList(filepath.Join(p.Dir.Project, p.Fstation.All.Name), p.Fstation.All); err != nil {
		return nil, err
	}

	recFile := filepath.Join(p.Dir.Project, p.Fstation.Receiver.Name)
	receivers, labels, err := readRoleFile(recFile, p.Fstation.Receiver.Group)
	if err != nil {
		return nil, err
	}
	c.Receivers = receivers

	if p.Fstation.Receiver.Group {
		c.GroupOne, c.GroupTwo, err = PartitionByGroup(receivers, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", recFile, err)
		}
	}

	srcFile := filepath.Join(p.Dir.Project, p.Fstation.Source)
	sources, _, err := readRoleFile(srcFile, false)
	if err != nil {
		return nil, err
	}
	c.Sources = sources

	for _, role := range [][]string{c.Receivers, c.Sources} {
		for _, name := range role {
			if !c.Has(name) {
				return nil, fmt.Errorf("%w: %s", ErrStationNotFound, name)
			}
		}
	}

	return c, nil
}

// readStationList parses one whitespace-delimited record per line, with the
// column layout taken from the parameters.
func (c *Catalog) readStationList(path string, cols config.StationListParams) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open station list: %w", err)
	}
	defer f.Close()

	maxCol := cols.ColNet
	for _, col := range []int{cols.ColSta, cols.ColLon, cols.ColLat} {
		if col > maxCol {
			maxCol = col
		}
	}

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) <= maxCol {
			return fmt.Errorf("%s:%d: want %d columns, got %d", path, lineNum, maxCol+1, len(fields))
		}

		lon, err := strconv.ParseFloat(fields[cols.ColLon], 64)
		if err != nil {
			return fmt.Errorf("%s:%d: longitude: %w", path, lineNum, err)
		}
		lat, err := strconv.ParseFloat(fields[cols.ColLat], 64)
		if err != nil {
			return fmt.Errorf("%s:%d: latitude: %w", path, lineNum, err)
		}

		name := fields[cols.ColSta]
		c.byName[name] = Station{
			Name:    name,
			Network: fields[cols.ColNet],
			Lon:     lon,
			Lat:     lat,
		}
		if _, seen := c.index[name]; !seen {
			c.index[name] = len(c.Names)
		}
		c.Names = append(c.Names, name)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read station list %s: %w", path, err)
	}
	if len(c.Names) == 0 {
		return fmt.Errorf("station list %s is empty", path)
	}

	return nil
}

// readRoleFile reads station ids from the first column and, when withGroup
// is set, group labels from the second.
func readRoleFile(path string, withGroup bool) (names, labels []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open role file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		names = append(names, fields[0])
		if withGroup {
			if len(fields) < 2 {
				return nil, nil, fmt.Errorf("%s:%d: missing group label", path, lineNum)
			}
			labels = append(labels, fields[1])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read role file %s: %w", path, err)
	}

	return names, labels, nil
}

// Station returns the record for a station name.
func (c *Catalog) Station(name string) (Station, bool) {
	st, ok := c.byName[name]
	return st, ok
}

// Has reports whether the station appears in the canonical list.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of station-list records, duplicates included.
func (c *Catalog) Len() int {
	return len(c.Names)
}

// Grouped reports whether the receivers carry a two-group partition.
func (c *Catalog) Grouped() bool {
	return c.GroupOne != nil
}

// SortPair returns the pair in canonical (src, rec) order, comparing the
// stations' first-occurrence positions in the canonical list.
func (c *Catalog) SortPair(st1, st2 string) (src, rec string, err error) {
	id1, ok := c.index[st1]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrStationNotFound, st1)
	}
	id2, ok := c.index[st2]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrStationNotFound, st2)
	}

	if id1 <= id2 {
		return st1, st2, nil
	}
	return st2, st1, nil
}

// FromStations builds a catalog directly from station records, in the given
// order, with no role assignments. Intended for tooling and tests; Load is
// the production path.
func FromStations(stations []Station) *Catalog {
	c := &Catalog{
		byName: make(map[string]Station, len(stations)),
		index:  make(map[string]int, len(stations)),
	}
	for _, st := range stations {
		c.byName[st.Name] = st
		if _, seen := c.index[st.Name]; !seen {
			c.index[st.Name] = len(c.Names)
		}
		c.Names = append(c.Names, st.Name)
	}
	return c
}
