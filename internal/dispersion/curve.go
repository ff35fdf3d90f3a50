// Package dispersion resolves the dispersion curve (period vs. phase
// velocity) used as the physical prior for a station pair, preferring a
// pair-specific curve over the global 1-D model.
package dispersion

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Curve is a dispersion curve: phase velocity as a function of period.
// Periods and Velocities have equal length and are monotonic in period by
// convention (not enforced).
type Curve struct {
	Periods    []float64
	Velocities []float64
}

// Len returns the number of samples on the curve.
func (c Curve) Len() int {
	return len(c.Periods)
}

// LoadCurve reads a two-column (period, phase velocity) whitespace-delimited
// text file. Blank lines and lines starting with '#' are skipped.
func LoadCurve(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, fmt.Errorf("open dispersion curve: %w", err)
	}
	defer f.Close()

	var c Curve
	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 2 {
			return Curve{}, fmt.Errorf("%s:%d: want 2 columns, got %d", path, lineNum, len(fields))
		}

		per, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Curve{}, fmt.Errorf("%s:%d: period: %w", path, lineNum, err)
		}
		vel, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Curve{}, fmt.Errorf("%s:%d: phase velocity: %w", path, lineNum, err)
		}

		c.Periods = append(c.Periods, per)
		c.Velocities = append(c.Velocities, vel)
	}
	if err := sc.Err(); err != nil {
		return Curve{}, fmt.Errorf("read dispersion curve %s: %w", path, err)
	}

	return c, nil
}
