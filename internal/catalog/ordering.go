package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrStationNotFound reports a station id absent from the canonical list.
	ErrStationNotFound = errors.New("station not in list")

	// ErrGroupCount reports a receiver group column whose distinct labels do
	// not split the receivers into exactly two groups.
	ErrGroupCount = errors.New("number of receiver groups != 2")
)

// SortPair sorts two stations according to their order in list, returning
// (first, second). The first occurrence of a name decides its position. This
// is the canonical tie-break used everywhere a (source, receiver) pair is
// addressed: the same physical pair must map to the same path regardless of
// which station the caller passes first.
func SortPair(list []string, st1, st2 string) (string, string, error) {
	id1 := indexOf(list, st1)
	if id1 < 0 {
		return "", "", fmt.Errorf("%w: %s", ErrStationNotFound, st1)
	}
	id2 := indexOf(list, st2)
	if id2 < 0 {
		return "", "", fmt.Errorf("%w: %s", ErrStationNotFound, st2)
	}

	if id1 <= id2 {
		return st1, st2, nil
	}
	return st2, st1, nil
}

func indexOf(list []string, name string) int {
	for i, s := range list {
		if s == name {
			return i
		}
	}
	return -1
}

// PartitionByGroup splits stations into two groups by their labels,
// preserving relative order within each group. The label seen first becomes
// group one. Fails unless the labels take exactly two distinct values.
func PartitionByGroup(stations, labels []string) ([]string, []string, error) {
	if len(stations) != len(labels) {
		return nil, nil, fmt.Errorf("%d stations but %d group labels", len(stations), len(labels))
	}

	distinct := make([]string, 0, 2)
	for _, l := range labels {
		if indexOf(distinct, l) < 0 {
			distinct = append(distinct, l)
		}
	}
	if len(distinct) != 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrGroupCount, len(distinct))
	}

	var g0, g1 []string
	for k, st := range stations {
		if labels[k] == distinct[0] {
			g0 = append(g0, st)
		} else {
			g1 = append(g1, st)
		}
	}
	return g0, g1, nil
}
