package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind reports an artifact kind outside the closed enumeration.
var ErrUnknownKind = errors.New("unknown kind of file")

// Kind names the type of artifact a path is requested for.
type Kind int

const (
	// KindI2Path is the per-run meta file listing all I2 paths.
	KindI2Path Kind = iota
	// KindSourceStation is the per-run meta file of common source stations
	// for receiver pairs.
	KindSourceStation
	// KindI2 is a raw two-station correlation.
	KindI2
	// KindI2LagRaw is the positive/negative (or symmetric) lag split of an I2.
	KindI2LagRaw
	// KindI2LagProc is a post-processed two-station lag file.
	KindI2LagProc
	// KindC3 is a source-specific three-station correlation.
	KindC3
	// KindI3 is a stacked three-station interferogram.
	KindI3
	// KindI3Rand is a randomized-stack three-station interferogram.
	KindI3Rand
)

var kindNames = map[Kind]string{
	KindI2Path:        "I2_PATH",
	KindSourceStation: "SOURCE-STATION",
	KindI2:            "I2",
	KindI2LagRaw:      "I2_LAG_RAW",
	KindI2LagProc:     "I2_LAG_PROC",
	KindC3:            "C3",
	KindI3:            "I3",
	KindI3Rand:        "I3_RAND",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the historical kind spellings onto the enumeration,
// case-insensitively. "SOURCE" is accepted as an alias of "SOURCE-STATION".
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "I2_PATH":
		return KindI2Path, nil
	case "SOURCE", "SOURCE-STATION":
		return KindSourceStation, nil
	case "I2":
		return KindI2, nil
	case "I2_LAG_RAW":
		return KindI2LagRaw, nil
	case "I2_LAG_PROC":
		return KindI2LagProc, nil
	case "C3":
		return KindC3, nil
	case "I3":
		return KindI3, nil
	case "I3_RAND":
		return KindI3Rand, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
