package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrValidation reports a mutually exclusive or required parameter
	// combination. Configuration errors are fatal to the run.
	ErrValidation = errors.New("inconsistent parameters")

	// ErrUnimplementedLagCombo reports a lag layout the processing stages
	// do not support.
	ErrUnimplementedLagCombo = errors.New("unimplemented lag combination")
)

// UnknownEnumError reports a parameter whose value is outside its closed set.
type UnknownEnumError struct {
	Field string
	Value string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("unknown value %q for %s", e.Value, e.Field)
}

// WaveType selects which part of the wavefield the run correlates.
type WaveType int

const (
	Coda WaveType = iota
	Direct
)

func (w WaveType) String() string {
	if w == Coda {
		return "coda"
	}
	return "direct"
}

// Operator selects the interferometry operator.
type Operator int

const (
	Correlation Operator = iota
	Convolution
)

func (o Operator) String() string {
	if o == Convolution {
		return "convolution"
	}
	return "correlation"
}

// WaveType normalizes the configured wave-type string. Accepted spellings
// follow the historical parameter files: cw/coda/coda wave/coda-wave and
// dw/direct/direct wave/direct-wave, case-insensitive.
func (p *Params) WaveType() (WaveType, error) {
	switch strings.ToLower(strings.TrimSpace(p.Misc.WaveType)) {
	case "cw", "coda", "coda wave", "coda-wave":
		return Coda, nil
	case "dw", "direct", "direct wave", "direct-wave":
		return Direct, nil
	default:
		return 0, &UnknownEnumError{Field: "misc.wavetype", Value: p.Misc.WaveType}
	}
}

// Operator normalizes the configured operator string (conv/convolution or
// corr/correlation, case-insensitive).
func (p *Params) Operator() (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(p.Interferometry.Operator)) {
	case "conv", "convolution":
		return Convolution, nil
	case "corr", "correlation":
		return Correlation, nil
	default:
		return 0, &UnknownEnumError{Field: "interferometry.operator", Value: p.Interferometry.Operator}
	}
}

// Check ensures the parameters are consistent with each other. It is run
// once at startup, before the catalog or any resolver is built. The coda +
// stationary-phase-zone combination is unusual but valid; it is logged as a
// warning rather than rejected.
func (p *Params) Check(logger *slog.Logger) error {
	wave, err := p.WaveType()
	if err != nil {
		return err
	}
	op, err := p.Operator()
	if err != nil {
		return err
	}

	switch wave {
	case Coda:
		if op == Convolution {
			return fmt.Errorf("%w: no convolution of coda", ErrValidation)
		}
		if p.Interferometry.SPZ {
			logger.Warn("using stationary phase zone for coda")
		}
	case Direct:
		if p.Interferometry.Welch {
			return fmt.Errorf("%w: Welch's method cannot be used for direct-wave", ErrValidation)
		}
	}

	if p.Interferometry.Nlag == 4 && !p.Interferometry.FlipNlag {
		return fmt.Errorf("%w: 4 lags require the symmetric component (flip_nlag)", ErrUnimplementedLagCombo)
	}

	return nil
}
