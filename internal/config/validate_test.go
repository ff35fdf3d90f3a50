package config

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() *Params {
	p := &Params{}
	p.Misc.WaveType = "coda"
	p.Interferometry.Operator = "correlation"
	p.applyDefaults()
	return p
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWaveType_Aliases(t *testing.T) {
	cases := map[string]WaveType{
		"cw":          Coda,
		"coda":        Coda,
		"Coda Wave":   Coda,
		"coda-wave":   Coda,
		"dw":          Direct,
		"direct":      Direct,
		"Direct Wave": Direct,
		"direct-wave": Direct,
	}
	for in, want := range cases {
		p := baseParams()
		p.Misc.WaveType = in
		got, err := p.WaveType()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestWaveType_Unknown(t *testing.T) {
	p := baseParams()
	p.Misc.WaveType = "bogus"
	_, err := p.WaveType()
	require.Error(t, err)

	var enumErr *UnknownEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "misc.wavetype", enumErr.Field)
	assert.Equal(t, "bogus", enumErr.Value)
	assert.Contains(t, err.Error(), "wavetype")
}

func TestOperator_Aliases(t *testing.T) {
	cases := map[string]Operator{
		"conv":        Convolution,
		"Convolution": Convolution,
		"corr":        Correlation,
		"correlation": Correlation,
	}
	for in, want := range cases {
		p := baseParams()
		p.Interferometry.Operator = in
		got, err := p.Operator()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestOperator_Unknown(t *testing.T) {
	p := baseParams()
	p.Interferometry.Operator = "deconvolution"
	_, err := p.Operator()

	var enumErr *UnknownEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "interferometry.operator", enumErr.Field)
}

func TestCheck_CodaConvolution(t *testing.T) {
	p := baseParams()
	p.Interferometry.Operator = "convolution"
	err := p.Check(discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "coda")
}

func TestCheck_CodaSPZWarnsOnly(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := baseParams()
	p.Interferometry.SPZ = true
	require.NoError(t, p.Check(logger))
	assert.Contains(t, buf.String(), "stationary phase zone")
}

func TestCheck_DirectWelch(t *testing.T) {
	p := baseParams()
	p.Misc.WaveType = "direct wave"
	p.Interferometry.Welch = true
	err := p.Check(discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Welch")
}

func TestCheck_FourLagsWithoutFlip(t *testing.T) {
	p := baseParams()
	p.Interferometry.Nlag = 4
	p.Interferometry.FlipNlag = false
	err := p.Check(discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnimplementedLagCombo)
}

func TestCheck_FourLagsWithFlip(t *testing.T) {
	p := baseParams()
	p.Interferometry.Nlag = 4
	p.Interferometry.FlipNlag = true
	require.NoError(t, p.Check(discard()))
}

func TestCheck_OK(t *testing.T) {
	p := baseParams()
	require.NoError(t, p.Check(discard()))

	p = baseParams()
	p.Misc.WaveType = "dw"
	p.Interferometry.Welch = false
	require.NoError(t, p.Check(discard()))
}
