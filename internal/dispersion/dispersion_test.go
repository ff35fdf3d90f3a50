package dispersion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	global = Curve{
		Periods:    []float64{10, 20, 30},
		Velocities: []float64{2.8, 3.1, 3.4},
	}
	curveX = Curve{
		Periods:    []float64{8, 16},
		Velocities: []float64{2.5, 2.9},
	}
	curveY = Curve{
		Periods:    []float64{12, 24},
		Velocities: []float64{2.6, 3.0},
	}
)

func TestResolve_NoTable(t *testing.T) {
	r := &Resolver{Global: global}
	assert.Equal(t, global, r.Resolve("NETA", "S1", "NETB", "S2"))

	r.Pairs = PairTable{}
	assert.Equal(t, global, r.Resolve("NETA", "S1", "NETB", "S2"))
}

func TestResolve_ForwardKey(t *testing.T) {
	r := &Resolver{
		Global: global,
		Pairs:  PairTable{"NETA_S1_NETB_S2": curveX},
	}
	assert.Equal(t, curveX, r.Resolve("NETA", "S1", "NETB", "S2"))
}

func TestResolve_ReverseKeyFallback(t *testing.T) {
	r := &Resolver{
		Global: global,
		Pairs:  PairTable{"NETA_S1_NETB_S2": curveX},
	}
	assert.Equal(t, curveX, r.Resolve("NETB", "S2", "NETA", "S1"))
}

func TestResolve_ForwardWinsOverReverse(t *testing.T) {
	r := &Resolver{
		Global: global,
		Pairs: PairTable{
			"NETA_S1_NETB_S2": curveX,
			"NETB_S2_NETA_S1": curveY,
		},
	}
	assert.Equal(t, curveX, r.Resolve("NETA", "S1", "NETB", "S2"))
	assert.Equal(t, curveY, r.Resolve("NETB", "S2", "NETA", "S1"))
}

func TestResolve_UnknownPairFallsBackToGlobal(t *testing.T) {
	r := &Resolver{
		Global: global,
		Pairs:  PairTable{"NETA_S1_NETB_S2": curveX},
	}
	assert.Equal(t, global, r.Resolve("NETC", "S9", "NETA", "S1"))
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, "II_AAK_KZ_MAKZ", PairKey("II", "AAK", "KZ", "MAKZ"))
}

func TestLoadCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pv_1d.txt")
	content := "# period  velocity\n10 2.8\n20  3.1\n\n30\t3.4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadCurve(path)
	require.NoError(t, err)
	assert.Equal(t, global, c)
	assert.Equal(t, 3, c.Len())
}

func TestLoadCurve_Missing(t *testing.T) {
	_, err := LoadCurve(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCurve_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pv_1d.txt")
	require.NoError(t, os.WriteFile(path, []byte("10 fast\n"), 0o600))

	_, err := LoadCurve(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pv_1d.txt:1")
}

func TestPairTable_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pv_2d.sqlite")
	in := PairTable{
		"NETA_S1_NETB_S2": curveX,
		"NETA_S1_NETC_S3": curveY,
	}
	require.NoError(t, SavePairTable(path, in))

	out, err := LoadPairTable(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadPairTable_ResolverIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pv_2d.sqlite")
	require.NoError(t, SavePairTable(path, PairTable{"II_AAK_IU_TLY": curveX}))

	table, err := LoadPairTable(path)
	require.NoError(t, err)

	r := &Resolver{Global: global, Pairs: table}
	assert.Equal(t, curveX, r.Resolve("IU", "TLY", "II", "AAK"))
	assert.Equal(t, global, r.Resolve("II", "AAK", "II", "BRVK"))
}

func TestLookup_Outcomes(t *testing.T) {
	r := &Resolver{
		Global: global,
		Pairs:  PairTable{"NETA_S1_NETB_S2": curveX},
	}

	_, outcome := r.Lookup("NETA", "S1", "NETB", "S2")
	assert.Equal(t, OutcomePair, outcome)

	_, outcome = r.Lookup("NETB", "S2", "NETA", "S1")
	assert.Equal(t, OutcomePairReversed, outcome)

	_, outcome = r.Lookup("NETC", "S9", "NETA", "S1")
	assert.Equal(t, OutcomeGlobal, outcome)

	empty := &Resolver{Global: global}
	_, outcome = empty.Lookup("NETA", "S1", "NETB", "S2")
	assert.Equal(t, OutcomeGlobal, outcome)
}

func TestLoadPairTable_Missing(t *testing.T) {
	_, err := LoadPairTable(filepath.Join(t.TempDir(), "absent.sqlite"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
