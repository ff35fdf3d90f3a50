package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
)

const stationList = `II   AAK   74.4942  42.6375
II   BRVK  70.2828  53.0581
II   KURK  78.6203  50.7154
KZ   MAKZ  82.9443  46.8080
IU   TLY  103.6438  51.6807
`

// writeProject lays out a project directory with the three station files and
// returns parameters pointing at it.
func writeProject(t *testing.T, stations, receivers, sources string, grouped bool) *config.Params {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "station.lst"), []byte(stations), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receiver.lst"), []byte(receivers), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.lst"), []byte(sources), 0o600))

	p := &config.Params{}
	p.Dir.Project = dir
	p.Fstation.All = config.StationListParams{Name: "station.lst", ColNet: 0, ColSta: 1, ColLon: 2, ColLat: 3}
	p.Fstation.Receiver = config.ReceiverParams{Name: "receiver.lst", Group: grouped}
	p.Fstation.Source = "source.lst"
	return p
}

func TestLoad(t *testing.T) {
	p := writeProject(t, stationList, "AAK 1\nBRVK 2\nKURK 1\n", "MAKZ\nTLY\n", true)

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAK", "BRVK", "KURK", "MAKZ", "TLY"}, c.Names)
	assert.Equal(t, []string{"AAK", "BRVK", "KURK"}, c.Receivers)
	assert.Equal(t, []string{"MAKZ", "TLY"}, c.Sources)
	assert.True(t, c.Grouped())
	assert.Equal(t, []string{"AAK", "KURK"}, c.GroupOne)
	assert.Equal(t, []string{"BRVK"}, c.GroupTwo)

	st, ok := c.Station("MAKZ")
	require.True(t, ok)
	assert.Equal(t, "KZ", st.Network)
	assert.InDelta(t, 82.9443, st.Lon, 1e-9)
	assert.InDelta(t, 46.8080, st.Lat, 1e-9)
}

func TestLoad_Ungrouped(t *testing.T) {
	p := writeProject(t, stationList, "AAK\nBRVK\n", "TLY\n", false)

	c, err := Load(p)
	require.NoError(t, err)
	assert.False(t, c.Grouped())
	assert.Nil(t, c.GroupOne)
	assert.Nil(t, c.GroupTwo)
}

func TestLoad_Idempotent(t *testing.T) {
	p := writeProject(t, stationList, "AAK 1\nBRVK 2\n", "TLY\n", true)

	c1, err := Load(p)
	require.NoError(t, err)
	c2, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, c1.Names, c2.Names)
	assert.Equal(t, c1.GroupOne, c2.GroupOne)
	assert.Equal(t, c1.GroupTwo, c2.GroupTwo)
}

// A repeated station id keeps its first position for ordering but the last
// line's coordinates. Historical behavior, relied on by override files.
func TestLoad_DuplicateStationLastWins(t *testing.T) {
	dup := stationList + "II   AAK   75.0000  43.0000\n"
	p := writeProject(t, dup, "AAK\n", "TLY\n", false)

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	st, _ := c.Station("AAK")
	assert.InDelta(t, 75.0, st.Lon, 1e-9)

	src, _, err := c.SortPair("AAK", "BRVK")
	require.NoError(t, err)
	assert.Equal(t, "AAK", src)
}

func TestLoad_CustomColumns(t *testing.T) {
	p := writeProject(t, "AAK 74.4942 42.6375 II\n", "AAK\n", "AAK\n", false)
	p.Fstation.All = config.StationListParams{Name: "station.lst", ColNet: 3, ColSta: 0, ColLon: 1, ColLat: 2}

	c, err := Load(p)
	require.NoError(t, err)
	st, _ := c.Station("AAK")
	assert.Equal(t, "II", st.Network)
}

func TestLoad_MissingStationList(t *testing.T) {
	p := writeProject(t, stationList, "AAK\n", "TLY\n", false)
	p.Fstation.All.Name = "absent.lst"

	_, err := Load(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedCoordinates(t *testing.T) {
	p := writeProject(t, "II AAK east north\n", "AAK\n", "AAK\n", false)

	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "station.lst:1")
}

func TestLoad_RoleNotInList(t *testing.T) {
	p := writeProject(t, stationList, "AAK\nNOPE\n", "TLY\n", false)

	_, err := Load(p)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestLoad_BadGroupCount(t *testing.T) {
	p := writeProject(t, stationList, "AAK 1\nBRVK 1\n", "TLY\n", true)

	_, err := Load(p)
	assert.ErrorIs(t, err, ErrGroupCount)
}

func TestSortPair_Catalog(t *testing.T) {
	p := writeProject(t, stationList, "AAK\n", "TLY\n", false)
	c, err := Load(p)
	require.NoError(t, err)

	src, rec, err := c.SortPair("TLY", "KURK")
	require.NoError(t, err)
	assert.Equal(t, "KURK", src)
	assert.Equal(t, "TLY", rec)

	_, _, err = c.SortPair("TLY", "ZZZ")
	assert.ErrorIs(t, err, ErrStationNotFound)
}
