// Package artifact resolves the canonical on-disk path for every file the
// three-station pipeline produces. Paths are the single source of truth for
// locating inputs and outputs across stages, so every station pair is passed
// through the catalog's canonical ordering before a path is built.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Hao-Yuanxin/ThreeStation/internal/catalog"
	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
)

// Request carries the kind-specific arguments for Resolve. Station pairs may
// be supplied in either order.
type Request struct {
	Sta1 string
	Sta2 string
	Sta3 string // third, unordered leg of a C3
	Lag  string // lag label of a C3
	Pre  string // label prefix of a processed lag file
	I2   string // existing I2 path, alternative pair source for I2_LAG_RAW
}

// Resolver builds artifact paths from the run parameters and the station
// catalog. It is safe for concurrent use.
type Resolver struct {
	params *config.Params
	cat    *catalog.Catalog

	// mkdir creates the station directory when lag files are written.
	// Swappable so tests and dry runs observe the side effect without
	// touching the filesystem.
	mkdir func(string) error
}

// NewResolver creates a Resolver over the given parameters and catalog.
func NewResolver(p *config.Params, c *catalog.Catalog) *Resolver {
	return &Resolver{
		params: p,
		cat:    c,
		mkdir: func(dir string) error {
			return os.MkdirAll(dir, 0o755)
		},
	}
}

// SetMkdir replaces the directory-creation helper used by I2LagRaw.
func (r *Resolver) SetMkdir(fn func(string) error) {
	r.mkdir = fn
}

// Resolve dispatches to the handler for kind. Most kinds yield a single
// path; I2_LAG_RAW yields one or two.
func (r *Resolver) Resolve(kind Kind, req Request) ([]string, error) {
	switch kind {
	case KindI2Path:
		return []string{r.I2PathList()}, nil
	case KindSourceStation:
		return []string{r.SourceStationList()}, nil
	case KindI2:
		p, err := r.I2(req.Sta1, req.Sta2)
		return single(p), err
	case KindI2LagRaw:
		return r.I2LagRaw(req.Sta1, req.Sta2, req.I2)
	case KindI2LagProc:
		p, err := r.I2LagProc(req.Pre, req.Sta1, req.Sta2)
		return single(p), err
	case KindC3:
		p, err := r.C3(req.Sta1, req.Sta2, req.Sta3, req.Lag)
		return single(p), err
	case KindI3:
		p, err := r.I3(req.Sta1, req.Sta2)
		return single(p), err
	case KindI3Rand:
		p, err := r.I3Rand(req.Sta1, req.Sta2)
		return single(p), err
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

func single(p string) []string {
	if p == "" {
		return nil
	}
	return []string{p}
}

// I2PathList returns the fixed per-run path of the I2 path-list meta file.
func (r *Resolver) I2PathList() string {
	return filepath.Join(
		r.params.OutDir(),
		r.params.Dir.Meta,
		r.params.Dir.Out+r.params.Sfx.I2,
	)
}

// SourceStationList returns the fixed per-run path of the common
// source-station meta file.
func (r *Resolver) SourceStationList() string {
	return filepath.Join(
		r.params.OutDir(),
		r.params.Dir.Meta,
		r.params.Dir.Out+r.params.Sfx.Source,
	)
}

// I2 returns the raw two-station correlation path,
// <project>/<I2>/<src>/COR_<src>_<rec><ext>.
func (r *Resolver) I2(sta1, sta2 string) (string, error) {
	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return "", err
	}
	return filepath.Join(
		r.params.Dir.Project,
		r.params.Dir.I2,
		src,
		r.corName("COR", src, rec),
	), nil
}

// I2LagRaw returns the lag-split paths for an I2 under <out>/<src>/:
// P_<name> and N_<name> for two lags, S_<name> otherwise. The base name and
// receiver come from i2, an existing I2 path, when given; otherwise both are
// derived from the canonical pair. When lag writing is enabled the station
// directory is created as a side effect.
func (r *Resolver) I2LagRaw(sta1, sta2, i2 string) ([]string, error) {
	if i2 != "" {
		sta2 = filepath.Base(filepath.Dir(i2))
		i2 = filepath.Base(i2)
	}

	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return nil, err
	}
	if i2 == "" {
		i2 = r.corName("COR", src, rec)
	}

	staDir := filepath.Join(r.params.OutDir(), src)
	if r.params.Write.Lag {
		if err := r.mkdir(staDir); err != nil {
			return nil, fmt.Errorf("create lag directory: %w", err)
		}
	}

	if r.params.Interferometry.Nlag == 2 {
		return []string{
			filepath.Join(staDir, "P_"+i2),
			filepath.Join(staDir, "N_"+i2),
		}, nil
	}
	return []string{filepath.Join(staDir, "S_"+i2)}, nil
}

// I2LagProc returns the post-processed lag path,
// <out>/<src>/<pre>_COR_<src>_<rec><ext>.
func (r *Resolver) I2LagProc(pre, sta1, sta2 string) (string, error) {
	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return "", err
	}
	return filepath.Join(
		r.params.OutDir(),
		src,
		pre+"_"+r.corName("COR", src, rec),
	), nil
}

// C3 returns the source-specific three-station correlation path,
// <out>/<src>/<rec>/<sta3>_<lag>_<src>_<rec><ext>. Only the receiver pair is
// canonically ordered; sta3 is the third, unordered leg.
func (r *Resolver) C3(sta1, sta2, sta3, lag string) (string, error) {
	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return "", err
	}
	return filepath.Join(
		r.params.OutDir(),
		src,
		rec,
		fmt.Sprintf("%s_%s_%s_%s%s", sta3, lag, src, rec, r.params.Sfx.Cor),
	), nil
}

// I3 returns the stacked three-station interferogram path,
// <out>/<I3>/<src>/I3_<src>_<rec><ext>.
func (r *Resolver) I3(sta1, sta2 string) (string, error) {
	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return "", err
	}
	return filepath.Join(
		r.params.OutDir(),
		r.params.Dir.I3,
		src,
		r.corName("I3", src, rec),
	), nil
}

// I3Rand returns the randomized-stack variant path, nested one level deeper
// by receiver: <out>/<I3_rand>/<src>/<rec>/I3_<src>_<rec><ext>.
func (r *Resolver) I3Rand(sta1, sta2 string) (string, error) {
	src, rec, err := r.cat.SortPair(sta1, sta2)
	if err != nil {
		return "", err
	}
	return filepath.Join(
		r.params.OutDir(),
		r.params.Dir.I3Rand,
		src,
		rec,
		r.corName("I3", src, rec),
	), nil
}

func (r *Resolver) corName(prefix, src, rec string) string {
	return fmt.Sprintf("%s_%s_%s%s", prefix, src, rec, r.params.Sfx.Cor)
}
