// Package config loads and validates the run-parameter file for the
// three-station pipeline.
//
// The parameter file is YAML, mirroring the layout consumed by the rest of
// the processing chain: directory names, per-family file suffixes, station
// file locations and column layout, interferometry options, and optional
// dispersion priors. Load parses the file and fills defaults; Check enforces
// the cross-field rules before any stage runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Params holds all run parameters, populated from the YAML parameter file.
type Params struct {
	Dir            DirParams            `yaml:"dir"`
	Sfx            SfxParams            `yaml:"sfx"`
	Fstation       FstationParams       `yaml:"fstation"`
	Interferometry InterferometryParams `yaml:"interferometry"`
	Misc           MiscParams           `yaml:"misc"`
	Write          WriteParams          `yaml:"write"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DirParams names the directories every artifact path is composed from.
type DirParams struct {
	Project string `yaml:"project"`
	Out     string `yaml:"out"`
	Meta    string `yaml:"meta"`
	I2      string `yaml:"I2"`
	I3      string `yaml:"I3"`
	I3Rand  string `yaml:"I3_rand"`
}

// SfxParams holds per-artifact-family file suffixes.
type SfxParams struct {
	I2     string `yaml:"I2"`     // suffix of the I2 path-list meta file
	Source string `yaml:"source"` // suffix of the source-station meta file
	Cor    string `yaml:"cor"`    // extension of correlation/interferogram files
}

// StationListParams locates the full station list and its column layout.
type StationListParams struct {
	Name   string `yaml:"name"`
	ColNet int    `yaml:"col_net"`
	ColSta int    `yaml:"col_sta"`
	ColLon int    `yaml:"col_lon"`
	ColLat int    `yaml:"col_lat"`
}

// ReceiverParams locates the receiver role file. When Group is set, the
// file's second column carries a group label per receiver.
type ReceiverParams struct {
	Name  string `yaml:"name"`
	Group bool   `yaml:"group"`
}

// FstationParams names the station files, relative to the project directory.
type FstationParams struct {
	All      StationListParams `yaml:"all"`
	Receiver ReceiverParams    `yaml:"receiver"`
	Source   string            `yaml:"source"`
}

// InterferometryParams configures the interferometry operator and lag layout.
type InterferometryParams struct {
	Operator string `yaml:"operator"`
	Nlag     int    `yaml:"nlag"`
	FlipNlag bool   `yaml:"flip_nlag"`
	SPZ      bool   `yaml:"spz"`
	Welch    bool   `yaml:"Welch"`

	// Optional dispersion priors: a 1-D global curve and a pair-indexed table.
	PredPV1D string `yaml:"pred_pv_1d"`
	PredPV2D string `yaml:"pred_pv_2d"`
}

// MiscParams holds the wave-type selector.
type MiscParams struct {
	WaveType string `yaml:"wavetype"`
}

// WriteParams toggles optional file outputs of the surrounding stages.
type WriteParams struct {
	Lag bool `yaml:"lag"`
}

// Load reads and parses the parameter file, applying defaults where unset.
// Parameter values are not cross-checked here; call Check before use.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse parameter file %s: %w", path, err)
	}

	p.applyDefaults()

	return &p, nil
}

// applyDefaults fills in missing values with defaults. The station-list
// column indices default to the conventional net/sta/lon/lat layout only
// when all four are unset, since zero is a valid explicit index.
func (p *Params) applyDefaults() {
	if p.Fstation.All.ColNet == 0 && p.Fstation.All.ColSta == 0 &&
		p.Fstation.All.ColLon == 0 && p.Fstation.All.ColLat == 0 {
		p.Fstation.All.ColSta = 1
		p.Fstation.All.ColLon = 2
		p.Fstation.All.ColLat = 3
	}
	if p.Sfx.Cor == "" {
		p.Sfx.Cor = ".SAC"
	}
	if p.Sfx.I2 == "" {
		p.Sfx.I2 = "_I2.lst"
	}
	if p.Sfx.Source == "" {
		p.Sfx.Source = "_source.lst"
	}
	if p.Dir.Meta == "" {
		p.Dir.Meta = "meta"
	}
	if p.Interferometry.Nlag == 0 {
		p.Interferometry.Nlag = 2
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.LogFormat == "" {
		p.LogFormat = "text"
	}
}

// OutDir returns the output root, <project>/<out>.
func (p *Params) OutDir() string {
	return filepath.Join(p.Dir.Project, p.Dir.Out)
}
