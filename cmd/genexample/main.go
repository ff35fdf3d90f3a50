// Command genexample writes a small runnable example project: a parameter
// file, station and role files, a 1-D global dispersion curve, and a SQLite
// pair-dispersion table. It uses the real encoders and loaders so the output
// always matches what the pipeline accepts.
//
// Usage:
//
//	go run ./cmd/genexample -dir ./example
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Hao-Yuanxin/ThreeStation/internal/catalog"
	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
	"github.com/Hao-Yuanxin/ThreeStation/internal/dispersion"
)

// The example inventory: five Central Asian broadband stations, two of them
// acting as sources for the three-station stacks.
var stations = []catalog.Station{
	{Name: "AAK", Network: "II", Lon: 74.4942, Lat: 42.6375},
	{Name: "BRVK", Network: "II", Lon: 70.2828, Lat: 53.0581},
	{Name: "KURK", Network: "II", Lon: 78.6203, Lat: 50.7154},
	{Name: "MAKZ", Network: "KZ", Lon: 82.9443, Lat: 46.8080},
	{Name: "TLY", Network: "IU", Lon: 103.6438, Lat: 51.6807},
}

var receiverGroups = map[string]string{
	"AAK":  "1",
	"BRVK": "2",
	"KURK": "1",
}

var sources = []string{"MAKZ", "TLY"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "example", "directory to write the example project into")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	if err := writeStationFiles(*dir); err != nil {
		return err
	}
	if err := writeDispersion(*dir); err != nil {
		return err
	}
	paramPath, err := writeParams(*dir)
	if err != nil {
		return err
	}

	// Round-trip through the real loaders to prove the project is usable.
	params, err := config.Load(paramPath)
	if err != nil {
		return fmt.Errorf("reload generated parameters: %w", err)
	}
	cat, err := catalog.Load(params)
	if err != nil {
		return fmt.Errorf("reload generated catalog: %w", err)
	}

	log.Printf("wrote example project: %s", *dir)
	log.Printf("stations=%d receivers=%d sources=%d grouped=%v",
		cat.Len(), len(cat.Receivers), len(cat.Sources), cat.Grouped())
	return nil
}

func writeStationFiles(dir string) error {
	var all, rec, src string
	for _, st := range stations {
		all += fmt.Sprintf("%-4s %-5s %10.4f %9.4f\n", st.Network, st.Name, st.Lon, st.Lat)
		if g, ok := receiverGroups[st.Name]; ok {
			rec += fmt.Sprintf("%-5s %s\n", st.Name, g)
		}
	}
	for _, s := range sources {
		src += s + "\n"
	}

	files := map[string]string{
		"station.lst":  all,
		"receiver.lst": rec,
		"source.lst":   src,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeDispersion(dir string) error {
	// A smooth regional Rayleigh-wave model, 5-50 s.
	var oneD string
	for per := 5; per <= 50; per += 5 {
		vel := 2.6 + 0.02*float64(per)
		oneD += fmt.Sprintf("%d %.3f\n", per, vel)
	}
	if err := os.WriteFile(filepath.Join(dir, "pv_1d.txt"), []byte(oneD), 0o644); err != nil {
		return fmt.Errorf("write 1-D curve: %w", err)
	}

	table := dispersion.PairTable{
		dispersion.PairKey("II", "AAK", "II", "BRVK"): {
			Periods:    []float64{8, 16, 24, 32},
			Velocities: []float64{2.72, 2.95, 3.12, 3.25},
		},
		dispersion.PairKey("II", "KURK", "KZ", "MAKZ"): {
			Periods:    []float64{10, 20, 30},
			Velocities: []float64{2.81, 3.05, 3.21},
		},
	}
	if err := dispersion.SavePairTable(filepath.Join(dir, "pv_2d.sqlite"), table); err != nil {
		return fmt.Errorf("write pair table: %w", err)
	}
	return nil
}

func writeParams(dir string) (string, error) {
	p := &config.Params{}
	p.Dir = config.DirParams{
		Project: dir,
		Out:     "C3",
		Meta:    "meta",
		I2:      "COR",
		I3:      "I3",
		I3Rand:  "I3_rand",
	}
	p.Sfx = config.SfxParams{I2: "_I2.lst", Source: "_source.lst", Cor: ".SAC"}
	p.Fstation.All = config.StationListParams{Name: "station.lst", ColNet: 0, ColSta: 1, ColLon: 2, ColLat: 3}
	p.Fstation.Receiver = config.ReceiverParams{Name: "receiver.lst", Group: true}
	p.Fstation.Source = "source.lst"
	p.Interferometry = config.InterferometryParams{
		Operator: "correlation",
		Nlag:     2,
		PredPV1D: filepath.Join(dir, "pv_1d.txt"),
		PredPV2D: filepath.Join(dir, "pv_2d.sqlite"),
	}
	p.Misc.WaveType = "coda"

	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode parameters: %w", err)
	}

	path := filepath.Join(dir, "param.yml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write parameter file: %w", err)
	}
	return path, nil
}
