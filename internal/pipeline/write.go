package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hao-Yuanxin/ThreeStation/internal/artifact"
)

// WriteOutputs persists the plan's meta files:
//
//   - the I2 path list, one path per line, at the I2_PATH location;
//   - the source-station list, one line per pair (source, receiver, then the
//     contributing source stations), at the SOURCE-STATION location;
//   - manifest.json beside them, with counts and the generation time.
//
// The meta directory is created if needed.
func WriteOutputs(plan *Plan, paths *artifact.Resolver) error {
	i2List := paths.I2PathList()
	if err := os.MkdirAll(filepath.Dir(i2List), 0o755); err != nil {
		return fmt.Errorf("create meta directory: %w", err)
	}

	var i2 strings.Builder
	for _, pp := range plan.Pairs {
		i2.WriteString(pp.I2)
		i2.WriteByte('\n')
	}
	if err := os.WriteFile(i2List, []byte(i2.String()), 0o644); err != nil {
		return fmt.Errorf("write I2 path list: %w", err)
	}

	var src strings.Builder
	for _, pp := range plan.Pairs {
		src.WriteString(pp.Source)
		src.WriteByte(' ')
		src.WriteString(pp.Receiver)
		for _, s := range plan.Sources {
			if s == pp.Source || s == pp.Receiver {
				continue
			}
			src.WriteByte(' ')
			src.WriteString(s)
		}
		src.WriteByte('\n')
	}
	if err := os.WriteFile(paths.SourceStationList(), []byte(src.String()), 0o644); err != nil {
		return fmt.Errorf("write source-station list: %w", err)
	}

	return writeManifest(filepath.Join(filepath.Dir(i2List), "manifest.json"), plan)
}

// manifest summarizes a plan for operators; the per-pair detail stays in the
// meta list files.
type manifest struct {
	GeneratedAt string   `json:"generated_at"`
	LagLabels   []string `json:"lag_labels"`
	Pairs       int      `json:"pairs"`
	Sources     int      `json:"sources"`
	C3Paths     int      `json:"c3_paths"`
}

func writeManifest(path string, plan *Plan) error {
	m := manifest{
		GeneratedAt: plan.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		LagLabels:   plan.LagLabels,
		Pairs:       len(plan.Pairs),
		Sources:     len(plan.Sources),
	}
	for _, pp := range plan.Pairs {
		m.C3Paths += len(pp.C3)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
