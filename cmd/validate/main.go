// Command validate preflights a project before a run: it checks that the
// parameter file parses and is internally consistent, that the station and
// role files load, that the dispersion priors are readable, and that path
// resolution is invariant to station argument order.
//
// Usage:
//
//	go run ./cmd/validate -param /data/tibet/param.yml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Hao-Yuanxin/ThreeStation/internal/artifact"
	"github.com/Hao-Yuanxin/ThreeStation/internal/catalog"
	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
	"github.com/Hao-Yuanxin/ThreeStation/internal/dispersion"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	paramPath := flag.String("param", "", "path to the YAML parameter file")
	flag.Parse()

	if *paramPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*paramPath); code != 0 {
		os.Exit(code)
	}
}

func run(paramPath string) int {
	fmt.Println("=== Three-Station Project Validation ===")
	fmt.Println()

	params, err := config.Load(paramPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load parameters: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateParameters(params),
	}

	cat, catPhase := validateCatalog(params)
	phases = append(phases, catPhase)

	phases = append(phases, validateDispersion(params))
	if cat != nil {
		phases = append(phases, validatePathInvariance(params, cat))
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Parameter consistency ──

func validateParameters(params *config.Params) *phase {
	p := &phase{name: "Phase 1: Parameter Consistency"}

	// Warnings are part of a normal run; discard them here.
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := params.Check(discard); err != nil {
		p.errorf("%v", err)
	}
	if params.Dir.Project == "" {
		p.errorf("dir.project is empty")
	}
	if params.Dir.Out == "" {
		p.errorf("dir.out is empty")
	}
	return p
}

// ── Phase 2: Station catalog ──

func validateCatalog(params *config.Params) (*catalog.Catalog, *phase) {
	p := &phase{name: "Phase 2: Station Catalog"}

	cat, err := catalog.Load(params)
	if err != nil {
		p.errorf("%v", err)
		return nil, p
	}

	if len(cat.Receivers) == 0 {
		p.errorf("no receiver stations")
	}
	if len(cat.Sources) == 0 {
		p.errorf("no source stations")
	}

	seen := map[string]int{}
	for _, name := range cat.Names {
		seen[name]++
	}
	for name, n := range seen {
		if n > 1 {
			p.errorf("station %s appears %d times in the station list (last line wins)", name, n)
		}
	}

	return cat, p
}

// ── Phase 3: Dispersion priors ──

func validateDispersion(params *config.Params) *phase {
	p := &phase{name: "Phase 3: Dispersion Priors"}

	if path := params.Interferometry.PredPV1D; path != "" {
		curve, err := dispersion.LoadCurve(path)
		if err != nil {
			p.errorf("1-D curve: %v", err)
		} else if curve.Len() == 0 {
			p.errorf("1-D curve %s has no samples", path)
		}
	}

	if path := params.Interferometry.PredPV2D; path != "" {
		table, err := dispersion.LoadPairTable(path)
		if err != nil {
			p.errorf("pair table: %v", err)
		} else if len(table) == 0 {
			p.errorf("pair table %s is empty", path)
		}
	}

	return p
}

// ── Phase 4: Path invariance ──
// Every pair-addressed artifact must resolve to the same path regardless of
// station argument order.

func validatePathInvariance(params *config.Params, cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 4: Path Order-Invariance"}

	if len(cat.Names) < 2 {
		p.errorf("need at least 2 stations to check pair paths")
		return p
	}
	a, b := cat.Names[0], cat.Names[1]

	paths := artifact.NewResolver(params, cat)
	paths.SetMkdir(func(string) error { return nil }) // dry run, no side effects

	for _, kind := range []artifact.Kind{
		artifact.KindI2, artifact.KindI2LagRaw, artifact.KindI2LagProc,
		artifact.KindC3, artifact.KindI3, artifact.KindI3Rand,
	} {
		req := artifact.Request{Sta1: a, Sta2: b, Sta3: cat.Names[len(cat.Names)-1], Lag: "P", Pre: "cut"}
		fwd, err := paths.Resolve(kind, req)
		if err != nil {
			p.errorf("%v: %v", kind, err)
			continue
		}
		req.Sta1, req.Sta2 = b, a
		rev, err := paths.Resolve(kind, req)
		if err != nil {
			p.errorf("%v reversed: %v", kind, err)
			continue
		}
		if len(fwd) != len(rev) {
			p.errorf("%v: %d paths forward, %d reversed", kind, len(fwd), len(rev))
			continue
		}
		for i := range fwd {
			if fwd[i] != rev[i] {
				p.errorf("%v: %q != %q", kind, fwd[i], rev[i])
			}
		}
	}

	return p
}
