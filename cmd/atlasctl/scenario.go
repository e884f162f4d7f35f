package main

import (
	"fmt"
	"math/rand"

	"github.com/BurntSushi/toml"
	"github.com/joshuapare/atlaskit/atlas"
)

// Scenario describes a workload to run against an atlas manager. Scripted
// ops run first, then the optional random section.
type Scenario struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	Seed   int64  `toml:"seed"`

	Ops    []ScenarioOp `toml:"op"`
	Random *RandomOps   `toml:"random"`
}

// ScenarioOp is one scripted step: an allocation of Width x Height, or a
// free of the Target-th still-outstanding allocation (0-based, in
// allocation order).
type ScenarioOp struct {
	Action string `toml:"action"` // "alloc" or "free"
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	Target int    `toml:"target"`
}

// RandomOps describes a randomized churn phase.
type RandomOps struct {
	Count      int     `toml:"count"`
	MinSize    uint32  `toml:"min_size"`
	MaxSize    uint32  `toml:"max_size"`
	FreeChance float64 `toml:"free_chance"`
}

func loadScenario(path string) (*Scenario, error) {
	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Width == 0 || s.Height == 0 {
		return fmt.Errorf("atlas dimensions must be positive, got %dx%d", s.Width, s.Height)
	}
	for i, op := range s.Ops {
		switch op.Action {
		case "alloc":
			if op.Width == 0 || op.Height == 0 {
				return fmt.Errorf("op %d: alloc dimensions must be positive", i)
			}
		case "free":
			if op.Target < 0 {
				return fmt.Errorf("op %d: free target must be >= 0", i)
			}
		default:
			return fmt.Errorf("op %d: unknown action %q", i, op.Action)
		}
	}
	if r := s.Random; r != nil {
		if r.Count < 0 {
			return fmt.Errorf("random.count must be >= 0")
		}
		if r.MinSize == 0 || r.MaxSize < r.MinSize {
			return fmt.Errorf("random sizes must satisfy 0 < min_size <= max_size")
		}
		if r.FreeChance < 0 || r.FreeChance > 1 {
			return fmt.Errorf("random.free_chance must be within [0, 1]")
		}
	}
	return nil
}

// RunResult summarizes a scenario run.
type RunResult struct {
	Steps        int            `json:"steps"`
	Failed       int            `json:"failed"`
	Outstanding  []atlas.Region `json:"outstanding,omitempty"`
	Stats        atlas.Stats    `json:"stats"`
	VerifyPassed bool           `json:"verify_passed"`
}

// runScenario executes the scenario and returns the manager (still open, so
// callers can render or inspect it) together with the run summary. When
// verify is set, the consistency checker runs after every step and the
// first failure aborts the run.
func runScenario(s *Scenario, verify bool) (*atlas.Manager, *RunResult, error) {
	m := atlas.New(s.Width, s.Height)
	res := &RunResult{VerifyPassed: true}

	var outstanding []atlas.Region

	step := func(alloc bool, w, h uint32, target int) error {
		res.Steps++
		if alloc {
			r := m.Allocate(w, h)
			if r.IsEmpty() {
				res.Failed++
				printVerbose("step %d: alloc %dx%d failed\n", res.Steps, w, h)
			} else {
				outstanding = append(outstanding, r)
				printVerbose("step %d: alloc %dx%d -> %s\n", res.Steps, w, h, r)
			}
		} else {
			if len(outstanding) == 0 {
				res.Failed++
				return nil
			}
			idx := target % len(outstanding)
			r := outstanding[idx]
			m.Free(&outstanding[idx])
			outstanding = append(outstanding[:idx], outstanding[idx+1:]...)
			printVerbose("step %d: free %s\n", res.Steps, r)
		}
		if verify {
			if err := m.Verify(); err != nil {
				res.VerifyPassed = false
				return fmt.Errorf("consistency check failed after step %d: %w", res.Steps, err)
			}
		}
		return nil
	}

	for _, op := range s.Ops {
		if err := step(op.Action == "alloc", op.Width, op.Height, op.Target); err != nil {
			return m, res, err
		}
	}

	if r := s.Random; r != nil {
		rng := rand.New(rand.NewSource(s.Seed))
		span := int(r.MaxSize - r.MinSize + 1)
		for i := 0; i < r.Count; i++ {
			if len(outstanding) > 0 && rng.Float64() < r.FreeChance {
				if err := step(false, 0, 0, rng.Intn(len(outstanding))); err != nil {
					return m, res, err
				}
				continue
			}
			w := r.MinSize + uint32(rng.Intn(span))
			h := r.MinSize + uint32(rng.Intn(span))
			if err := step(true, w, h, 0); err != nil {
				return m, res, err
			}
		}
	}

	res.Outstanding = outstanding
	res.Stats = m.Stats()
	return m, res, nil
}
