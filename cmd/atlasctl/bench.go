package main

import (
	"math/rand"
	"time"

	"github.com/joshuapare/atlaskit/atlas"
	"github.com/spf13/cobra"
)

var (
	benchWidth  uint32
	benchHeight uint32
	benchCount  int
	benchMin    uint32
	benchMax    uint32
	benchSeed   int64
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().Uint32Var(&benchWidth, "width", 1024, "Atlas width")
	cmd.Flags().Uint32Var(&benchHeight, "height", 1024, "Atlas height")
	cmd.Flags().IntVar(&benchCount, "count", 100000, "Number of operations")
	cmd.Flags().Uint32Var(&benchMin, "min", 4, "Minimum request dimension")
	cmd.Flags().Uint32Var(&benchMax, "max", 64, "Maximum request dimension")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run a synthetic churn workload",
		Long: `The bench command runs a randomized allocate/free churn workload and
reports throughput and allocator statistics.

Example:
  atlasctl bench --width 2048 --height 2048 --count 500000
  atlasctl bench --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

type benchResult struct {
	Operations int           `json:"operations"`
	Failed     int           `json:"failed"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	OpsPerSec  float64       `json:"ops_per_sec"`
	Stats      atlas.Stats   `json:"stats"`
}

func runBench() error {
	rng := rand.New(rand.NewSource(benchSeed))
	m := atlas.New(benchWidth, benchHeight)
	defer func() { _ = m.Close() }()

	var outstanding []atlas.Region
	span := int(benchMax - benchMin + 1)
	failed := 0

	start := time.Now()
	for i := 0; i < benchCount; i++ {
		// Free roughly half the time once the atlas has tenants; churn
		// keeps the free indices and merge path busy.
		if len(outstanding) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(outstanding))
			m.Free(&outstanding[idx])
			outstanding[idx] = outstanding[len(outstanding)-1]
			outstanding = outstanding[:len(outstanding)-1]
			continue
		}
		w := benchMin + uint32(rng.Intn(span))
		h := benchMin + uint32(rng.Intn(span))
		r := m.Allocate(w, h)
		if r.IsEmpty() {
			failed++
			continue
		}
		outstanding = append(outstanding, r)
	}
	elapsed := time.Since(start)

	res := benchResult{
		Operations: benchCount,
		Failed:     failed,
		Elapsed:    elapsed,
		OpsPerSec:  float64(benchCount) / elapsed.Seconds(),
		Stats:      m.Stats(),
	}

	for i := range outstanding {
		m.Free(&outstanding[i])
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("atlas:        %dx%d\n", benchWidth, benchHeight)
	printInfo("operations:   %d in %s (%.0f ops/sec)\n",
		res.Operations, res.Elapsed.Round(time.Millisecond), res.OpsPerSec)
	printInfo("failed:       %d\n", res.Failed)
	printStats(res.Stats)
	return nil
}
