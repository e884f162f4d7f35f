package main

import (
	"github.com/joshuapare/atlaskit/atlas"
	"github.com/spf13/cobra"
)

var simulateVerify bool

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().BoolVar(&simulateVerify, "verify", false, "Run the consistency checker after every step")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <scenario.toml>",
		Short: "Replay an allocation scenario",
		Long: `The simulate command loads a TOML scenario, replays its scripted and
random operations against a fresh atlas manager, and reports the result.

Example scenario:

  width = 256
  height = 256
  seed = 42

  [[op]]
  action = "alloc"
  width = 64
  height = 32

  [[op]]
  action = "free"
  target = 0

  [random]
  count = 500
  min_size = 4
  max_size = 48
  free_chance = 0.35

Example:
  atlasctl simulate scenario.toml
  atlasctl simulate scenario.toml --verify --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(args[0])
		},
	}
}

func runSimulate(path string) error {
	s, err := loadScenario(path)
	if err != nil {
		return err
	}

	m, res, err := runScenario(s, simulateVerify)
	defer func() {
		// Drain whatever the scenario left allocated so Close is clean.
		for i := range res.Outstanding {
			m.Free(&res.Outstanding[i])
		}
		_ = m.Close()
	}()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("atlas:        %dx%d\n", s.Width, s.Height)
	printInfo("steps:        %d (%d failed)\n", res.Steps, res.Failed)
	printInfo("outstanding:  %d regions\n", len(res.Outstanding))
	printStats(res.Stats)
	if simulateVerify {
		printInfo("verify:       ok\n")
	}
	return nil
}

// printStats renders an atlas.Stats snapshot; shared with the bench command.
func printStats(s atlas.Stats) {
	printInfo("utilization:  %.1f%% (%d of %d area units)\n",
		s.Utilization*100, s.UsedArea, s.TotalArea)
	printInfo("regions:      %d allocated, %d free\n",
		s.AllocatedRegions, s.FreeRegions)
	printInfo("allocations:  %d calls, %d failed, %d exact fits\n",
		s.AllocCalls, s.AllocFails, s.ExactFits)
	printInfo("splits:       %d two-way, %d three-way\n",
		s.TwoWaySplits, s.ThreeWaySplits)
	printInfo("frees:        %d calls, %d merges\n",
		s.FreeCalls, s.Merges)
}
