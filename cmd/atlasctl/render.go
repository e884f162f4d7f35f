package main

import (
	"strings"

	"github.com/joshuapare/atlaskit/atlas"
	"github.com/spf13/cobra"
)

var (
	renderCols int
	renderRows int
)

func init() {
	cmd := newRenderCmd()
	cmd.Flags().IntVar(&renderCols, "cols", 64, "Map width in characters")
	cmd.Flags().IntVar(&renderRows, "rows", 32, "Map height in characters")
	rootCmd.AddCommand(cmd)
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <scenario.toml>",
		Short: "Render a scenario's final occupancy map",
		Long: `The render command replays a scenario and prints an ASCII map of the
resulting atlas occupancy. Allocated regions are drawn with cycling letters,
free space with dots.

Example:
  atlasctl render scenario.toml --cols 80 --rows 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0])
		},
	}
}

func runRender(path string) error {
	s, err := loadScenario(path)
	if err != nil {
		return err
	}

	m, res, err := runScenario(s, false)
	defer func() {
		for i := range res.Outstanding {
			m.Free(&res.Outstanding[i])
		}
		_ = m.Close()
	}()
	if err != nil {
		return err
	}

	printInfo("%s", occupancyMap(m, renderCols, renderRows))
	printInfo("%d regions allocated, utilization %.1f%%\n",
		res.Stats.AllocatedRegions, res.Stats.Utilization*100)
	return nil
}

// occupancyMap samples the atlas onto a cols x rows character grid. Rows are
// printed top-down, so the atlas origin (0,0) lands in the bottom-left
// corner.
func occupancyMap(m *atlas.Manager, cols, rows int) string {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	regions := m.AllocatedRegions()
	glyphs := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var b strings.Builder
	for row := rows - 1; row >= 0; row-- {
		for col := 0; col < cols; col++ {
			// Sample the center of the character cell.
			x := uint32((uint64(col)*2 + 1) * uint64(m.Width()) / (uint64(cols) * 2))
			y := uint32((uint64(row)*2 + 1) * uint64(m.Height()) / (uint64(rows) * 2))

			ch := byte('.')
			for i, r := range regions {
				if x >= r.X && x < r.Right() && y >= r.Y && y < r.Top() {
					ch = glyphs[i%len(glyphs)]
					break
				}
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
