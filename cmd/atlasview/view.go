package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	sidebarWidth    = 30
	statusBarHeight = 2
	minGridCols     = 16
	minGridRows     = 8
)

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	gridCols := m.width - sidebarWidth - 6
	gridRows := m.height - statusBarHeight - 4 - lipgloss.Height(m.help.View(m.keys))
	if gridCols < minGridCols {
		gridCols = minGridCols
	}
	if gridRows < minGridRows {
		gridRows = minGridRows
	}

	header := headerStyle.Render(fmt.Sprintf("atlasview · %dx%d atlas", m.atlasW, m.atlasH))

	grid := paneStyle.Render(m.renderGrid(gridCols, gridRows))
	sidebar := paneStyle.Width(sidebarWidth).Render(m.renderSidebar(gridRows))
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

// renderGrid samples the atlas onto a cols x rows cell grid. Rows print
// top-down, so the atlas origin is bottom-left. Each allocated region gets a
// cycling color; the selected region is highlighted.
func (m Model) renderGrid(cols, rows int) string {
	var b strings.Builder
	for row := rows - 1; row >= 0; row-- {
		for col := 0; col < cols; col++ {
			x := uint32((uint64(col)*2 + 1) * uint64(m.atlasW) / (uint64(cols) * 2))
			y := uint32((uint64(row)*2 + 1) * uint64(m.atlasH) / (uint64(rows) * 2))

			idx := -1
			for i, r := range m.regions {
				if x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height {
					idx = i
					break
				}
			}

			switch {
			case idx < 0:
				b.WriteString(freeCellStyle.Render("·"))
			case idx == m.cursor:
				b.WriteString(selectedCellStyle.Render("█"))
			default:
				b.WriteString(regionCellStyle(idx).Render("█"))
			}
		}
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderSidebar(rows int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d allocated regions\n\n", len(m.regions)))

	// Window the list around the cursor so long lists stay visible.
	visible := rows - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for i := start; i < len(m.regions) && i < start+visible; i++ {
		r := m.regions[i]
		line := fmt.Sprintf("%3d: %d,%d %dx%d", i, r.X, r.Y, r.Width, r.Height)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listEntryStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderStatus() string {
	s := m.manager.Stats()
	left := statusStyle.Render(fmt.Sprintf(
		" %.1f%% used · %d free regions · %d allocs (%d failed) · %d merges",
		s.Utilization*100, s.FreeRegions, s.AllocCalls, s.AllocFails, s.Merges))

	msg := m.status
	style := statusOKStyle
	if m.broken {
		style = statusErrStyle
	}
	return left + "\n " + style.Render(msg)
}
