package main

import (
	"fmt"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/atlaskit/atlas"
)

// Model is the main application model
type Model struct {
	manager *atlas.Manager
	atlasW  uint32
	atlasH  uint32

	rng     *rand.Rand
	regions []atlas.Region
	cursor  int

	keys KeyMap
	help help.Model

	width  int
	height int
	status string
	broken bool // a consistency check failed; allocator state is suspect
}

func newModel(w, h uint32) Model {
	return Model{
		manager: atlas.New(w, h),
		atlasW:  w,
		atlasH:  h,
		rng:     rand.New(rand.NewSource(1)),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		status:  "press a to allocate",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			_ = m.manager.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.regions)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Allocate):
			return m.allocateRandom(), nil

		case key.Matches(msg, m.keys.Free):
			return m.freeSelected(), nil

		case key.Matches(msg, m.keys.Reset):
			return m.reset(), nil

		case key.Matches(msg, m.keys.Copy):
			return m.copySelected(), nil
		}
	}
	return m, nil
}

// allocateRandom places a random rectangle between 1/32 and 1/4 of each
// atlas dimension.
func (m Model) allocateRandom() Model {
	w := 1 + m.atlasW/32 + uint32(m.rng.Intn(int(m.atlasW/4+1)))
	h := 1 + m.atlasH/32 + uint32(m.rng.Intn(int(m.atlasH/4+1)))

	r := m.manager.Allocate(w, h)
	if r.IsEmpty() {
		m.status = fmt.Sprintf("allocate %dx%d failed: no fitting free region", w, h)
		return m
	}
	m.status = fmt.Sprintf("allocated %s", r)
	m.refresh()
	m.cursor = len(m.regions) - 1
	return m.checked()
}

func (m Model) freeSelected() Model {
	if len(m.regions) == 0 {
		m.status = "nothing to free"
		return m
	}
	r := m.regions[m.cursor]
	m.manager.Free(&r)
	m.status = fmt.Sprintf("freed %s", m.regions[m.cursor])
	m.refresh()
	if m.cursor >= len(m.regions) && m.cursor > 0 {
		m.cursor--
	}
	return m.checked()
}

func (m Model) reset() Model {
	for i := range m.regions {
		m.manager.Free(&m.regions[i])
	}
	m.refresh()
	m.cursor = 0
	m.status = "atlas reset"
	return m.checked()
}

func (m Model) copySelected() Model {
	if len(m.regions) == 0 {
		m.status = "nothing to copy"
		return m
	}
	r := m.regions[m.cursor]
	text := fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
	if err := clipboard.WriteAll(text); err != nil {
		m.status = fmt.Sprintf("clipboard: %v", err)
		return m
	}
	m.status = fmt.Sprintf("copied %q", text)
	return m
}

// refresh re-snapshots the allocated region list after a mutation.
func (m *Model) refresh() {
	m.regions = m.manager.AllocatedRegions()
}

// checked runs the consistency checker and flags the model if the allocator
// state is broken. Cheap at interactive scale.
func (m Model) checked() Model {
	if err := m.manager.Verify(); err != nil {
		m.status = err.Error()
		m.broken = true
	}
	return m
}
