package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	width, height := uint32(512), uint32(512)

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		printUsage()
		return
	}
	if len(args) >= 2 {
		w, errW := strconv.ParseUint(args[0], 10, 32)
		h, errH := strconv.ParseUint(args[1], 10, 32)
		if errW != nil || errH != nil || w == 0 || h == 0 {
			fmt.Fprintf(os.Stderr, "invalid atlas dimensions %q %q\n", args[0], args[1])
			os.Exit(1)
		}
		width, height = uint32(w), uint32(h)
	}

	p := tea.NewProgram(newModel(width, height), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`atlasview - interactive atlas allocation explorer

Usage:
  atlasview [width height]

Keys:
  a        allocate a random rectangle
  f        free the selected region
  r        reset the atlas
  up/down  select a region
  c        copy the selected region to the clipboard
  ?        toggle help
  q        quit`)
}
