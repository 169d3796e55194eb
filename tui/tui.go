package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Target is the file or URL to play. Empty opens the resume list.
	Target string
	Title  string

	// Continue resumes the most recently played target.
	Continue bool

	// Hook overrides the hooks.script setting.
	Hook string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble, err := newBubble(options)
	if err != nil {
		return err
	}
	defer bubble.close()

	if options.Continue && options.Target == "" {
		if err := bubble.continueLatest(); err != nil {
			return err
		}
	}

	if bubble.target == "" {
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.newState(historyState)
	} else {
		bubble.newState(loadingState)
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
