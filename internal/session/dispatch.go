package session

import (
	"strconv"
	"strings"
)

// Action is the operator's choice for one refresh cycle.
type Action int

const (
	// ActionRedraw re-renders the panel with fresh probe data.
	ActionRedraw Action = iota

	// ActionQuit ends the session cleanly.
	ActionQuit

	// ActionProcesses hands the terminal to a live process monitor.
	ActionProcesses

	// ActionLogs hands the terminal to a log follower.
	ActionLogs

	// ActionConnections hands the terminal to a socket listing.
	ActionConnections

	// ActionModule is a numbered placeholder module; the number rides in
	// the Dispatch result.
	ActionModule

	// ActionInvalid is anything that is neither a reserved key nor an
	// integer. Never fatal.
	ActionInvalid
)

// Dispatch classifies one line of operator input. The integer result is
// the module number and only meaningful for ActionModule.
func Dispatch(line string) (Action, int) {
	switch strings.TrimSpace(line) {
	case "", "r":
		return ActionRedraw, 0
	case "0", "q":
		return ActionQuit, 0
	case "p":
		return ActionProcesses, 0
	case "l":
		return ActionLogs, 0
	case "n":
		return ActionConnections, 0
	}

	if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
		return ActionModule, n
	}
	return ActionInvalid, 0
}
