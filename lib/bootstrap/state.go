// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

// State is a bootstrap state machine state.
type State uint8

const (
	Start State = iota
	Detecting
	NeedsBuild
	NeedsRelaunch
	Relaunching
	Ready
	Terminated
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Detecting:
		return "detecting"
	case NeedsBuild:
		return "needs-build"
	case NeedsRelaunch:
		return "needs-relaunch"
	case Relaunching:
		return "relaunching"
	case Ready:
		return "ready"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// allowed lists the legal transitions out of each state.
var allowed = map[State][]State{
	Start:         {Detecting, Ready},
	Detecting:     {NeedsBuild, NeedsRelaunch, Ready},
	NeedsBuild:    {NeedsRelaunch, Ready},
	NeedsRelaunch: {Relaunching},
	Relaunching:   {Terminated, Ready},
}

func canTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}
