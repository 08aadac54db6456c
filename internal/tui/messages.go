package tui

import (
	"time"

	"github.com/taxwise/taxwise/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneParameters
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

// String returns the display name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Break-Even"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle. Scene-emitted messages live
// in tuimsg; aliasing them here lets the root Update switch on either name.

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// TickMsg is sent at regular intervals for animations
type TickMsg time.Time

type (
	ErrorMsg               = tuimsg.ErrorMsg
	ConfigLoadedMsg        = tuimsg.ConfigLoadedMsg
	ScenarioSelectedMsg    = tuimsg.ScenarioSelectedMsg
	ParameterChangedMsg    = tuimsg.ParameterChangedMsg
	CalculationStartedMsg  = tuimsg.CalculationStartedMsg
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	ComparisonStartedMsg   = tuimsg.ComparisonStartedMsg
	ComparisonCompleteMsg  = tuimsg.ComparisonCompleteMsg
	BreakEvenStartedMsg    = tuimsg.BreakEvenStartedMsg
	BreakEvenCompleteMsg   = tuimsg.BreakEvenCompleteMsg
	SaveScenarioMsg        = tuimsg.SaveScenarioMsg
	SaveCompleteMsg        = tuimsg.SaveCompleteMsg
)
