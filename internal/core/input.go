package core

// Action represents a semantic user action, abstracted from physical key presses.
// This allows the controller to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionPause           // Space, P - pause/resume the simulation
	ActionRestart         // R - start a new game with the current settings
	ActionSettings        // S - open/close the settings form
	ActionConfirm         // Enter - apply the settings form
	ActionBack            // Esc - close the settings form
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionSettings:
		return "Settings"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
