// internal/player/state.go
package player

// Device state transitions:
//
//	Stopped --Play--> Playing --Pause--> Paused --Resume--> Playing
//	Playing/Paused --Stop--> Stopped
//	Playing --end of file--> Stopped (signals FinishedChan)
//
// Pause outside Playing, Resume outside Paused and Stop while Stopped
// are ignored. Play while Playing stops the current file first.

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a file is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
