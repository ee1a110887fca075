package workflow

// State represents a step in the upload-session lifecycle, from file
// selection through bill creation.
type State string

const (
	StateIdle           State = "IDLE"
	StateUploading      State = "UPLOADING"
	StateUploadComplete State = "UPLOAD_COMPLETE"
	StateSubmitting     State = "SUBMITTING"
	StateSubmitted      State = "SUBMITTED"
	StateRejected       State = "REJECTED"
)

var validStates = map[State]bool{
	StateIdle:           true,
	StateUploading:      true,
	StateUploadComplete: true,
	StateSubmitting:     true,
	StateSubmitted:      true,
	StateRejected:       true,
}

// Submitted is the only terminal state. Rejected is not terminal: the user
// may pick another file after a rejected one.
var terminalStates = map[State]bool{
	StateSubmitted: true,
}

// IsTerminal returns true if no further transitions are allowed from s.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if s is a known lifecycle state.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
