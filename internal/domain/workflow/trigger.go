package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	TriggerSelectFile     Trigger = "SELECT_FILE"
	TriggerRejectFile     Trigger = "REJECT_FILE"
	TriggerUploadResolved Trigger = "UPLOAD_RESOLVED"
	TriggerSubmit         Trigger = "SUBMIT"
	TriggerCreated        Trigger = "CREATED"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
