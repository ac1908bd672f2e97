package constants

// User-facing failure messages. They are fixed per operation and never derived
// from the server response.
const (
	MsgFetchFailed  = "Failed to load habits"
	MsgCreateFailed = "Failed to create habit"
	MsgUpdateFailed = "Failed to update habit"
	MsgToggleFailed = "Failed to update habit status"
	MsgDeleteFailed = "Failed to delete habit"

	MsgNameRequired      = "Name is required"
	MsgFrequencyRequired = "Choose a frequency"
)
