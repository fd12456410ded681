package model

// ContactSubmission is a message submitted via the portfolio contact form.
// It is relayed once and never stored.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every required field is non-empty.
func (s ContactSubmission) Complete() bool {
	return s.Name != "" && s.Email != "" && s.Message != ""
}

// RelayResult is the JSON body returned by POST /api/contact.
type RelayResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Relay result messages.
const (
	RelayMessageSent           = "message sent"
	RelayMessageFieldsRequired = "all fields required"
	RelayMessageSendFailed     = "failed to send"
	RelayMessageInvalidBody    = "invalid request body"
	RelayMessageInternalError  = "internal error"
)
