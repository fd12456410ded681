package model

import "time"

// Delivery records the outcome of one relay attempt. It deliberately carries
// no part of the submission.
type Delivery struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`            // "sent" | "failed"
	Failure   string    `json:"failure,omitempty"` // error class, e.g. "smtp"
	CreatedAt time.Time `json:"created_at"`
}

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)
