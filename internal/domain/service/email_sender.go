package service

import "context"

// EmailMessage is a plain-text message to a single recipient.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailSender hands a message to the configured delivery channel.
// Delivery is not confirmed; a nil error only means the message was accepted.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
