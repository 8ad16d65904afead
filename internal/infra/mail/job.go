package mail

import (
	"encoding/json"
	"strings"

	"inventory/internal/domain/service"

	"github.com/pkg/errors"
)

// EmailJob is the JSON payload placed on the mail queue.
type EmailJob struct {
	ID      string `json:"id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NewEmailJob builds a queue payload from a message.
func NewEmailJob(id string, msg service.EmailMessage) EmailJob {
	return EmailJob{
		ID:      id,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	}
}

// Message converts the job back into a domain message.
func (j EmailJob) Message() service.EmailMessage {
	return service.EmailMessage{
		To:      j.To,
		Subject: j.Subject,
		Body:    j.Text,
	}
}

// DecodeEmailJob parses and checks a queued payload.
func DecodeEmailJob(body []byte) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return EmailJob{}, errors.Wrap(err, "decode email job")
	}

	if strings.TrimSpace(job.To) == "" {
		return EmailJob{}, errors.New("email job has no recipient")
	}

	return job, nil
}
