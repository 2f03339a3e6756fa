package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Disposition tells the consumer what to do with a delivery.
type Disposition int

const (
	Ack     Disposition = iota // delivered
	Drop                       // malformed; retrying cannot help
	Requeue                    // transient send failure
)

func (d Disposition) String() string {
	switch d {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	default:
		return "requeue"
	}
}

// HandleDelivery decodes an EmailJob from body, renders it and sends it.
func HandleDelivery(ctx context.Context, body []byte, s Sender) (EmailJob, Disposition, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, Drop, fmt.Errorf("decode job: %w", err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return job, Drop, fmt.Errorf("job has no recipient")
	}
	subject, text, html, err := job.Render()
	if err != nil {
		return job, Drop, fmt.Errorf("render %q: %w", job.Template, err)
	}
	if subject == "" || (text == "" && html == "") {
		return job, Drop, fmt.Errorf("job has no subject or body")
	}
	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return job, Requeue, fmt.Errorf("send: %w", err)
	}
	return job, Ack, nil
}
