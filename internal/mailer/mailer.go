package mailer

import "context"

type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}
