package mailer

import (
	"context"
)

// Publisher is the part of helpers.RabbitPublisher the queue sender needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Queue hands mail to the email worker through RabbitMQ instead of sending
// it inline. Retries and dead-lettering happen in the worker.
type Queue struct {
	Pub Publisher
}

func NewQueue(pub Publisher) *Queue { return &Queue{Pub: pub} }

func (q *Queue) Send(ctx context.Context, to []string, subject, html string) error {
	return q.Pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, HTML: html})
}
