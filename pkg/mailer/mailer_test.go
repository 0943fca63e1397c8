package mailer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	got []any
	err error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.got = append(f.got, body)
	return f.err
}

func TestQueue_PublishesJob(t *testing.T) {
	pub := &fakePublisher{}
	err := NewQueue(pub).Send(context.Background(), []string{"a@x.com"}, "hi", "<p>hi</p>")
	require.NoError(t, err)
	require.Len(t, pub.got, 1)
	assert.Equal(t, EmailJob{To: []string{"a@x.com"}, Subject: "hi", HTML: "<p>hi</p>"}, pub.got[0])
}

func TestQueue_PropagatesPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	err := NewQueue(pub).Send(context.Background(), []string{"a@x.com"}, "hi", "x")
	assert.EqualError(t, err, "channel closed")
}

func TestEmailJob_Valid(t *testing.T) {
	assert.True(t, EmailJob{To: []string{"a"}, Subject: "s", HTML: "h"}.Valid())
	assert.True(t, EmailJob{To: []string{"a"}, Subject: "s", Text: "t"}.Valid())
	assert.False(t, EmailJob{Subject: "s", HTML: "h"}.Valid())
	assert.False(t, EmailJob{To: []string{"a"}, HTML: "h"}.Valid())
	assert.False(t, EmailJob{To: []string{"a"}, Subject: "s"}.Valid())
}

func TestSenders_RejectIncompleteJobs(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewMailgun("d", "k", "s").SendJob(ctx, EmailJob{}))
	assert.Error(t, NewSMTP("localhost", 25, "", "", "s@x").SendJob(ctx, EmailJob{}))
}

func TestLog_NeverFails(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	assert.NoError(t, NewLog(logger).Send(context.Background(), []string{"a@x.com"}, "s", "h"))
}
