package failover

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/regionfailover/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMessage = Message{
	Subject: "Password Reset Instructions - Action Required",
	Body:    "Visit the login page and click on forgot password.",
}

func newTestDispatcher(n Notifier) *NotificationDispatcher {
	return NewNotificationDispatcher(n, "arn:primary", "arn:secondary", testMessage, logging.Discard(), 0)
}

func TestNotificationDispatcher_PublishesThenSubscribes(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n)

	require.NoError(t, d.Notify(context.Background(), "a@example.com"))

	require.Len(t, n.publishes, 1)
	assert.Equal(t, publishCall{
		Topic:      "arn:primary",
		Subject:    testMessage.Subject,
		Body:       testMessage.Body,
		Attributes: map[string]string{"endpointEmail": "a@example.com"},
	}, n.publishes[0])

	require.Len(t, n.subscribes, 1)
	assert.Equal(t, subscribeCall{
		Topic:   "arn:secondary",
		Address: "a@example.com",
		Policy:  map[string][]string{"endpointEmail": {"a@example.com"}},
	}, n.subscribes[0])
}

func TestNotificationDispatcher_PublishFailure(t *testing.T) {
	cause := errors.New("sns unavailable")
	n := &fakeNotifier{publishErr: map[string]error{"a@example.com": cause}}
	d := newTestDispatcher(n)

	err := d.Notify(context.Background(), "a@example.com")

	var nerr *NotifyError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, StagePublish, nerr.Stage)
	assert.Equal(t, "a@example.com", nerr.Address)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, n.subscribes, "no subscription after a failed publish")
}

func TestNotificationDispatcher_SubscribeFailureIsTolerated(t *testing.T) {
	n := &fakeNotifier{subscribeErr: map[string]error{"a@example.com": errors.New("limit exceeded")}}
	d := newTestDispatcher(n)

	require.NoError(t, d.Notify(context.Background(), "a@example.com"))
	assert.Len(t, n.publishes, 1)
	assert.Empty(t, n.subscribes)
}

func TestNotificationDispatcher_Rerunnable(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n)

	require.NoError(t, d.Notify(context.Background(), "a@example.com"))
	require.NoError(t, d.Notify(context.Background(), "a@example.com"))

	assert.Len(t, n.subscribes, 2)
	assert.Equal(t, n.subscribes[0], n.subscribes[1])
}

func TestFilterPolicyFor(t *testing.T) {
	assert.Equal(t, map[string][]string{"endpointEmail": {"x@y"}}, FilterPolicyFor("x@y"))
}
