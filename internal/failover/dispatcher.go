package failover

import (
	"context"
	"time"

	"github.com/dmitrijs2005/regionfailover/internal/logging"
)

// Message is the fixed broadcast sent to every identity.
type Message struct {
	Subject string
	Body    string
}

// NotificationDispatcher sends the broadcast to an address on the primary
// topic and subscribes the address to the secondary topic.
type NotificationDispatcher struct {
	notifier       Notifier
	primaryTopic   string
	secondaryTopic string
	message        Message
	logger         logging.Logger
	callTimeout    time.Duration
}

func NewNotificationDispatcher(notifier Notifier, primaryTopic, secondaryTopic string, message Message,
	logger logging.Logger, callTimeout time.Duration) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifier:       notifier,
		primaryTopic:   primaryTopic,
		secondaryTopic: secondaryTopic,
		message:        message,
		logger:         logger,
		callTimeout:    callTimeout,
	}
}

// FilterPolicyFor restricts a subscription to messages addressed to address.
func FilterPolicyFor(address string) map[string][]string {
	return map[string][]string{FilterAttribute: {address}}
}

// Notify publishes the broadcast and then registers the subscription.
//
// A publish failure is returned as a *NotifyError. A subscribe failure after
// a successful publish is only logged: the address already got the
// notification and a later run will retry the subscription.
func (d *NotificationDispatcher) Notify(ctx context.Context, address string) error {
	ctx, span := tracer.Start(ctx, "Failover.NotificationDispatcher.Notify")
	defer span.End()

	pub := NotificationTarget{Address: address, TopicRef: d.primaryTopic}
	if err := d.publish(ctx, pub); err != nil {
		nerr := &NotifyError{Address: address, Stage: StagePublish, Cause: err}
		recordSpanError(span, nerr)
		return nerr
	}
	d.logger.Debug(ctx, "notification published", "address", address, "topic", pub.TopicRef)

	sub := NotificationTarget{Address: address, TopicRef: d.secondaryTopic}
	if err := d.subscribe(ctx, sub); err != nil {
		nerr := &NotifyError{Address: address, Stage: StageSubscribe, Cause: err}
		span.RecordError(nerr)
		d.logger.Warn(ctx, "subscription failed after publish", "address", address, "topic", sub.TopicRef, "error", err)
		return nil
	}
	d.logger.Debug(ctx, "address subscribed", "address", address, "topic", sub.TopicRef)

	return nil
}

func (d *NotificationDispatcher) publish(ctx context.Context, t NotificationTarget) error {
	ctx, cancel := withCallTimeout(ctx, d.callTimeout)
	defer cancel()
	return d.notifier.Publish(ctx, t.TopicRef, d.message.Subject, d.message.Body,
		map[string]string{FilterAttribute: t.Address})
}

func (d *NotificationDispatcher) subscribe(ctx context.Context, t NotificationTarget) error {
	ctx, cancel := withCallTimeout(ctx, d.callTimeout)
	defer cancel()
	return d.notifier.Subscribe(ctx, t.TopicRef, t.Address, FilterPolicyFor(t.Address))
}
