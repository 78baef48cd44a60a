package failover

import "context"

// Directory lists identities page by page. An empty cursor requests the first page.
type Directory interface {
	ListIdentities(ctx context.Context, poolRef, cursor string) (*Page, error)
}

// Notifier publishes to topics and registers filtered subscriptions.
type Notifier interface {
	Publish(ctx context.Context, topicRef, subject, body string, attributes map[string]string) error
	Subscribe(ctx context.Context, topicRef, address string, filterPolicy map[string][]string) error
}

// ParameterStore writes named values. Implementations always overwrite.
type ParameterStore interface {
	PutParameter(ctx context.Context, entry ParameterEntry) error
}
