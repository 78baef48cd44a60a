package awsx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SubscriptionProtocol is the delivery protocol of registered addresses.
const SubscriptionProtocol = "email"

// SNSAPI is the part of the SNS client the notifier uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
}

// SNSNotifier publishes through one client and subscribes through another,
// so each topic is reached in its own region.
type SNSNotifier struct {
	publisher  SNSAPI
	subscriber SNSAPI
}

func NewSNSNotifier(publisher, subscriber SNSAPI) *SNSNotifier {
	return &SNSNotifier{publisher: publisher, subscriber: subscriber}
}

func (n *SNSNotifier) Publish(ctx context.Context, topicRef, subject, body string, attributes map[string]string) error {
	in := &sns.PublishInput{
		TopicArn: aws.String(topicRef),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	}
	if len(attributes) > 0 {
		in.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for k, v := range attributes {
			in.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}

	_, err := n.publisher.Publish(ctx, in)
	return err
}

// Subscribe registers address on the topic with the filter policy attached
// at creation. SNS treats a repeated identical request as the same subscription.
func (n *SNSNotifier) Subscribe(ctx context.Context, topicRef, address string, filterPolicy map[string][]string) error {
	in := &sns.SubscribeInput{
		TopicArn: aws.String(topicRef),
		Protocol: aws.String(SubscriptionProtocol),
		Endpoint: aws.String(address),
	}
	if len(filterPolicy) > 0 {
		policy, err := json.Marshal(filterPolicy)
		if err != nil {
			return fmt.Errorf("encode filter policy: %w", err)
		}
		in.Attributes = map[string]string{"FilterPolicy": string(policy)}
	}

	_, err := n.subscriber.Subscribe(ctx, in)
	return err
}
