package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

var lookupEnv = os.LookupEnv

// envBindings maps environment variables onto string settings. The first
// block keeps the variable names the deployed function is configured with.
func envBindings(c *Config) map[string]*string {
	return map[string]*string{
		"PrimaryRegion":                 &c.PrimaryRegion,
		"DRRegion":                      &c.SecondaryRegion,
		"SecondaryUserPoolId":           &c.UserPoolID,
		"SNSNotificationTopicPrimary":   &c.PrimaryTopicARN,
		"SNSNotificationTopicSecondary": &c.SecondaryTopicARN,
		"DRCognitoAuthEndpoint":         &c.AuthEndpoint,
		"DRCallBackUrlEndpoint":         &c.CallbackEndpoint,
		"DRClientId":                    &c.ClientID,
		"DRClientSecret":                &c.ClientSecret,
		"DRWebsocketEndpoint":           &c.WebsocketEndpoint,

		"FAILOVER_PARAMETER_PREFIX":      &c.ParameterPrefix,
		"FAILOVER_PARAMETER_DESCRIPTION": &c.ParameterDescription,
		"FAILOVER_NOTIFICATION_SUBJECT":  &c.NotificationSubject,
		"FAILOVER_NOTIFICATION_BODY":     &c.NotificationBody,
		"FAILOVER_AWS_ENDPOINT":          &c.AWSBaseEndpoint,
		"FAILOVER_AWS_SESSION_TOKEN":     &c.AWSSessionToken,
		"FAILOVER_LOG_LEVEL":             &c.LogLevel,
	}
}

// parseEnv overlays settings from the environment. Empty variables are ignored.
func parseEnv(c *Config, lookup func(string) (string, bool)) error {
	for name, dst := range envBindings(c) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"FAILOVER_CALL_TIMEOUT": &c.CallTimeout,
		"FAILOVER_RUN_DEADLINE": &c.RunDeadline,
	}
	for name, dst := range durations {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
		*dst = d
	}

	ints := map[string]*int{
		"FAILOVER_MAX_ATTEMPTS":       &c.MaxAttempts,
		"FAILOVER_NOTIFY_CONCURRENCY": &c.NotifyConcurrency,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
		*dst = n
	}

	return nil
}
