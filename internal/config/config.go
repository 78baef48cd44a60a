package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for a failover run.
//
// Fields:
//   - PrimaryRegion / SecondaryRegion: the region being failed over to keeps its
//     parameter store and primary topic; the directory and secondary topic live
//     in the secondary (DR) region.
//   - UserPoolID: directory pool walked for identities.
//   - PrimaryTopicARN / SecondaryTopicARN: broadcast topic and per-recipient topic.
//   - AuthEndpoint ... WebsocketEndpoint: values propagated to the parameter store.
//     ClientSecret is stored as a SecureString.
//   - CallTimeout / MaxAttempts: bound every AWS call.
//   - RunDeadline: optional bound on the whole run; zero means none.
//   - NotifyConcurrency: identities notified at once within a page.
//   - AWSBaseEndpoint / AWSAccessKeyID / AWSSecretAccessKey / AWSSessionToken:
//     emulator or static credential settings; without an access key the
//     default credential chain is used.
type Config struct {
	PrimaryRegion     string
	SecondaryRegion   string
	UserPoolID        string
	PrimaryTopicARN   string
	SecondaryTopicARN string

	AuthEndpoint      string
	CallbackEndpoint  string
	ClientID          string
	ClientSecret      string
	WebsocketEndpoint string

	ParameterPrefix      string
	ParameterDescription string

	NotificationSubject string
	NotificationBody    string

	CallTimeout       time.Duration
	MaxAttempts       int
	RunDeadline       time.Duration
	NotifyConcurrency int

	AWSBaseEndpoint    string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSSessionToken    string

	LogLevel string
}

// LoadDefaults populates Config with values that need no deployment input.
// Region identifiers, topics, the pool and the propagated values have no
// defaults.
func (c *Config) LoadDefaults() {
	c.PrimaryRegion = "us-east-1"
	c.SecondaryRegion = "eu-west-1"
	c.ParameterPrefix = "/photoblog"
	c.ParameterDescription = "Updated parameter in primary region"
	c.NotificationSubject = "Password Reset Instructions - Action Required"
	c.NotificationBody = "Visit the login page and click on forgot password."
	c.CallTimeout = 10 * time.Second
	c.MaxAttempts = 3
	c.RunDeadline = 0
	c.NotifyConcurrency = 1
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every required setting that is missing or out of range.
func (c *Config) Validate() error {
	var errs []error
	required := []struct {
		name  string
		value string
	}{
		{"primary region", c.PrimaryRegion},
		{"secondary region", c.SecondaryRegion},
		{"user pool id", c.UserPoolID},
		{"primary topic arn", c.PrimaryTopicARN},
		{"secondary topic arn", c.SecondaryTopicARN},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts))
	}
	if c.CallTimeout < 0 || c.RunDeadline < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if c.NotifyConcurrency < 1 {
		errs = append(errs, fmt.Errorf("notify concurrency must be at least 1, got %d", c.NotifyConcurrency))
	}
	return errors.Join(errs...)
}
