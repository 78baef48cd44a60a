package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/regionfailover/internal/flagx"
	"github.com/dmitrijs2005/regionfailover/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	PrimaryRegion     string `json:"primary_region"`
	SecondaryRegion   string `json:"secondary_region"`
	UserPoolID        string `json:"user_pool_id"`
	PrimaryTopicARN   string `json:"primary_topic_arn"`
	SecondaryTopicARN string `json:"secondary_topic_arn"`

	AuthEndpoint      string `json:"auth_endpoint"`
	CallbackEndpoint  string `json:"callback_endpoint"`
	ClientID          string `json:"client_id"`
	ClientSecret      string `json:"client_secret"`
	WebsocketEndpoint string `json:"websocket_endpoint"`

	ParameterPrefix      string `json:"parameter_prefix"`
	ParameterDescription string `json:"parameter_description"`
	NotificationSubject  string `json:"notification_subject"`
	NotificationBody     string `json:"notification_body"`

	CallTimeout       timex.Duration `json:"call_timeout"`
	MaxAttempts       int            `json:"max_attempts"`
	RunDeadline       timex.Duration `json:"run_deadline"`
	NotifyConcurrency int            `json:"notify_concurrency"`

	AWSBaseEndpoint    string `json:"aws_base_endpoint"`
	AWSAccessKeyID     string `json:"aws_access_key_id"`
	AWSSecretAccessKey string `json:"aws_secret_access_key"`
	AWSSessionToken    string `json:"aws_session_token"`

	LogLevel string `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Without the
// flag nothing is loaded. Fields absent from the file keep their value.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	c.applyTo(config)
	return nil
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.PrimaryRegion, c.PrimaryRegion)
	setString(&config.SecondaryRegion, c.SecondaryRegion)
	setString(&config.UserPoolID, c.UserPoolID)
	setString(&config.PrimaryTopicARN, c.PrimaryTopicARN)
	setString(&config.SecondaryTopicARN, c.SecondaryTopicARN)
	setString(&config.AuthEndpoint, c.AuthEndpoint)
	setString(&config.CallbackEndpoint, c.CallbackEndpoint)
	setString(&config.ClientID, c.ClientID)
	setString(&config.ClientSecret, c.ClientSecret)
	setString(&config.WebsocketEndpoint, c.WebsocketEndpoint)
	setString(&config.ParameterPrefix, c.ParameterPrefix)
	setString(&config.ParameterDescription, c.ParameterDescription)
	setString(&config.NotificationSubject, c.NotificationSubject)
	setString(&config.NotificationBody, c.NotificationBody)
	setString(&config.AWSBaseEndpoint, c.AWSBaseEndpoint)
	setString(&config.AWSAccessKeyID, c.AWSAccessKeyID)
	setString(&config.AWSSecretAccessKey, c.AWSSecretAccessKey)
	setString(&config.AWSSessionToken, c.AWSSessionToken)
	setString(&config.LogLevel, c.LogLevel)

	if c.CallTimeout.Duration != 0 {
		config.CallTimeout = c.CallTimeout.Duration
	}
	if c.RunDeadline.Duration != 0 {
		config.RunDeadline = c.RunDeadline.Duration
	}
	if c.MaxAttempts != 0 {
		config.MaxAttempts = c.MaxAttempts
	}
	if c.NotifyConcurrency != 0 {
		config.NotifyConcurrency = c.NotifyConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
