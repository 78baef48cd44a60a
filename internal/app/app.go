// Package app wires configuration, logging and the AWS collaborators into a
// failover orchestrator and exposes it as a Lambda handler.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/dmitrijs2005/regionfailover/internal/awsx"
	"github.com/dmitrijs2005/regionfailover/internal/config"
	"github.com/dmitrijs2005/regionfailover/internal/failover"
	"github.com/dmitrijs2005/regionfailover/internal/logging"
)

var newClients = awsx.NewClients

type App struct {
	config       *config.Config
	logger       logging.Logger
	orchestrator *failover.Orchestrator
}

// NewApp validates c, builds the JSON logger and the AWS clients.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSON(os.Stdout, level)

	clients, err := newClients(ctx, awsx.Options{
		PrimaryRegion:   c.PrimaryRegion,
		SecondaryRegion: c.SecondaryRegion,
		AccessKeyID:     c.AWSAccessKeyID,
		SecretAccessKey: c.AWSSecretAccessKey,
		SessionToken:    c.AWSSessionToken,
		BaseEndpoint:    c.AWSBaseEndpoint,
		MaxAttempts:     c.MaxAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("aws init error: %w", err)
	}

	return NewAppWithDependencies(c, failover.Dependencies{
		Directory:  clients.Directory,
		Notifier:   clients.Notifier,
		Parameters: clients.Parameters,
	}, logger)
}

// NewAppWithDependencies builds the app around already constructed collaborators.
func NewAppWithDependencies(c *config.Config, deps failover.Dependencies, logger logging.Logger) (*App, error) {
	o, err := failover.NewOrchestrator(deps, Settings(c), logger)
	if err != nil {
		return nil, err
	}
	return &App{config: c, logger: logger, orchestrator: o}, nil
}

// Settings derives the run settings from configuration.
func Settings(c *config.Config) failover.Settings {
	return failover.Settings{
		PoolRef:        c.UserPoolID,
		PrimaryTopic:   c.PrimaryTopicARN,
		SecondaryTopic: c.SecondaryTopicARN,
		Message: failover.Message{
			Subject: c.NotificationSubject,
			Body:    c.NotificationBody,
		},
		Entries: failover.FixedEntries(c.ParameterPrefix, c.ParameterDescription, failover.RegionEndpoints{
			AuthEndpoint:      c.AuthEndpoint,
			CallbackEndpoint:  c.CallbackEndpoint,
			ClientID:          c.ClientID,
			ClientSecret:      c.ClientSecret,
			WebsocketEndpoint: c.WebsocketEndpoint,
		}),
		CallTimeout:       c.CallTimeout,
		RunDeadline:       c.RunDeadline,
		NotifyConcurrency: c.NotifyConcurrency,
	}
}

// Handle is the Lambda entry point. The event is only logged. The response
// is always 200 with a plain-text summary; degraded runs are flagged in a
// header and in the summary itself.
func (app *App) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = logging.ContextWith(ctx, "request_id", lc.AwsRequestID)
	}

	var payload any = event
	if len(event) == 0 {
		payload = nil
	}

	res := app.orchestrator.Run(ctx, payload)
	app.logger.Info(ctx, "invocation completed", "run_id", res.RunID, "degraded", res.Degraded)

	return toResponse(res), nil
}

func toResponse(res failover.RunResult) events.APIGatewayProxyResponse {
	status := "complete"
	if res.Degraded {
		status = "degraded"
	}
	code := res.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers: map[string]string{
			"Content-Type":      "text/plain; charset=utf-8",
			"X-Failover-Run-Id": res.RunID,
			"X-Failover-Status": status,
		},
		Body: res.Summary,
	}
}

// RunOnce performs a single run outside Lambda and writes the response as
// JSON to w.
func (app *App) RunOnce(ctx context.Context, w io.Writer) error {
	resp, err := app.Handle(ctx, json.RawMessage(`{"source":"cli"}`))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
