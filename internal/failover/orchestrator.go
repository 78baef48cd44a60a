package failover

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/regionfailover/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var newRunID = uuid.NewString

// Dependencies are the external collaborators of a run.
type Dependencies struct {
	Directory  Directory
	Notifier   Notifier
	Parameters ParameterStore
}

// Settings is the fixed configuration of a run.
type Settings struct {
	PoolRef        string
	PrimaryTopic   string
	SecondaryTopic string
	Message        Message
	Entries        []ParameterEntry

	// CallTimeout bounds every collaborator call; zero disables it.
	CallTimeout time.Duration
	// RunDeadline bounds the whole run; zero leaves only the caller's deadline.
	RunDeadline time.Duration
	// NotifyConcurrency > 1 notifies identities of a page in parallel.
	NotifyConcurrency int
}

// RunResult is the auditable outcome handed back to the trigger.
type RunResult struct {
	RunID      string
	StatusCode int
	Summary    string
	Degraded   bool
	Outcome    RunOutcome
}

// Orchestrator runs propagation and then the directory walk.
type Orchestrator struct {
	propagator *ConfigPropagator
	walker     *DirectoryWalker
	entries    []ParameterEntry
	deadline   time.Duration
	logger     logging.Logger
}

func NewOrchestrator(deps Dependencies, s Settings, logger logging.Logger) (*Orchestrator, error) {
	switch {
	case deps.Directory == nil:
		return nil, errors.New("directory is required")
	case deps.Notifier == nil:
		return nil, errors.New("notifier is required")
	case deps.Parameters == nil:
		return nil, errors.New("parameter store is required")
	case logger == nil:
		return nil, errors.New("logger is required")
	}

	dispatcher := NewNotificationDispatcher(deps.Notifier, s.PrimaryTopic, s.SecondaryTopic, s.Message, logger, s.CallTimeout)

	return &Orchestrator{
		propagator: NewConfigPropagator(deps.Parameters, logger, s.CallTimeout),
		walker: NewDirectoryWalker(deps.Directory, s.PoolRef, dispatcher, logger,
			WithCallTimeout(s.CallTimeout), WithConcurrency(s.NotifyConcurrency)),
		entries:  s.Entries,
		deadline: s.RunDeadline,
		logger:   logger,
	}, nil
}

// Run executes one failover pass for the triggering event. It always
// returns a result: propagation and walk failures are reported in the
// summary, and so is a panic inside the run.
func (o *Orchestrator) Run(ctx context.Context, event any) (res RunResult) {
	runID := newRunID()
	logger := o.logger.With("run_id", runID)

	ctx, span := tracer.Start(ctx, "Failover.Orchestrator.Run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	if o.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.deadline)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("unexpected fault: %v", r)
			recordSpanError(span, err)
			logger.Error(ctx, "failover run aborted", "error", err)
			res.RunID = runID
			res.StatusCode = http.StatusOK
			res.Degraded = true
			res.Summary = summarize(runID, res.Outcome) + "; run aborted: " + err.Error()
		}
	}()

	logger.Info(ctx, "failover triggered", "event", event)

	if err := o.propagator.Propagate(ctx, o.entries); err != nil {
		res.Outcome.ConfigErr = err
		logger.Error(ctx, "configuration propagation failed, continuing with notifications", "error", err)
	} else {
		res.Outcome.ConfigPropagated = true
	}

	o.walker.walk(ctx, &res.Outcome)
	walk := res.Outcome

	res.RunID = runID
	res.StatusCode = http.StatusOK
	res.Degraded = isDegraded(walk)
	res.Summary = summarize(runID, walk)

	span.SetAttributes(attribute.Bool("degraded", res.Degraded))
	logger.Info(ctx, "failover run finished",
		"config_propagated", walk.ConfigPropagated,
		"processed", walk.Processed,
		"skipped", walk.Skipped,
		"failed", walk.Failed,
		"terminated", walk.Terminated,
		"degraded", res.Degraded,
	)
	return res
}

func isDegraded(o RunOutcome) bool {
	return !o.ConfigPropagated || o.Terminated || o.Failed > 0
}

func summarize(runID string, o RunOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failover run %s: ", runID)
	if o.ConfigPropagated {
		b.WriteString("configuration propagated")
	} else if o.ConfigErr != nil {
		fmt.Fprintf(&b, "configuration propagation failed (%v)", o.ConfigErr)
	} else {
		b.WriteString("configuration not propagated")
	}
	fmt.Fprintf(&b, "; identities processed=%d skipped=%d failed=%d across %d page(s)",
		o.Processed, o.Skipped, o.Failed, o.Pages)
	if o.Terminated {
		fmt.Fprintf(&b, "; enumeration terminated early (%v)", o.FetchErr)
	}
	return b.String()
}
