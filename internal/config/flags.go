package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/regionfailover/internal/flagx"
)

var configFlags = []string{
	"-primary-region", "-secondary-region", "-pool", "-primary-topic", "-secondary-topic",
	"-prefix", "-call-timeout", "-max-attempts", "-deadline", "-concurrency",
	"-aws-endpoint", "-log-level",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-primary-region string     region taking over the service
//	-secondary-region string   DR region holding the directory
//	-pool string               user pool id
//	-primary-topic string      broadcast topic ARN
//	-secondary-topic string    per-recipient topic ARN
//	-prefix string             parameter path prefix
//	-call-timeout duration     timeout of a single AWS call
//	-max-attempts int          attempts per AWS call
//	-deadline duration         deadline of the whole run (0 = none)
//	-concurrency int           identities notified at once within a page
//	-aws-endpoint string       endpoint override, e.g. LocalStack
//	-log-level string          debug|info|warn|error
//
// Secrets are not accepted on the command line.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], configFlags)

	fs := flag.NewFlagSet("failover", flag.ContinueOnError)

	fs.StringVar(&config.PrimaryRegion, "primary-region", config.PrimaryRegion, "primary region")
	fs.StringVar(&config.SecondaryRegion, "secondary-region", config.SecondaryRegion, "secondary (DR) region")
	fs.StringVar(&config.UserPoolID, "pool", config.UserPoolID, "user pool id")
	fs.StringVar(&config.PrimaryTopicARN, "primary-topic", config.PrimaryTopicARN, "primary topic ARN")
	fs.StringVar(&config.SecondaryTopicARN, "secondary-topic", config.SecondaryTopicARN, "secondary topic ARN")
	fs.StringVar(&config.ParameterPrefix, "prefix", config.ParameterPrefix, "parameter path prefix")
	fs.DurationVar(&config.CallTimeout, "call-timeout", config.CallTimeout, "timeout of a single AWS call")
	fs.IntVar(&config.MaxAttempts, "max-attempts", config.MaxAttempts, "attempts per AWS call")
	fs.DurationVar(&config.RunDeadline, "deadline", config.RunDeadline, "deadline of the whole run")
	fs.IntVar(&config.NotifyConcurrency, "concurrency", config.NotifyConcurrency, "identities notified at once")
	fs.StringVar(&config.AWSBaseEndpoint, "aws-endpoint", config.AWSBaseEndpoint, "AWS endpoint override")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	return fs.Parse(args)
}
