// Package config loads runtime configuration for the failover function.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables, which is how the function is configured when
//     deployed (see envBindings for the names).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Later sources only override a value when they set it.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "primary_region": "us-east-1",
//	  "secondary_region": "eu-west-1",
//	  "user_pool_id": "eu-west-1_AbCdEf",
//	  "primary_topic_arn": "arn:aws:sns:us-east-1:123456789012:notify",
//	  "secondary_topic_arn": "arn:aws:sns:eu-west-1:123456789012:notify",
//	  "call_timeout": "10s"
//	}
package config
