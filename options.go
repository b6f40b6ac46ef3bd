// ABOUTME: Configuration options for the feedsync client
// ABOUTME: Explicit options take precedence over the environment and the config file

package feedsync

import (
	"feedsync/core/interfaces"
	"feedsync/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*options) error

type options struct {
	overrides config.Overrides
	transport interfaces.Transport
	cache     interfaces.Cache
	logger    interfaces.Logger
}

func defaultOptions() options {
	return options{}
}

// WithHost sets the server root URL
func WithHost(host string) Option {
	return func(o *options) error {
		o.overrides.Host = host
		return nil
	}
}

// WithCredentials sets the account username and password
func WithCredentials(username, password string) Option {
	return func(o *options) error {
		o.overrides.Username = username
		o.overrides.Password = password
		return nil
	}
}

// WithProtocol selects the wire protocol
func WithProtocol(protocol Protocol) Option {
	return func(o *options) error {
		if !protocol.Valid() {
			return NewConfigurationError("protocol", "protocol must be 'fever' or 'greader'")
		}
		o.overrides.Protocol = string(protocol)
		return nil
	}
}

// WithVerbose enables or disables debug logging
func WithVerbose(verbose bool) Option {
	return func(o *options) error {
		o.overrides.Verbose = &verbose
		return nil
	}
}

// WithConfigFile loads a YAML configuration file instead of $FEEDSYNC_CONFIG
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.overrides.ConfigFile = path
		return nil
	}
}

// WithTransport sets a custom HTTP transport
func WithTransport(transport interfaces.Transport) Option {
	return func(o *options) error {
		o.transport = transport
		return nil
	}
}

// WithCache sets a custom cache for sync checkpoints
func WithCache(cache interfaces.Cache) Option {
	return func(o *options) error {
		o.cache = cache
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(o *options) error {
		o.logger = QuietLogger()
		return nil
	}
}
