package swapi

import "time"

const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 1
	maxConcurrency     = 20
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout       time.Duration
	maxRetries    int
	userAgent     string
	lenientStatus bool
	concurrency   int
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:     defaultTimeout,
		concurrency: defaultConcurrency,
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of retry attempts. Zero means one attempt.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithLenientStatus keeps going after a non-200 response: the status is
// logged and the body is still decoded.
func WithLenientStatus(lenient bool) Option {
	return func(o *clientOptions) {
		o.lenientStatus = lenient
	}
}

// WithConcurrency bounds how many references Resolve fetches at once.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n >= 1 {
			o.concurrency = min(n, maxConcurrency)
		}
	}
}
