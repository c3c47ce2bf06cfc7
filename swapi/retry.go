package swapi

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// newHTTPClient builds the retrying transport. With zero retries every
// request gets exactly one attempt and non-200 responses pass through untouched.
func newHTTPClient(opts clientOptions, logger zerolog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.timeout
	rc.RetryMax = opts.maxRetries
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = retryLogger{logger: logger}

	return rc.StandardClient()
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

// Debug is dropped to trace: retryablehttp logs every single attempt here.
func (l retryLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
