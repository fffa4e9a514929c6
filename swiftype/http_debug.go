package swiftype

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

var (
	authHeaderPattern = regexp.MustCompile(`(?mi)^(Authorization:)[^\r\n]*`)
	authTokenPattern  = regexp.MustCompile(`(auth_token=)[^&\s]+`)
)

// debugTransport dumps each request and response to the logger at debug level.
// Enable with WithDebugLogging or SWIFTYPE_DEBUG=true.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	target := redact(req.URL)

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", target).
			Str("request_dump", redactDump(reqDump)).
			Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", target).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", target).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

func redactDump(dump []byte) string {
	out := authHeaderPattern.ReplaceAll(dump, []byte("$1 [redacted]"))
	out = authTokenPattern.ReplaceAll(out, []byte("${1}[redacted]"))
	return string(out)
}

// debugLoggingRequested reports whether SWIFTYPE_DEBUG=true is set.
func debugLoggingRequested() bool {
	return os.Getenv("SWIFTYPE_DEBUG") == "true"
}
