package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// ErrEmptyCompletion marks a provider reply that carried no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

var statusRe = regexp.MustCompile(`(?i)(?:status(?: code)?|http)[ :=]*([1-5]\d\d)\b`)

// Classify wraps err as a ProviderFault for provider. Errors that already
// carry a fault are returned unchanged.
func Classify(provider Provider, err error) error {
	if err == nil {
		return nil
	}
	var fault *contractx.ProviderFault
	if errors.As(err, &fault) {
		return err
	}
	return &contractx.ProviderFault{
		Provider: string(provider),
		Kind:     kindFor(err),
		Err:      err,
	}
}

func malformed(provider Provider, format string, args ...any) error {
	return &contractx.ProviderFault{
		Provider: string(provider),
		Kind:     contractx.FaultMalformedResponse,
		Err:      fmt.Errorf("%w: "+format, append([]any{ErrEmptyCompletion}, args...)...),
	}
}

func kindFor(err error) contractx.FaultKind {
	if errors.Is(err, ErrEmptyCompletion) {
		return contractx.FaultMalformedResponse
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return contractx.FaultTimeout
	}
	if errors.Is(err, context.Canceled) {
		return contractx.FaultCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return contractx.FaultTimeout
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return contractx.FaultMalformedResponse
	}

	switch status := statusOf(err); {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return contractx.FaultAuth
	case status == http.StatusTooManyRequests:
		return contractx.FaultRateLimit
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return contractx.FaultTimeout
	default:
		return contractx.FaultUpstream
	}
}

// statusOf digs the HTTP status out of the SDK error types, falling back to
// the error text for clients that only format it.
func statusOf(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return anErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return gErrPtr.Code
	}
	if m := statusRe.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code
	}
	return 0
}
