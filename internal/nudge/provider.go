package nudge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/focusflow/internal/constants"
)

// ErrProviderUnavailable is the generic failure returned when the content
// provider cannot produce a nudge. Callers recover with the fallback pools.
var ErrProviderUnavailable = errors.New("nudge provider unavailable")

// Request describes one nudge generation call.
type Request struct {
	Task           string         `json:"task"`
	Tone           constants.Tone `json:"tone"`
	ElapsedMinutes int            `json:"elapsed_minutes"`
}

// Provider generates nudge text for a running session. Implementations must
// be safe to call from a goroutine off the tick loop.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// HTTPProvider calls a remote generation endpoint with a JSON payload.
type HTTPProvider struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewHTTPProvider builds a provider for the given endpoint. The API key may
// be empty for unauthenticated endpoints.
func NewHTTPProvider(url, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: constants.ProviderTimeout},
	}
}

type generateResponse struct {
	Nudge string `json:"nudge"`
}

// Generate POSTs the request and returns the generated text. All transport
// and decoding failures collapse into ErrProviderUnavailable; the caller is
// expected to fall back, not to inspect the cause.
func (p *HTTPProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.URL == "" {
		return "", ErrProviderUnavailable
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: constants.ProviderTimeout}
	}

	res, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, res.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if strings.TrimSpace(out.Nudge) == "" {
		return "", fmt.Errorf("%w: empty response", ErrProviderUnavailable)
	}

	return out.Nudge, nil
}
