package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacesedan/lyricflow/internal/translation"
)

const (
	GOOGLE_TRANSLATE_ENDPOINT = "https://translate.googleapis.com/translate_a/single"
	GOOGLE_PROVIDER           = "google"
)

var errRetryable = errors.New("retryable response")

// GoogleTranslateClient talks to the public Google Translate web endpoint.
type GoogleTranslateClient struct {
	Client         *http.Client
	Endpoint       string
	MaxRetries     int
	InitialBackoff time.Duration
}

func NewGoogleTranslateClient(endpoint string, timeout time.Duration) (*GoogleTranslateClient, error) {
	if endpoint == "" {
		endpoint = GOOGLE_TRANSLATE_ENDPOINT
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[GoogleTranslateClient] invalid endpoint %q", endpoint)
	}

	slog.Info("[GoogleTranslateClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))

	return &GoogleTranslateClient{
		Client:         &http.Client{Timeout: timeout},
		Endpoint:       endpoint,
		MaxRetries:     MAX_RETRIES,
		InitialBackoff: INITIAL_BACKOFF,
	}, nil
}

func (g *GoogleTranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if source == "" || target == "" {
		return "", fmt.Errorf("[GoogleTranslateClient] source and target languages are required")
	}

	start := time.Now()
	body, err := g.postWithRetry(ctx, text, source, target)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		slog.Error("[GoogleTranslateClient] Translation request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", translation.Failure(GOOGLE_PROVIDER, err)
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		slog.Error("[GoogleTranslateClient] Failed to parse response",
			slog.String("error", err.Error()),
			getPreview(body))
		return "", translation.Failure(GOOGLE_PROVIDER, err)
	}

	slog.Debug("[GoogleTranslateClient] Translation request successful",
		slog.Duration("elapsed", time.Since(start)))
	return translated, nil
}

// HealthCheck translates a single word and reports whether it worked.
func (g *GoogleTranslateClient) HealthCheck(ctx context.Context) bool {
	_, err := g.Translate(ctx, "hola", "es", "en")
	return err == nil
}

func (g *GoogleTranslateClient) postWithRetry(ctx context.Context, text, source, target string) ([]byte, error) {
	var lastErr error
	backoff := g.InitialBackoff

	for attempt := 0; attempt < g.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > MAX_BACKOFF {
				backoff = MAX_BACKOFF
			}
		}

		body, err := g.post(ctx, text, source, target)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) && !isTransportError(err) {
			return nil, err
		}

		slog.Warn("[GoogleTranslateClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", g.MaxRetries, lastErr)
}

func (g *GoogleTranslateClient) post(ctx context.Context, text, source, target string) ([]byte, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")

	form := url.Values{}
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint+"?"+query.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("status code %d: %w", resp.StatusCode, errRetryable)
	default:
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
}

// parseGoogleResponse reads the nested array reply:
// [[["translated","original",...],...],null,"es",...]
func parseGoogleResponse(body []byte) (string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("empty response")
	}

	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("failed to unmarshal segments: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if part, ok := segment[0].(string); ok {
			sb.WriteString(part)
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("response contained no translated text")
	}
	return sb.String(), nil
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransportError(err error) bool {
	var tErr *transportError
	return errors.As(err, &tErr)
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
