package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Result captures every outcome of a single probe. All failure modes are
// folded into the value: Probe never returns an error, so the runner needs
// no recovery path around it.
type Result struct {
	StatusCode   *int   `json:"status_code"`
	ElapsedMs    int    `json:"elapsed_ms"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message"`
}

type Prober struct {
	client  *http.Client
	timeout time.Duration
}

func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Prober{
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: false,
					MinVersion:         tls.VersionTLS12,
				},
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Probe issues one GET against target and classifies the outcome.
// Success is a 2xx status. HTTP failures carry "HTTP {code}", transport
// failures carry the error text and no status code. Elapsed time covers the
// whole attempt and is recorded on failure too.
func (p *Prober) Probe(ctx context.Context, target string) Result {
	fullURL, err := normalizeURL(target)
	if err != nil {
		return Result{Success: false, ErrorMessage: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return Result{Success: false, ErrorMessage: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("User-Agent", "PulseWatch/1.0")

	start := time.Now()
	resp, err := p.client.Do(req)
	elapsed := int(time.Since(start).Milliseconds())

	if err != nil {
		return Result{
			ElapsedMs:    elapsed,
			Success:      false,
			ErrorMessage: err.Error(),
		}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	code := resp.StatusCode
	success := code >= 200 && code < 300

	result := Result{
		StatusCode: &code,
		ElapsedMs:  elapsed,
		Success:    success,
	}
	if !success {
		result.ErrorMessage = fmt.Sprintf("HTTP %d", code)
	}

	return result
}

func normalizeURL(target string) (string, error) {
	// Host:port inputs parse as a scheme, so only trust http(s) as-is.
	if u, err := url.ParseRequestURI(target); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return target, nil
	}

	if httpURL, err := url.Parse("http://" + target); err == nil {
		return httpURL.String(), nil
	}

	return "", fmt.Errorf("invalid URL format: %s", target)
}
