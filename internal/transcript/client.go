// Package transcript fetches stored transcript text from the speech
// pipeline's output location. The speech-to-text system itself is an
// external collaborator; this client only downloads what it already
// produced.
package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"autoqa-go/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

// Fetch downloads the transcript text at url, retrying transient failures
// with exponential backoff. Client errors (4xx) are permanent.
func Fetch(ctx context.Context, url string) (string, error) {
	log := logger.New().WithComponent("transcript").WithField("url", url)

	var text string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warn("transcript fetch failed, will retry")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("transcript fetch status %d", resp.StatusCode))
		}
		text = string(body)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	return text, nil
}
