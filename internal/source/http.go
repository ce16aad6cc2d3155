package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "EventSphereAggregator/0.1"

func httpGetWithRetry(ctx context.Context, client *http.Client, url string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var body []byte
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				return
			}
			b, err := readAllLimit(resp.Body, 5<<20)
			if err != nil {
				lastErr = err
				return
			}
			lastErr = nil
			body = b
		}()
		if lastErr == nil {
			return body, nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return nil, lastErr
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
