package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when an upstream answers with a non 2xx status
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status from %s: %s", e.URL, e.Status)
}

// IsNotFound reports whether err is a 404 from an upstream
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsUnavailable reports whether err is an upstream server error or a rate limit that outlived the retries
func IsUnavailable(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.StatusCode >= http.StatusInternalServerError || se.StatusCode == http.StatusTooManyRequests)
}

// GetJSON issues a GET request and decodes the JSON body into out
func GetJSON(ctx context.Context, client HTTPClient, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	return doJSON(client, req, out)
}

// PostJSON encodes body as JSON, posts it and decodes the JSON response into out
func PostJSON(ctx context.Context, client HTTPClient, url string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return doJSON(client, req, out)
}

func doJSON(client HTTPClient, req *http.Request, out any) error {
	res, err := client.Do(req)
	if err != nil {
		// a rate limited client hands back its last response with the error
		if res != nil {
			res.Body.Close()
			return fmt.Errorf("%w: %w", &StatusError{StatusCode: res.StatusCode, Status: res.Status, URL: req.URL.Redacted()}, err)
		}
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, res.Body)
		return &StatusError{StatusCode: res.StatusCode, Status: res.Status, URL: req.URL.Redacted()}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Redacted(), err)
	}

	return nil
}
