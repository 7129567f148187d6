package txparams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultHttpTimeout = 30 * time.Second
	maxErrorBodyLen    = 512
)

type httpResponseGetter struct {
	client *http.Client
}

// NewHttpResponseGetter returns a new instance of the JSON over HTTP response getter
func NewHttpResponseGetter() (*httpResponseGetter, error) {
	return &httpResponseGetter{
		client: &http.Client{
			Timeout: defaultHttpTimeout,
		},
	}, nil
}

// Get does a GET request on the provided URL and unmarshals the JSON body into the response
func (getter *httpResponseGetter) Get(ctx context.Context, url string, response interface{}) error {
	if response == nil {
		return ErrNilResponse
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	return getter.do(request, response)
}

// Post does a POST request with the JSON encoded body on the provided URL and unmarshals the JSON body into the response
func (getter *httpResponseGetter) Post(ctx context.Context, url string, body interface{}, response interface{}) error {
	if response == nil {
		return ErrNilResponse
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json")

	return getter.do(request, response)
}

func (getter *httpResponseGetter) do(request *http.Request, response interface{}) error {
	resp, err := getter.client.Do(request)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return fmt.Errorf("%w %d from %s: %s", ErrHttpStatus, resp.StatusCode, request.URL.Path, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(response)
}

// IsInterfaceNil returns true if there is no value under the interface
func (getter *httpResponseGetter) IsInterfaceNil() bool {
	return getter == nil
}
