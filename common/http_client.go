package common

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-http-utils/headers"
)

type HTTPClient interface {
	MakeRequest(request *http.Request) (*http.Response, error)
}

type HTTPClientImpl struct{}

func NewHTTPClient() HTTPClient {
	return HTTPClientImpl{}
}

func (c HTTPClientImpl) MakeRequest(request *http.Request) (*http.Response, error) {
	httpClient := http.Client{}
	defer httpClient.CloseIdleConnections()
	return httpClient.Do(request)
}

func NewRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("couldn't build %s request for url %s: %w", method, url, err)
	}

	return request, nil
}

// SetBearerToken sets the Authorization header on the request.
func SetBearerToken(request *http.Request, token string) {
	request.Header.Set(headers.Authorization, "Bearer "+token)
}

// GetBodyBytesFromResponse reads and closes the response body. Non-2xx
// responses are returned as a StatusError alongside the body bytes so
// callers can map status codes onto their own error types.
func GetBodyBytesFromResponse(response *http.Response) ([]byte, error) {
	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		closeErr := response.Body.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("fatal: error reading response body\n%w\n%w", err, closeErr)
		}
		return nil, fmt.Errorf("fatal: error reading response body\n%w", err)
	}

	if err = response.Body.Close(); err != nil {
		return nil, fmt.Errorf("fatal: error closing response body\n%w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return bodyBytes, &StatusError{StatusCode: response.StatusCode, Status: response.Status, Body: bodyBytes}
	}

	return bodyBytes, nil
}
