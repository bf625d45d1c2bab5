// Package zones talks to the Sharedkube API. It owns the network
// contract of the CLI: token verification, zone listing and the
// per-zone credential exchange that feeds the kubeconfig update.
package zones

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"skctl/common"
	"skctl/common/endpoints"
	"skctl/common/headervalues"

	"github.com/avast/retry-go"
	"github.com/go-http-utils/headers"
	"github.com/golang/glog"
)

const (
	listRetryAttempts = 3
	listRetryDelay    = 2 * time.Second
)

type Client struct {
	apiHost    string
	httpClient common.HTTPClient
}

func NewClient(apiHost string, httpClient common.HTTPClient) *Client {
	if httpClient == nil {
		httpClient = common.NewHTTPClient()
	}
	return &Client{apiHost: apiHost, httpClient: httpClient}
}

// VerifyToken checks the token against the API and returns the identity
// of its owner. A 401 surfaces as AuthError.
func (c *Client) VerifyToken(ctx context.Context, token string) (*UserInfo, error) {
	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("couldn't encode token verification request: %w", err)
	}

	request, err := common.NewRequest(ctx, http.MethodPost, endpoints.TokensVerify(c.apiHost), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set(headers.ContentType, headervalues.ApplicationJson)

	bodyBytes, err := c.do(request)
	if err != nil {
		if statusCodeIs(err, http.StatusUnauthorized) {
			return nil, &common.AuthError{Reason: "invalid token"}
		}
		return nil, err
	}

	return common.DeserializeJSONForType[UserInfo](bodyBytes)
}

// List returns all zones the token may access, in the order the API
// reports them. Listing is retried on transient failure; retry policy
// lives here, not in the callers.
func (c *Client) List(ctx context.Context, token string) ([]Zone, error) {
	var zones []Zone

	err := retry.Do(
		func() error {
			glog.V(1).Info("info: fetching zones...")
			request, err := common.NewRequest(ctx, http.MethodGet, endpoints.Zones(c.apiHost), nil)
			if err != nil {
				return err
			}
			common.SetBearerToken(request, token)

			bodyBytes, err := c.do(request)
			if err != nil {
				return err
			}

			listed, err := common.DeserializeJSONForType[[]Zone](bodyBytes)
			if err != nil {
				return err
			}
			zones = *listed
			return nil
		},
		retry.Attempts(listRetryAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(listRetryDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return zones, nil
}

// GetByName resolves a zone name to its descriptor. Unknown names
// surface as NotFoundError.
func (c *Client) GetByName(ctx context.Context, token string, zoneName string) (*Zone, error) {
	request, err := common.NewRequest(ctx, http.MethodGet, endpoints.ZoneByName(c.apiHost, zoneName), nil)
	if err != nil {
		return nil, err
	}
	common.SetBearerToken(request, token)

	bodyBytes, err := c.do(request)
	if err != nil {
		if statusCodeIs(err, http.StatusNotFound) {
			return nil, &common.NotFoundError{Resource: "zone", Name: zoneName}
		}
		return nil, err
	}

	return common.DeserializeJSONForType[Zone](bodyBytes)
}

// GetCredential exchanges the zone ID for the zone-scoped connection
// material used to update the kubeconfig file.
func (c *Client) GetCredential(ctx context.Context, token string, zoneID string) (*ZoneCredential, error) {
	request, err := common.NewRequest(ctx, http.MethodGet, endpoints.ZoneKubeconfig(c.apiHost, zoneID), nil)
	if err != nil {
		return nil, err
	}
	common.SetBearerToken(request, token)

	bodyBytes, err := c.do(request)
	if err != nil {
		if statusCodeIs(err, http.StatusNotFound) {
			return nil, &common.NotFoundError{Resource: "zone", Name: zoneID}
		}
		return nil, err
	}
	glog.V(1).Infof("debug: zone credential response: %s", bodyBytes)

	return common.DeserializeJSONForType[ZoneCredential](bodyBytes)
}

// GetZoneToken fetches the raw zone-scoped token payload for a zone ID.
// The body is passed through untouched so kubectl credential plugins see
// exactly what the API returned.
func (c *Client) GetZoneToken(ctx context.Context, token string, zoneID string) ([]byte, error) {
	request, err := common.NewRequest(ctx, http.MethodGet, endpoints.ZoneToken(c.apiHost, zoneID), nil)
	if err != nil {
		return nil, err
	}
	common.SetBearerToken(request, token)

	bodyBytes, err := c.do(request)
	if err != nil {
		if statusCodeIs(err, http.StatusNotFound) {
			return nil, &common.NotFoundError{Resource: "zone", Name: zoneID}
		}
		return nil, err
	}

	return bodyBytes, nil
}

func (c *Client) do(request *http.Request) ([]byte, error) {
	response, err := c.httpClient.MakeRequest(request)
	if err != nil {
		return nil, fmt.Errorf("couldn't reach the API host: %w", err)
	}

	return common.GetBodyBytesFromResponse(response)
}

func statusCodeIs(err error, statusCode int) bool {
	var statusErr *common.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == statusCode
}

// isTransient keeps retries away from definite failures such as 401 or
// 404, which won't change on a second attempt.
func isTransient(err error) bool {
	var statusErr *common.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
