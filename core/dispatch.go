package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// DataRequest sends the request and returns the response body, which must be non-empty.
// Only status 200 counts as success.
func (c *RestClient) DataRequest(request *http.Request) ([]byte, error) {
	statusCode, data, err := c.do(request)
	if err != nil {
		log.Error(fmt.Sprintf("request %v failed, network error: %v", request.URL, err))
		return nil, newNetError(KindNetwork, err)
	}
	if len(data) == 0 {
		log.Error(fmt.Sprintf("request %v failed, no data received", request.URL))
		return nil, newNetError(KindNoDataInResponse, nil)
	}
	if statusCode != http.StatusOK {
		return nil, statusError(request, statusCode, data)
	}
	return data, nil
}

// Request sends the request and discards the response body. Only status 200 counts as success.
func (c *RestClient) Request(request *http.Request) error {
	statusCode, data, err := c.do(request)
	if err != nil {
		log.Error(fmt.Sprintf("request %v failed, network error: %v", request.URL, err))
		return newNetError(KindNetwork, err)
	}
	if statusCode != http.StatusOK {
		return statusError(request, statusCode, data)
	}
	return nil
}

func (c *RestClient) do(request *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "unable to read response")
	}
	return resp.StatusCode, data, nil
}

func statusError(request *http.Request, statusCode int, data []byte) error {
	if responseError, ok := parseResponseError(data); ok {
		log.Error(fmt.Sprintf("request %v failed, service ok but returned %v (status %d)", request.URL, responseError.Code, statusCode))
		return newServiceError(responseError)
	}
	log.Error(fmt.Sprintf("request %v failed for unknown reason, status %d", request.URL, statusCode))
	return newNetError(KindUnknown, nil)
}

// parseResponseError accepts only json objects carrying non-null code and message.
func parseResponseError(data []byte) (*types.ResponseError, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	for _, key := range []string{"code", "message"} {
		value, present := fields[key]
		if !present || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, false
		}
	}
	var responseError types.ResponseError
	if err := json.Unmarshal(data, &responseError); err != nil {
		return nil, false
	}
	return &responseError, true
}

// DecodeResponse decodes a successful response body into T.
func DecodeResponse[T any](data []byte) (T, error) {
	var res T
	if err := json.Unmarshal(data, &res); err != nil {
		log.Error(fmt.Sprintf("unable to decode response: %v", err))
		return res, newNetError(KindResponseParseError, err)
	}
	return res, nil
}
