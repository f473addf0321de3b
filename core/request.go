package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

const (
	authorizationHeader = "Authorization"
	contentTypeHeader   = "content-type"
	requestIdHeader     = "X-REQUEST-ID"
)

// BuildRequest joins path to the configured base url and attaches the body, the bearer token when one is
// available, the content type and a fresh request id. Every call gets a new request id.
func (c *RestClient) BuildRequest(ctx context.Context, path, method string, options types.RequestOptions) (*http.Request, error) {
	requestURL, err := c.buildURL(path, options.Parameters)
	if err != nil {
		log.Error(fmt.Sprintf("building request failed: (%v, %v, %d bytes, %v): %v", path, method, len(options.Body), options.Parameters, err))
		return nil, newNetError(KindRequestBuild, err)
	}
	var body io.Reader
	if options.Body != nil {
		body = bytes.NewReader(options.Body)
	}
	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		log.Error(fmt.Sprintf("url invalid: (%v, %v, %d bytes, %v): %v", path, method, len(options.Body), options.Parameters, err))
		return nil, newNetError(KindRequestBuild, err)
	}
	if token := c.AuthToken(); token != nil {
		request.Header.Add(authorizationHeader, "Bearer "+token.Token)
	}
	contentType := options.ContentType
	if contentType == "" {
		contentType = types.ContentTypeJson
	}
	request.Header.Add(contentTypeHeader, string(contentType))
	request.Header.Add(requestIdHeader, uuid.New().String())
	return request, nil
}

// buildURL emits query parameters sorted by key.
func (c *RestClient) buildURL(path string, parameters map[string]string) (string, error) {
	base, err := url.Parse(c.configuration.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid base url")
	}
	if !base.IsAbs() || base.Host == "" {
		return "", errors.Errorf("base url %q is not absolute", c.configuration.BaseURL)
	}
	if _, err := url.PathUnescape(path); err != nil {
		return "", errors.Wrapf(err, "invalid path %q", path)
	}
	requestURL := base.JoinPath(path)
	if len(parameters) > 0 {
		query := url.Values{}
		for key, value := range parameters {
			query.Add(key, value)
		}
		requestURL.RawQuery = query.Encode()
	}
	res := requestURL.String()
	if _, err := url.ParseRequestURI(res); err != nil {
		return "", errors.Wrapf(err, "invalid url %q", res)
	}
	return res, nil
}
