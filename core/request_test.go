package core

import (
	"context"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idena-network/ecosystem-client/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_BuildRequestURL(t *testing.T) {
	client := newTestClient("https://api.example.com", nil)

	// When
	request, err := client.BuildRequest(context.Background(), "v1/offers", http.MethodGet, types.RequestOptions{
		Parameters: map[string]string{"a": "1"},
	})
	// Then
	require.Nil(t, err)
	require.Equal(t, "https://api.example.com/v1/offers?a=1", request.URL.String())
	require.Equal(t, http.MethodGet, request.Method)

	tcs := []struct {
		name       string
		baseURL    string
		path       string
		parameters map[string]string
		want       string
	}{
		{"leading slash", "https://api.example.com", "/v1/offers", nil, "https://api.example.com/v1/offers"},
		{"base path", "https://api.example.com/api/", "v1/offers", nil, "https://api.example.com/api/v1/offers"},
		{"escaped path", "https://api.example.com", "v1/offers/a b", nil, "https://api.example.com/v1/offers/a%20b"},
		{"sorted params", "https://api.example.com", "v1/offers", map[string]string{"b": "2", "a": "x y"}, "https://api.example.com/v1/offers?a=x+y&b=2"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(tc.baseURL, nil)
			request, err := client.BuildRequest(context.Background(), tc.path, http.MethodGet, types.RequestOptions{
				Parameters: tc.parameters,
			})
			require.Nil(t, err)
			require.Equal(t, tc.want, request.URL.String())
		})
	}
}

func Test_BuildRequestInvalid(t *testing.T) {
	tcs := []struct {
		name    string
		baseURL string
		path    string
		method  string
	}{
		{"relative base", "api.example.com", "v1/offers", http.MethodGet},
		{"unparseable base", "https://api.example.com:port", "v1/offers", http.MethodGet},
		{"bad escape", "https://api.example.com", "v1/%zz", http.MethodGet},
		{"bad method", "https://api.example.com", "v1/offers", "BAD METHOD"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(tc.baseURL, nil)
			request, err := client.BuildRequest(context.Background(), tc.path, tc.method, types.RequestOptions{})
			require.Nil(t, request)
			require.True(t, errors.Is(err, ErrRequestBuild))
		})
	}
}

func Test_BuildRequestHeaders(t *testing.T) {
	client := newTestClient("https://api.example.com", nil)

	// When
	request, err := client.BuildRequest(context.Background(), "v1/offers", http.MethodGet, types.RequestOptions{})
	// Then
	require.Nil(t, err)
	require.Empty(t, request.Header.Get("Authorization"))
	require.Equal(t, "application/json", request.Header.Get("content-type"))
	_, err = uuid.Parse(request.Header.Get("X-REQUEST-ID"))
	require.Nil(t, err)

	// When
	client.SetAuthToken(&types.AuthToken{Token: "abc", ExpirationDate: expiration(time.Hour)})
	request, err = client.BuildRequest(context.Background(), "v1/offers", http.MethodGet, types.RequestOptions{
		ContentType: types.ContentTypeText,
	})
	// Then
	require.Nil(t, err)
	require.Equal(t, "Bearer abc", request.Header.Get("Authorization"))
	require.Equal(t, "text/plain", request.Header.Get("content-type"))
}

func Test_BuildRequestExpiredPersistedToken(t *testing.T) {
	client := newTestClient("https://api.example.com", nil)
	persistToken(t, client.store, types.AuthToken{Token: "abc", ExpirationDate: expiration(-time.Minute)})

	request, err := client.BuildRequest(context.Background(), "v1/offers", http.MethodGet, types.RequestOptions{})
	require.Nil(t, err)
	require.Empty(t, request.Header.Get("Authorization"))
}

func Test_BuildRequestFreshRequestId(t *testing.T) {
	client := newTestClient("https://api.example.com", nil)
	client.SetAuthToken(&types.AuthToken{Token: "abc", ExpirationDate: expiration(time.Hour)})
	options := types.RequestOptions{
		Body:       []byte(`{"a":1}`),
		Parameters: map[string]string{"a": "1"},
	}

	// When
	request1, err1 := client.BuildRequest(context.Background(), "v1/offers", http.MethodPost, options)
	request2, err2 := client.BuildRequest(context.Background(), "v1/offers", http.MethodPost, options)
	// Then
	require.Nil(t, err1)
	require.Nil(t, err2)
	require.NotEqual(t, request1.Header.Get("X-REQUEST-ID"), request2.Header.Get("X-REQUEST-ID"))

	request1.Header.Del("X-REQUEST-ID")
	request2.Header.Del("X-REQUEST-ID")
	require.Equal(t, request1.Header, request2.Header)
	require.Equal(t, request1.URL.String(), request2.URL.String())
	require.Equal(t, request1.Method, request2.Method)
	body1, _ := ioutil.ReadAll(request1.Body)
	body2, _ := ioutil.ReadAll(request2.Body)
	require.Equal(t, `{"a":1}`, string(body1))
	require.Equal(t, body1, body2)
}
