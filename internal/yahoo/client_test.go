package yahoo_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tickerprovider/internal/yahoo"
)

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"optionChain":{"result":[{}],"error":null}}`)),
			}, nil
		}).
		Times(1)

	// Arrange: create a new client with the overridden base URL.
	client := yahoo.New(yahoo.WithHTTPClient(httpClient), yahoo.WithBaseURL(baseURL))
	require.NotNil(t, client)

	// Act: perform a request against the overridden base URL.
	_, err := client.OptionExpirations(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestWithUserAgentAndHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "custom-agent/2.0", req.Header.Get("User-Agent"))
			require.Equal(t, "abc", req.Header.Get("X-Custom"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"optionChain":{"result":[{}],"error":null}}`)),
			}, nil
		}).
		Times(1)

	client := yahoo.New(
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithUserAgent("custom-agent/2.0"),
		yahoo.WithHeader(http.Header{"X-Custom": []string{"abc"}}),
	)

	_, err := client.OptionExpirations(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestNon2xxStatusIsAnError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"message":"rate limited"}`)),
			}, nil
		}).
		Times(1)

	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	_, err := client.OptionExpirations(t.Context(), "AAPL")
	require.ErrorContains(t, err, "429")
	require.ErrorContains(t, err, "rate limited")
}
