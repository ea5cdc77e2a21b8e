package yahoo_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tickerprovider/internal/yahoo"
)

func TestNews_ReshapesSearchItems(t *testing.T) {
	t.Parallel()

	body := `{"news": [
	  {"uuid": "abc-123", "title": "Apple beats estimates", "publisher": "Reuters",
	   "link": "https://news.example/1", "providerPublishTime": 1715938200, "type": "STORY",
	   "thumbnail": {"resolutions": [{"url": "https://img.example/a.png", "width": 1200}]}},
	  {"uuid": "def-456", "title": "Bare article", "type": "STORY"}
	]}`

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	stubJSON(t, httpClient, body, func(req *http.Request) {
		require.Contains(t, req.URL.Path, "/v1/finance/search")
		require.Equal(t, "AAPL", req.URL.Query().Get("q"))
		require.Equal(t, "5", req.URL.Query().Get("newsCount"))
		require.Equal(t, "0", req.URL.Query().Get("quotesCount"))
	})
	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	wrappers, err := client.News(t.Context(), "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, wrappers, 2)

	content := wrappers[0].Get("content")
	id, _ := content.Get("id").Str()
	require.Equal(t, "abc-123", id)
	publisher, _ := content.Get("provider").Get("displayName").Str()
	require.Equal(t, "Reuters", publisher)
	link, _ := content.Get("canonicalUrl").Get("url").Str()
	require.Equal(t, "https://news.example/1", link)
	pubDate, _ := content.Get("pubDate").Str()
	require.Equal(t, "2024-05-17T09:30:00Z", pubDate)
	thumb, _ := content.Get("thumbnail").Get("resolutions").At(0).Get("url").Str()
	require.Equal(t, "https://img.example/a.png", thumb)

	// Sparse item: provider, link, pubDate and thumbnail simply absent.
	bare := wrappers[1].Get("content")
	require.True(t, bare.Get("provider").IsAbsent())
	require.True(t, bare.Get("pubDate").IsAbsent())
	title, _ := bare.Get("title").Str()
	require.Equal(t, "Bare article", title)
}

func TestNews_DefaultCount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	stubJSON(t, httpClient, `{"news": []}`, func(req *http.Request) {
		require.Equal(t, "10", req.URL.Query().Get("newsCount"))
	})
	client := yahoo.New(yahoo.WithHTTPClient(httpClient))

	wrappers, err := client.News(t.Context(), "AAPL", 0)
	require.NoError(t, err)
	require.Empty(t, wrappers)
}
