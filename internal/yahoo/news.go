package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"tickerprovider/internal/source"
)

type searchEnvelope struct {
	News []map[string]any `json:"news"`
}

// News fetches recent articles for a symbol and reshapes them into the
// content-wrapper form the mapper understands: each wrapper holds a
// "content" object with id, title, contentType, pubDate, provider and
// canonicalUrl; the thumbnail tree passes through untouched.
func (c *Client) News(ctx context.Context, symbol string, count int) ([]source.Attrs, error) {
	if count <= 0 {
		count = 10
	}
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("newsCount", strconv.Itoa(count))
	q.Set("quotesCount", "0")

	var env searchEnvelope
	if err := c.getJSON(ctx, "/v1/finance/search", q, &env); err != nil {
		return nil, fmt.Errorf("news %s: %w", symbol, err)
	}

	wrappers := make([]source.Attrs, 0, len(env.News))
	for _, item := range env.News {
		raw := toValue(item)
		content := map[string]source.Value{
			"id":          raw.Get("uuid"),
			"title":       raw.Get("title"),
			"contentType": raw.Get("type"),
		}
		if pub := raw.Get("publisher"); !pub.IsAbsent() {
			content["provider"] = source.Map(map[string]source.Value{"displayName": pub})
		}
		if link := raw.Get("link"); !link.IsAbsent() {
			content["canonicalUrl"] = source.Map(map[string]source.Value{"url": link})
		}
		if ts, ok := coerceEpoch(raw.Get("providerPublishTime")); ok {
			content["pubDate"] = source.String(ts.Format(time.RFC3339))
		}
		if th := raw.Get("thumbnail"); !th.IsAbsent() {
			content["thumbnail"] = th
		}
		wrappers = append(wrappers, source.Attrs{"content": source.Map(content)})
	}
	return wrappers, nil
}
