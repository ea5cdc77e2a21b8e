package mapper

import (
	"time"

	"tickerprovider/internal/coerce"
	"tickerprovider/internal/model"
	"tickerprovider/internal/source"
)

// News maps article wrappers into normalized articles, at most count of
// them (10 when count is not positive). Extraction is defensive at every
// nesting level: a missing nested key yields an empty leaf, never an error.
// A pubDate that fails to parse drops only the timestamp, not the article.
func News(wrappers []source.Attrs, count int) []model.NewsArticle {
	if count <= 0 {
		count = 10
	}
	if len(wrappers) > count {
		wrappers = wrappers[:count]
	}
	out := make([]model.NewsArticle, 0, len(wrappers))
	for _, w := range wrappers {
		content := w.Get("content")
		if content.Kind() != source.KindMap {
			// Older payloads carry the article fields on the wrapper itself.
			content = source.Map(w)
		}
		a := model.NewsArticle{
			ID:          coerce.Str(content.Get("id")),
			Title:       coerce.Str(content.Get("title")),
			Publisher:   coerce.Str(content.Get("provider").Get("displayName")),
			Link:        coerce.Str(content.Get("canonicalUrl").Get("url")),
			ContentType: coerce.Str(content.Get("contentType")),
			Thumbnail:   thumbnailURL(content.Get("thumbnail")),
		}
		if s, ok := content.Get("pubDate").Str(); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				t = t.UTC()
				a.PublishTime = &t
			}
		}
		out = append(out, a)
	}
	return out
}

// thumbnailURL resolves the two-tier thumbnail lookup: first entry of the
// resolution list when present, otherwise the single originalUrl field.
func thumbnailURL(th source.Value) string {
	if res := th.Get("resolutions"); res.Len() > 0 {
		return coerce.Str(res.At(0).Get("url"))
	}
	return coerce.Str(th.Get("originalUrl"))
}

// CalendarEntry maps the nested calendar structure. Each section exists on
// the output only when the source supplied it.
func CalendarEntry(a source.Attrs) model.Calendar {
	var cal model.Calendar
	if dates := a.Get("Earnings Date"); dates.Len() > 0 {
		var w model.EarningsWindow
		if t, ok := coerce.Timestamp(dates.At(0)); ok {
			w.Start = &t
		}
		if t, ok := coerce.Timestamp(dates.At(1)); ok {
			w.End = &t
		}
		if w.Start != nil || w.End != nil {
			cal.Earnings = &w
		}
	}
	if t, ok := coerce.Timestamp(a.Get("Ex-Dividend Date")); ok {
		cal.ExDividendDate = &t
	}
	return cal
}
