package source

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"eventsphere/internal/domain/event"
)

// Insider scrapes the public event-listing pages of insider.in. A network or
// parse failure here is a real fetch error; there is no credential, so there
// is no fallback path.
type Insider struct {
	baseURL     string
	allowedHost string
}

func NewInsider(baseURL string) *Insider {
	s := &Insider{baseURL: strings.TrimSpace(baseURL)}
	if s.baseURL == "" {
		s.baseURL = "https://insider.in"
	}
	s.allowedHost = hostFromBaseURL(s.baseURL)
	return s
}

func (s *Insider) ID() string      { return "insider" }
func (s *Insider) Name() string    { return "Insider" }
func (s *Insider) BaseURL() string { return s.baseURL }
func (s *Insider) RateLimit() int  { return 2 }
func (s *Insider) Verified() bool  { return false }

func (s *Insider) Fetch(ctx context.Context) ([]event.RawRecord, []string, error) {
	if s == nil {
		return nil, nil, fmt.Errorf("nil adapter")
	}

	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	recs := make([]event.RawRecord, 0)
	c.OnHTML("div.event-card", func(e *colly.HTMLElement) {
		id := strings.TrimSpace(e.Attr("data-event-id"))
		if id == "" {
			return
		}
		rec := event.RawRecord{
			ID:          id,
			Title:       strings.TrimSpace(e.ChildText("h3")),
			Description: strings.TrimSpace(e.ChildText("p.event-desc")),
			Date:        strings.TrimSpace(e.ChildText("span.event-date")),
			Time:        strings.TrimSpace(e.ChildText("span.event-time")),
			Venue:       strings.TrimSpace(e.ChildText("span.event-venue")),
			City:        strings.TrimSpace(e.ChildText("span.event-city")),
			Price:       strings.TrimSpace(e.ChildText("span.event-price")),
			Category:    strings.TrimSpace(e.Attr("data-category")),
			ImageURL:    strings.TrimSpace(e.ChildAttr("img", "src")),
		}
		if href := strings.TrimSpace(e.ChildAttr("a", "href")); href != "" {
			rec.SourceURL = e.Request.AbsoluteURL(href)
		}
		recs = append(recs, rec)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	listURL := strings.TrimRight(s.baseURL, "/") + "/all-events"
	if err := c.Visit(listURL); err != nil {
		return nil, nil, fmt.Errorf("insider fetch: %w", err)
	}
	c.Wait()
	if reqErr != nil {
		return nil, nil, fmt.Errorf("insider fetch: %w", reqErr)
	}

	return recs, nil, nil
}

func hostFromBaseURL(base string) string {
	base = strings.TrimSpace(base)
	u, err := url.Parse(base)
	if err != nil {
		return "insider.in"
	}
	host := u.Host
	if host == "" {
		return "insider.in"
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
