package feed

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/yanun0323/errors"
	"golang.org/x/net/html"
)

const (
	maxSummaryRunes  = 500
	placeholderTitle = "(untitled)"
)

// Candidate is a parsed, not-yet-persisted entry extracted from a
// feed payload.
type Candidate struct {
	Link        string
	Title       string
	Summary     string
	PublishedAt time.Time
}

// Normalize parses a raw feed payload into candidates, also reporting
// how many entries were dropped. An unparsable payload fails the
// whole feed; a malformed entry is dropped on its own without
// touching its siblings. Entries without a well-formed absolute link
// are dropped, a blank title becomes a placeholder, and a missing
// publish time defaults to fetchedAt.
func Normalize(body []byte, fetchedAt time.Time) ([]Candidate, int, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, 0, errors.Wrap(err, "parse feed")
	}

	dropped := 0
	candidates := make([]Candidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			dropped++
			continue
		}

		link := strings.TrimSpace(item.Link)
		if !validLink(link) {
			dropped++
			continue
		}

		title := strings.TrimSpace(StripHTML(item.Title))
		if title == "" {
			title = placeholderTitle
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		summary = capRunes(strings.TrimSpace(StripHTML(summary)), maxSummaryRunes)

		published := fetchedAt
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		candidates = append(candidates, Candidate{
			Link:        link,
			Title:       title,
			Summary:     summary,
			PublishedAt: published,
		})
	}

	return candidates, dropped, nil
}

// StripHTML flattens markup into plain text, joining text nodes with
// single spaces.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

func validLink(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func capRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
