package transcript

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Placeholders used when a field is missing from the page.
const (
	unknownTitle       = "Unknown Title"
	unknownViews       = "Unknown Views"
	unknownLikes       = "Unknown Likes"
	noDescription      = "No description available"
	unknownChannel     = "Unknown Channel"
	unknownPublishDate = "Unknown Date"
)

var likeCountRE = regexp.MustCompile(`"likeCount":"?(\d+)`)

// FetchVideoInfo renders the watch page in its own session and scrapes its
// metadata. Missing fields get placeholder values rather than failing.
func (a *Acquirer) FetchVideoInfo(ctx context.Context, pageURL string) (*VideoInfo, error) {
	engine.IncrVideoInfoRequests()
	log := slog.With(slog.String("req", uuid.NewString()), slog.String("url", pageURL))

	var page string
	err := a.withSession(ctx, log, func(s Session) error {
		navCtx, cancel := context.WithTimeout(ctx, a.cfg.NavigationTimeout)
		defer cancel()
		if err := s.Navigate(navCtx, pageURL); err != nil {
			return acquisitionErr("navigation failed", err)
		}
		doc, err := s.HTML(navCtx)
		if err != nil {
			return acquisitionErr("read page failed", err)
		}
		page = doc
		return nil
	})
	if err != nil {
		log.Warn("transcript: video info failed", slog.Any("error", err))
		return nil, err
	}
	return ParseVideoInfo(page), nil
}

// ParseVideoInfo extracts metadata from watch page HTML using the page's
// meta, itemprop and embedded player JSON fields.
func ParseVideoInfo(page string) *VideoInfo {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return defaultVideoInfo()
	}

	meta := map[string]string{}
	var title, channel string
	var walk func(n *html.Node, inAuthor bool)
	walk = func(n *html.Node, inAuthor bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := firstAttr(n, "name", "property", "itemprop")
				if content := attr(n, "content"); key != "" && content != "" {
					if _, seen := meta[key]; !seen {
						meta[key] = content
					}
				}
			case "link":
				if inAuthor && attr(n, "itemprop") == "name" && channel == "" {
					channel = attr(n, "content")
				}
			case "span":
				if attr(n, "itemprop") == "author" {
					inAuthor = true
				}
			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSuffix(strings.TrimSpace(n.FirstChild.Data), " - YouTube")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inAuthor)
		}
	}
	walk(doc, false)

	info := defaultVideoInfo()
	info.Title = pick(info.Title, meta["title"], meta["og:title"], title)
	info.Views = pick(info.Views, meta["interactionCount"])
	info.Description = pick(info.Description, meta["description"], meta["og:description"])
	info.ChannelName = pick(info.ChannelName, channel, meta["author"])
	info.PublishDate = pick(info.PublishDate, meta["datePublished"], meta["uploadDate"])
	if m := likeCountRE.FindStringSubmatch(page); len(m) == 2 {
		info.Likes = m[1]
	}
	return info
}

func defaultVideoInfo() *VideoInfo {
	return &VideoInfo{
		Title:       unknownTitle,
		Views:       unknownViews,
		Likes:       unknownLikes,
		Description: noDescription,
		ChannelName: unknownChannel,
		PublishDate: unknownPublishDate,
	}
}

// pick returns the first non-blank candidate, or fallback.
func pick(fallback string, candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return fallback
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func firstAttr(n *html.Node, keys ...string) string {
	for _, k := range keys {
		if v := attr(n, k); v != "" {
			return v
		}
	}
	return ""
}
