package transcript

import (
	"regexp"
	"strings"
)

// videoURLRE accepts the watch and short-link forms with an 11-char video id.
var videoURLRE = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)([\w-]{11})$`)

// ValidVideoURL reports whether rawURL is a supported video page URL.
func ValidVideoURL(rawURL string) bool {
	return videoURLRE.MatchString(rawURL)
}

// VideoID returns the 11-character video id of a supported URL.
func VideoID(rawURL string) (string, bool) {
	m := videoURLRE.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[4], true
}

// CheckVideoURL trims rawURL and returns it with an explicit scheme, or a
// KindInvalidInput error.
func CheckVideoURL(rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", invalidInput("url is required")
	}
	if !ValidVideoURL(u) {
		return "", invalidInput("invalid YouTube URL")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u, nil
}
