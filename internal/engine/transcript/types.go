package transcript

import "encoding/xml"

// Segment is one timed caption line. Start and Duration are in seconds.
type Segment struct {
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Text     string  `json:"text" yaml:"text"`
}

// Result is a parsed caption document with its two text projections.
type Result struct {
	Segments      []Segment `json:"segments" yaml:"segments"`
	PlainText     string    `json:"plain_text" yaml:"plain_text"`
	FormattedText string    `json:"formatted_text" yaml:"formatted_text"`
}

// VideoInfo is page metadata scraped from a rendered watch page.
type VideoInfo struct {
	Title       string `json:"title" yaml:"title"`
	Views       string `json:"views" yaml:"views"`
	Likes       string `json:"likes" yaml:"likes"`
	Description string `json:"description" yaml:"description"`
	ChannelName string `json:"channel_name" yaml:"channel_name"`
	PublishDate string `json:"publish_date" yaml:"publish_date"`
}

// --- Timedtext XML types ---

type timedText struct {
	XMLName xml.Name    `xml:"transcript"`
	Lines   []timedLine `xml:"text"`
}

type timedLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}
