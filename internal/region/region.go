package region

import (
	"strconv"
	"strings"
)

// Label is one of the fixed administrative zones used for statistics.
type Label string

const (
	Pusat   Label = "Surabaya Pusat"
	Utara   Label = "Surabaya Utara"
	Timur   Label = "Surabaya Timur"
	Selatan Label = "Surabaya Selatan"
	Barat   Label = "Surabaya Barat"
	Other   Label = "Other"
)

// Labels lists every zone a classification can produce, for aggregation.
func Labels() []Label {
	return []Label{Pusat, Utara, Timur, Selatan, Barat, Other}
}

// Classify maps a free-text location to a zone. It is deterministic and
// total: any input, including the empty string, yields a label.
//
// Match order is significant for ambiguous inputs and must not be
// rearranged: district lexicon, then street/landmark lexicon, then
// coordinate bounding boxes, then the bare city name (which defaults to the
// administrative center), then Other.
func Classify(text string) Label {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Other
	}

	for _, e := range districtLexicon {
		if strings.Contains(s, e.keyword) {
			return e.label
		}
	}

	for _, e := range streetLexicon {
		if strings.Contains(s, e.keyword) {
			return e.label
		}
	}

	if lat, lng, ok := parseCoords(s); ok {
		return ClassifyCoords(lat, lng)
	}

	if strings.Contains(s, "surabaya") {
		return Pusat
	}

	return Other
}

// ClassifyCoords buckets a coordinate pair by the fixed bounding boxes.
// Coordinates outside every box classify as Other.
func ClassifyCoords(lat, lng float64) Label {
	for _, b := range boundingBoxes {
		if lat >= b.latMin && lat <= b.latMax && lng >= b.lngMin && lng <= b.lngMax {
			return b.label
		}
	}
	return Other
}

// parseCoords recognizes "lat, lng" pairs. Anything unparseable simply
// fails the match so the caller falls through the ladder.
func parseCoords(s string) (float64, float64, bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
