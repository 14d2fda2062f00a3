package listpage

import "regexp"

// Segment is a run of text, marked when it matched the search.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Highlight splits text around case-insensitive occurrences of search. The
// search is matched literally; regexp metacharacters carry no meaning.
func Highlight(text, search string) []Segment {
	if search == "" || text == "" {
		return []Segment{{Text: text}}
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))

	var (
		out  []Segment
		last int
	)
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: text[last:loc[0]]})
		}
		out = append(out, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}
