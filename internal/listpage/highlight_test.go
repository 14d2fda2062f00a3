package listpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		search string
		want   []Segment
	}{
		{"no search", "Ada", "", []Segment{{Text: "Ada"}}},
		{"case insensitive", "Ada adams", "AD", []Segment{{Text: "Ad", Match: true}, {Text: "a "}, {Text: "ad", Match: true}, {Text: "ams"}}},
		{"metacharacters are literal", "a.b axb", ".", []Segment{{Text: "a"}, {Text: ".", Match: true}, {Text: "b axb"}}},
		{"unbalanced paren", "f(x) = 1", "(x", []Segment{{Text: "f"}, {Text: "(x", Match: true}, {Text: ") = 1"}}},
		{"no match", "Grace", "z", []Segment{{Text: "Grace"}}},
		{"whole text", "c++", "C++", []Segment{{Text: "c++", Match: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.search)
			assert.Equal(t, tt.want, got)

			var joined string
			for _, s := range got {
				joined += s.Text
			}
			assert.Equal(t, tt.text, joined)
		})
	}
}
