package jsonld

import (
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]struct{}{
	"p": {}, "br": {}, "div": {}, "li": {}, "ul": {}, "ol": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"blockquote": {}, "tr": {}, "td": {}, "th": {}, "section": {}, "figcaption": {},
}

// StripHTML returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)

			if tt == html.StartTagToken && (tag == "script" || tag == "style") {
				skipUntilEnd(z, tag)
				continue
			}
			if _, ok := blockTags[tag]; ok {
				sb.WriteByte(' ')
			}
		}
	}
}

func skipUntilEnd(z *html.Tokenizer, tag string) {
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				return
			}
		}
	}
}
