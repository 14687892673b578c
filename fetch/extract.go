package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stayely/pitia-assistente/text"
)

// untitled is the title used when a page has none.
const untitled = "Sem título"

// chromeSelector matches page chrome and non-content elements removed
// before extraction.
const chromeSelector = "script, style, nav, footer, iframe, aside, header, " +
	"form, button, img, noscript, svg, figure, video, audio, select, textarea"

// contentSelectors locate the main content region, tried in order.
var contentSelectors = []string{
	"article",
	"main",
	".content",
	".post-content",
	".article-body",
	"[itemprop=articleBody]",
	"#content",
}

// extract pulls the title and readable text out of an HTML document.
// Text fragments come from paragraph, heading and list elements with
// more than three words; the joined result is capped at maxLen bytes.
func extract(doc *goquery.Document, maxLen int) (title, content string) {
	doc.Find(chromeSelector).Remove()

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = untitled
	}

	region := doc.Selection
	for _, selector := range contentSelectors {
		if found := doc.Find(selector).First(); found.Length() > 0 {
			region = found
			break
		}
	}
	if region == doc.Selection {
		if body := doc.Find("body").First(); body.Length() > 0 {
			region = body
		}
	}

	var fragments []string
	region.Find("p, h1, h2, h3, h4, li").Each(func(_ int, s *goquery.Selection) {
		cleaned := text.Clean(s.Text())
		if text.WordCount(cleaned) > 3 {
			fragments = append(fragments, cleaned)
		}
	})

	content = text.Truncate(strings.Join(fragments, " "), maxLen)
	return title, content
}
