package export

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// documentImages lists the distinct image sources in a serialized document, in document order.
func documentImages(document string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		log.Printf("[EXPORT] failed to parse document for images: %v", err)
		return nil
	}

	seen := make(map[string]bool)
	var sources []string
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		sources = append(sources, src)
	})
	return sources
}
