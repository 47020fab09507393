package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/glowhire/sunshine/internal/domain"
)

// SanitizeReply strips markup the remote assistant sometimes embeds in its
// replies. Anchor tags are harvested into navigation-style links before the
// text is flattened. Plain-text replies pass through untouched.
func SanitizeReply(reply string) (string, []domain.MessageLink) {
	if !strings.Contains(reply, "<") {
		return reply, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reply))
	if err != nil {
		return reply, nil
	}

	var links []domain.MessageLink
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		label := strings.TrimSpace(sel.Text())
		if href == "" {
			return
		}
		if label == "" {
			label = href
		}
		links = append(links, domain.MessageLink{Label: label, URL: href})
	})

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return reply, links
	}
	return text, links
}
