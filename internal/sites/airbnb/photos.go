package airbnb

import (
	"regexp"
	"strconv"
	"strings"

	"stayscraper/internal/snapshot"
)

const minPhotoWidth = 200

var (
	photoRejectPatterns = []string{"icon", "small", "thumb", "profile"}
	photoKeywords       = []string{"picture", "photo", "image", "airbnb", "muscache"}
	photoFinalRejects   = []string{"profile", "user", "icon", "avatar", "logo"}
	backgroundURL       = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)
)

// MinPhotoURLLength is the shortest URL kept by FilterPhotos.
const MinPhotoURLLength = 20

// ExtractPhotos resolves listing photo URLs.
func ExtractPhotos(doc snapshot.Document) Photos {
	urls, _ := First(
		photosInContainers(doc),
		photosInImages(doc),
		photosInBackgrounds(doc),
		photosInSrcset(doc),
	)
	return Photos{Photos: FilterPhotos(urls)}
}

// FilterPhotos removes duplicates, non-photo assets and short URLs.
func FilterPhotos(urls []string) []string {
	out := []string{}
	seen := newDedupe()
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if len(u) < MinPhotoURLLength || containsAnyFold(u, photoFinalRejects) {
			continue
		}
		if seen.add(u) {
			out = append(out, u)
		}
	}
	return out
}

func photoURLs(urls []string) Outcome[[]string] {
	if len(urls) == 0 {
		return NotFound[[]string]()
	}
	return Found(urls)
}

func looksLikePhoto(u string) bool {
	return strings.Contains(u, "http") && !containsAnyFold(u, photoRejectPatterns)
}

// renderedWidth reads the width recorded by the fetcher, then the width attribute.
func renderedWidth(n snapshot.Node) int {
	for _, attr := range []string{snapshot.RenderedWidthAttr, "width"} {
		if raw, ok := n.Attr(attr); ok {
			if w, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px")); err == nil {
				return w
			}
		}
	}
	return 0
}

func firstSrcset(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func photosInContainers(doc snapshot.Document) Strategy[[]string] {
	return func() Outcome[[]string] {
		for _, sel := range photoContainerSelectors {
			var urls []string
			for _, container := range doc.Find(sel) {
				for _, img := range container.Find("img") {
					if src, ok := img.Attr("src"); ok && looksLikePhoto(src) && renderedWidth(img) > minPhotoWidth {
						urls = append(urls, src)
					}
					if orig, ok := img.Attr("data-original-uri"); ok && looksLikePhoto(orig) {
						urls = append(urls, orig)
					}
				}
			}
			if found := photoURLs(urls); found.Found {
				return found
			}
		}
		return NotFound[[]string]()
	}
}

func photosInImages(doc snapshot.Document) Strategy[[]string] {
	return func() Outcome[[]string] {
		var urls []string
		for _, img := range doc.Find("img") {
			if renderedWidth(img) <= minPhotoWidth {
				continue
			}
			for _, attr := range []string{"src", "data-original-uri", "data-src", "srcset"} {
				raw, ok := img.Attr(attr)
				if !ok {
					continue
				}
				if attr == "srcset" {
					raw = firstSrcset(raw)
				}
				if looksLikePhoto(raw) && containsAnyFold(raw, photoKeywords) {
					urls = append(urls, raw)
				}
			}
		}
		return photoURLs(urls)
	}
}

func photosInBackgrounds(doc snapshot.Document) Strategy[[]string] {
	return func() Outcome[[]string] {
		var urls []string
		for _, n := range doc.Find(`[style*="background"]`) {
			style, _ := n.Attr("style")
			for _, m := range backgroundURL.FindAllStringSubmatch(style, -1) {
				if looksLikePhoto(m[1]) {
					urls = append(urls, m[1])
				}
			}
		}
		return photoURLs(urls)
	}
}

func photosInSrcset(doc snapshot.Document) Strategy[[]string] {
	return func() Outcome[[]string] {
		var urls []string
		for _, n := range doc.Find("[srcset]") {
			raw, _ := n.Attr("srcset")
			if u := firstSrcset(raw); looksLikePhoto(u) {
				urls = append(urls, u)
			}
		}
		return photoURLs(urls)
	}
}
