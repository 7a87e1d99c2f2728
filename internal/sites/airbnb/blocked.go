package airbnb

import (
	"stayscraper/internal/snapshot"
)

var blockedMarkers = []string{
	"enable javascript",
	"ative o javascript",
	"habilite o javascript",
	"are you a robot",
	"not a robot",
	"não é um robô",
	"verify you are human",
	"access denied",
	"acesso negado",
	"unusual traffic",
}

// DetectBlocked reports whether the snapshot is an anti-automation page rather
// than a listing. The returned reason names the marker that matched.
func DetectBlocked(doc snapshot.Document) (string, bool) {
	for _, sel := range captchaSelectors {
		if len(doc.Find(sel)) > 0 {
			return "captcha widget " + sel, true
		}
	}
	text := fold(doc.Text())
	for _, marker := range blockedMarkers {
		if containsFold(text, marker) {
			return marker, true
		}
	}
	return "", false
}
