package airbnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBlocked(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		blocked bool
	}{
		{"listing", `<h1>Ocean View Apartment</h1><noscript>Please enable JavaScript</noscript>`, false},
		{"javascript wall", `<p>Please Enable JavaScript to continue</p>`, true},
		{"portuguese robot check", `<p>Confirme que você não é um robô</p>`, true},
		{"captcha widget", `<div class="g-recaptcha" data-sitekey="k"></div>`, true},
		{"captcha iframe", `<iframe src="https://geo.captcha-delivery.com/captcha/?x=1"></iframe>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, blocked := DetectBlocked(doc(t, tt.body))
			assert.Equal(t, tt.blocked, blocked)
			if tt.blocked {
				assert.NotEmpty(t, reason)
			}
		})
	}
}
