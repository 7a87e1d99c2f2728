package fetcher

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"stayscraper/internal/snapshot"
)

// captureJS records each image's laid out width, then returns the page HTML.
const captureJS = `() => {
	document.querySelectorAll('img').forEach(img => {
		const w = Math.round(img.getBoundingClientRect().width || img.naturalWidth || 0);
		img.setAttribute('` + snapshot.RenderedWidthAttr + `', String(w));
	});
	return document.documentElement.outerHTML;
}`

// captureExpr is captureJS as a self-invoking expression.
const captureExpr = "(" + captureJS + ")()"

// gesture is one synthetic scroll followed by a pause.
type gesture struct {
	dy    float64
	pause time.Duration
}

// gesturePlan returns a short randomized scroll sequence down the page and back.
func gesturePlan() []gesture {
	n := 3 + rand.IntN(3)
	plan := make([]gesture, 0, n+1)
	total := 0.0
	for i := 0; i < n; i++ {
		dy := float64(250 + rand.IntN(450))
		total += dy
		plan = append(plan, gesture{dy: dy, pause: time.Duration(300+rand.IntN(900)) * time.Millisecond})
	}
	plan = append(plan, gesture{dy: -total, pause: time.Duration(200+rand.IntN(400)) * time.Millisecond})
	return plan
}

// runGestures performs plan with scroll, stopping early when ctx is done.
// Gesture failures are not fatal to a load.
func runGestures(ctx context.Context, plan []gesture, scroll func(dy float64) error) {
	for _, g := range plan {
		if err := scroll(g.dy); err != nil {
			slog.Debug("Scroll gesture failed", "error", err)
			return
		}
		if sleep(ctx, g.pause) != nil {
			return
		}
	}
}
