// Package ask maps free-text questions to a closed set of intents, each
// backed by a safelisted SQL template with bounded parameters.
package ask

import (
	"regexp"
	"strconv"
	"strings"
)

type Intent string

const (
	IntentTopSKU        Intent = "top_sku"
	IntentSalesTrend    Intent = "sales_trend"
	IntentAdPerformance Intent = "ad_performance"
	IntentInventoryLow  Intent = "inventory_low"
	IntentWeatherImpact Intent = "weather_impact"
	IntentFallback      Intent = "fallback"
)

// Slot bounds. Whatever the question says, a limit never exceeds 20 and a
// day window never exceeds a year.
const (
	minLimit  = 1
	maxLimit  = 20
	minWindow = 1
	maxWindow = 365

	defaultLimit  = 10
	defaultWindow = 30
)

// RouteResult is the classification of one question. Intent is always a
// member of the closed set above.
type RouteResult struct {
	Intent     Intent                 `json:"intent"`
	Slots      map[string]interface{} `json:"slots"`
	Confidence float64                `json:"confidence"`
}

// rule is one entry in the dispatch table: a pattern, the intent it tags and
// a slot extractor. Rules are evaluated in order and the first match wins.
type rule struct {
	intent     Intent
	pattern    *regexp.Regexp
	confidence float64
	extract    func(question string, slots map[string]interface{})
}

var (
	numberRe = regexp.MustCompile(`(\d+)`)
	topNRe   = regexp.MustCompile(`(?:상위|top|탑)\s*(\d+)|(\d+)\s*개`)
	daysRe   = regexp.MustCompile(`(\d+)\s*(?:일|days?|d\b)`)
)

var rules = []rule{
	{
		intent:     IntentTopSKU,
		pattern:    regexp.MustCompile(`상위|많이\s*팔린|베스트|top|best\s*sell|ranking|랭킹`),
		confidence: 0.9,
		extract: func(q string, slots map[string]interface{}) {
			slots["limit"] = clampInt(extractTopN(q), minLimit, maxLimit)
			slots["window_days"] = clampInt(extractDays(q), minWindow, maxWindow)
		},
	},
	{
		intent:     IntentSalesTrend,
		pattern:    regexp.MustCompile(`추세|추이|트렌드|trend|매출.*(변화|흐름)|over\s*time`),
		confidence: 0.85,
		extract: func(q string, slots map[string]interface{}) {
			slots["window_days"] = clampInt(extractDays(q), minWindow, maxWindow)
		},
	},
	{
		intent:     IntentAdPerformance,
		pattern:    regexp.MustCompile(`광고|캠페인|roas|ctr|ad\s*(spend|performance)|campaign`),
		confidence: 0.85,
		extract: func(q string, slots map[string]interface{}) {
			slots["window_days"] = clampInt(extractDays(q), minWindow, maxWindow)
			slots["limit"] = clampInt(extractTopN(q), minLimit, maxLimit)
		},
	},
	{
		intent:     IntentInventoryLow,
		pattern:    regexp.MustCompile(`재고|품절|발주|reorder|stock|inventory|out\s*of`),
		confidence: 0.85,
		extract: func(q string, slots map[string]interface{}) {
			slots["limit"] = clampInt(extractTopN(q), minLimit, maxLimit)
		},
	},
	{
		intent:     IntentWeatherImpact,
		pattern:    regexp.MustCompile(`날씨|기온|비가|강수|weather|rain|temperature`),
		confidence: 0.8,
		extract: func(q string, slots map[string]interface{}) {
			slots["window_days"] = clampInt(extractDays(q), minWindow, maxWindow)
		},
	},
}

// Route classifies a question. It never fails: an unmatched question falls
// through to the fallback intent with low confidence and default slots.
func Route(question string) RouteResult {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, r := range rules {
		if !r.pattern.MatchString(q) {
			continue
		}
		slots := make(map[string]interface{})
		if r.extract != nil {
			r.extract(q, slots)
		}
		return RouteResult{Intent: r.intent, Slots: slots, Confidence: r.confidence}
	}

	return RouteResult{
		Intent:     IntentFallback,
		Slots:      map[string]interface{}{"window_days": defaultWindow},
		Confidence: 0.2,
	}
}

func extractTopN(q string) int {
	if m := topNRe.FindStringSubmatch(q); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				if n, err := strconv.Atoi(g); err == nil {
					return n
				}
			}
		}
	}
	// A lone number still counts as the limit, but not one that already
	// names a day window ("최근 30일").
	stripped := daysRe.ReplaceAllString(q, "")
	if m := numberRe.FindStringSubmatch(stripped); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return defaultLimit
}

func extractDays(q string) int {
	if m := daysRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return defaultWindow
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
