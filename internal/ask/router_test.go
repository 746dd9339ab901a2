package ask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTopSKU(t *testing.T) {
	got := Route("최근 30일 동안 가장 많이 팔린 상품 상위 5개")
	assert.Equal(t, IntentTopSKU, got.Intent)
	assert.Equal(t, 5, got.Slots["limit"])
	assert.Equal(t, 30, got.Slots["window_days"])
	assert.Greater(t, got.Confidence, 0.5)
}

func TestRouteClampsLimit(t *testing.T) {
	got := Route("상위 999개 상품")
	assert.Equal(t, IntentTopSKU, got.Intent)
	// A limit never exceeds 20, whatever the question says.
	assert.Equal(t, 20, got.Slots["limit"])
}

func TestRouteClampsWindow(t *testing.T) {
	got := Route("sales trend over the last 9999 days")
	assert.Equal(t, IntentSalesTrend, got.Intent)
	assert.Equal(t, 365, got.Slots["window_days"])
}

func TestRouteEnglish(t *testing.T) {
	got := Route("show me the top 3 best selling products")
	assert.Equal(t, IntentTopSKU, got.Intent)
	assert.Equal(t, 3, got.Slots["limit"])
}

func TestRouteAdPerformance(t *testing.T) {
	got := Route("지난 7일 광고 캠페인 성과 알려줘")
	assert.Equal(t, IntentAdPerformance, got.Intent)
	assert.Equal(t, 7, got.Slots["window_days"])
}

func TestRouteInventoryLow(t *testing.T) {
	got := Route("재고 부족한 상품 뭐야")
	assert.Equal(t, IntentInventoryLow, got.Intent)
}

func TestRouteWeather(t *testing.T) {
	got := Route("비가 오면 매출이 어떻게 되나")
	assert.Equal(t, IntentWeatherImpact, got.Intent)
}

func TestRouteFallback(t *testing.T) {
	got := Route("안녕하세요")
	assert.Equal(t, IntentFallback, got.Intent)
	assert.LessOrEqual(t, got.Confidence, 0.5)
	assert.Equal(t, defaultWindow, got.Slots["window_days"])
}

func TestRouteNeverFails(t *testing.T) {
	for _, q := range []string{"", "   ", "????", "12345"} {
		got := Route(q)
		assert.NotEmpty(t, got.Intent, "question %q", q)
	}
}

func TestRouteDayWindowIsNotALimit(t *testing.T) {
	// "30일" names the window; the limit must fall back to the default, not 30.
	got := Route("최근 30일 베스트 상품")
	assert.Equal(t, IntentTopSKU, got.Intent)
	assert.Equal(t, 30, got.Slots["window_days"])
	assert.Equal(t, defaultLimit, got.Slots["limit"])
}
