package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/posts/feed", "200"))

	RecordAPIRequest("GET", "/api/posts/feed", 200, 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/posts/feed", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/posts/feed", "200"))
	if after-before != 2 {
		t.Errorf("requests delta = %v, want 2", after-before)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantDelta float64
	}{
		{"success", nil, 0},
		{"failure", errors.New("connection reset"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := StoreOperationErrors.WithLabelValues("test_" + tt.name)
			before := testutil.ToFloat64(c)
			RecordStoreOperation("test_"+tt.name, time.Millisecond, tt.err)
			if got := testutil.ToFloat64(c) - before; got != tt.wantDelta {
				t.Errorf("errors delta = %v, want %v", got, tt.wantDelta)
			}
		})
	}
}

func TestRecordLikeToggle(t *testing.T) {
	liked := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("liked"))
	unliked := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("unliked"))

	RecordLikeToggle("liked")
	RecordLikeToggle("liked")
	RecordLikeToggle("unliked")

	if got := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("liked")) - liked; got != 2 {
		t.Errorf("liked delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("unliked")) - unliked; got != 1 {
		t.Errorf("unliked delta = %v, want 1", got)
	}
}

func TestRecordFeedPage(t *testing.T) {
	before := testutil.ToFloat64(FeedRequestsTotal.WithLabelValues("true"))
	RecordFeedPage(true, 10)
	if got := testutil.ToFloat64(FeedRequestsTotal.WithLabelValues("true")) - before; got != 1 {
		t.Errorf("personalized feed delta = %v, want 1", got)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/health", 200, time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint %s: %s", p.Metric, p.Text)
	}
}
