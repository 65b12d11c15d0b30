package phenology

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRepo is a minimal Repository that counts lookups.
type fakeRepo struct {
	metrics map[string]Metric
	calls   int
}

func newFakeRepo(metrics ...Metric) *fakeRepo {
	r := &fakeRepo{metrics: map[string]Metric{}}
	for _, m := range metrics {
		r.metrics[PointMetricCacheKey("repo", m.Location, m.Year)] = m
	}
	return r
}

func (r *fakeRepo) GetMetricForLocation(_ context.Context, loc Location, year int) (Metric, bool, error) {
	r.calls++
	m, ok := r.metrics[PointMetricCacheKey("repo", loc, year)]
	return m, ok, nil
}

// fakeCache is an unbounded PointCache.
type fakeCache struct {
	entries map[string]Metric
}

func (c *fakeCache) Get(key string) (Metric, bool) {
	m, ok := c.entries[key]
	return m, ok
}

func (c *fakeCache) Set(key string, m Metric) {
	c.entries[key] = m
}

func testMetric(t *testing.T) Metric {
	t.Helper()

	loc, err := NewLocation(52.5, 13.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sos := NewDate(2020, time.April, 15)
	eos := NewDate(2020, time.October, 15)
	length := 183
	return Metric{
		Year:         2020,
		Location:     loc,
		SOSDate:      &sos,
		EOSDate:      &eos,
		SeasonLength: &length,
		IsForest:     true,
	}
}

func TestGetPointMetricDelegates(t *testing.T) {
	want := testMetric(t)
	repo := newFakeRepo(want)
	svc := NewQueryService(repo, nil)

	got, found, err := svc.GetPointMetric(context.Background(), want.Location, want.Year)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected metric to be found")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// The service must report the same outcome as the repository itself.
	direct, directFound, _ := repo.GetMetricForLocation(context.Background(), want.Location, want.Year)
	if directFound != found || direct != got {
		t.Fatal("service result diverged from direct repository lookup")
	}
}

func TestGetPointMetricAbsence(t *testing.T) {
	svc := NewQueryService(newFakeRepo(), nil)

	loc, err := NewLocation(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, found, err := svc.GetPointMetric(context.Background(), loc, 1999)
	if err != nil {
		t.Fatalf("absence must not be an error, got: %v", err)
	}
	if found {
		t.Fatal("expected absence for a never-written key")
	}
}

func TestGetPointMetricUsesCache(t *testing.T) {
	want := testMetric(t)
	repo := newFakeRepo(want)
	svc := NewQueryService(repo, &fakeCache{entries: map[string]Metric{}})

	for i := 0; i < 3; i++ {
		got, found, err := svc.GetPointMetric(context.Background(), want.Location, want.Year)
		if err != nil || !found {
			t.Fatalf("lookup %d failed: found=%v err=%v", i, found, err)
		}
		if got != want {
			t.Fatalf("lookup %d returned %+v, want %+v", i, got, want)
		}
	}

	if repo.calls != 1 {
		t.Fatalf("expected exactly one repository call, got %d", repo.calls)
	}
}

func TestGetPointMetricDoesNotCacheAbsence(t *testing.T) {
	repo := newFakeRepo()
	svc := NewQueryService(repo, &fakeCache{entries: map[string]Metric{}})

	loc, _ := NewLocation(10, 10)
	for i := 0; i < 2; i++ {
		if _, found, err := svc.GetPointMetric(context.Background(), loc, 2020); found || err != nil {
			t.Fatalf("expected clean absence, got found=%v err=%v", found, err)
		}
	}

	// Absence must be re-checked against storage on every call.
	if repo.calls != 2 {
		t.Fatalf("expected two repository calls, got %d", repo.calls)
	}
}

func TestGetPointTimeseriesUnsupported(t *testing.T) {
	svc := NewQueryService(newFakeRepo(), nil)

	loc, _ := NewLocation(52.5, 13.4)
	_, err := svc.GetPointTimeseries(context.Background(), loc, 2019, 2021)
	if !errors.Is(err, ErrTimeseriesUnsupported) {
		t.Fatalf("expected ErrTimeseriesUnsupported, got %v", err)
	}
}

func TestPointMetricCacheKeyNormalization(t *testing.T) {
	a, _ := NewLocation(52.5, 13.4)
	b, _ := NewLocation(52.5000001, 13.4) // inside the 6dp rounding window

	if PointMetricCacheKey("repo", a, 2020) != PointMetricCacheKey("repo", b, 2020) {
		t.Fatal("expected near-identical coordinates to share a cache key")
	}

	c, _ := NewLocation(52.51, 13.4)
	if PointMetricCacheKey("repo", a, 2020) == PointMetricCacheKey("repo", c, 2020) {
		t.Fatal("expected distinct coordinates to produce distinct cache keys")
	}
}
