package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"jobpulse/internal/config"
	"jobpulse/pkg/models"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := &config.Config{}
	cfg.Redis.URL = "redis://" + mr.Addr()
	c := New(cfg)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestJobCacheRoundTrip(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.CacheJob(ctx, &models.NormalizedJob{ID: "j1", Title: "Go Engineer", Company: "Acme"})

	got := c.GetCachedJob(ctx, "j1")
	if got == nil {
		t.Fatal("expected a cache hit")
	}
	if got.Title != "Go Engineer" || got.Company != "Acme" {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if ttl := mr.TTL(jobKey("j1")); ttl != JobTTL {
		t.Errorf("single-job TTL = %v, want %v", ttl, JobTTL)
	}
}

func TestGetCachedJobDeletesCorruptEntry(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	if err := mr.Set(jobKey("j1"), "{not json"); err != nil {
		t.Fatal(err)
	}

	if got := c.GetCachedJob(ctx, "j1"); got != nil {
		t.Errorf("corrupt entry returned a job: %+v", got)
	}
	if mr.Exists(jobKey("j1")) {
		t.Error("corrupt entry should have been deleted on read")
	}
}

func TestCacheJobsBatchUsesBatchTTL(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.CacheJobsBatch(ctx, []models.NormalizedJob{
		{ID: "j1", Title: "Go Engineer"},
		{ID: "", Title: "dropped, no id"},
		{ID: "j2", Title: "Data Engineer"},
	})

	for _, id := range []string{"j1", "j2"} {
		if got := c.GetCachedJob(ctx, id); got == nil {
			t.Errorf("expected %s to be pre-warmed", id)
		}
		if ttl := mr.TTL(jobKey(id)); ttl != JobBatchTTL {
			t.Errorf("batch TTL for %s = %v, want %v", id, ttl, JobBatchTTL)
		}
	}
}

func TestGetCachedScoreDeletesNonInteger(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	if err := mr.Set(scoreKey("u1", "j1"), "eighty"); err != nil {
		t.Fatal(err)
	}

	if got := c.GetCachedScore(ctx, "u1", "j1"); got != nil {
		t.Errorf("non-integer entry returned %d", *got)
	}
	if mr.Exists(scoreKey("u1", "j1")) {
		t.Error("non-integer entry should have been deleted on read")
	}
}

func TestCacheScoresBatchSkipsOutOfRange(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.CacheScoresBatch(ctx, "u1", []models.JobScore{
		{JobID: "j1", Score: 80},
		{JobID: "j2", Score: 130},
		{JobID: "j3", Score: -5},
	})

	got := c.GetCachedScore(ctx, "u1", "j1")
	if got == nil || *got != 80 {
		t.Errorf("score for j1 = %v, want 80", got)
	}
	if mr.Exists(scoreKey("u1", "j2")) || mr.Exists(scoreKey("u1", "j3")) {
		t.Error("out-of-range scores must not be cached")
	}
	if ttl := mr.TTL(scoreKey("u1", "j1")); ttl != ScoreTTL {
		t.Errorf("score TTL = %v, want %v", ttl, ScoreTTL)
	}
}

func TestCacheFailsOpenWhenBackendDown(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()
	mr.Close()

	c.CacheJob(ctx, &models.NormalizedJob{ID: "j1", Title: "Go Engineer"})
	if got := c.GetCachedJob(ctx, "j1"); got != nil {
		t.Errorf("expected a miss with the backend down, got %+v", got)
	}
	if got := c.GetCachedScore(ctx, "u1", "j1"); got != nil {
		t.Errorf("expected a score miss with the backend down, got %d", *got)
	}
}
