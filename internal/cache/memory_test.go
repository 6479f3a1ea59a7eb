package cache

import (
	"testing"
	"time"

	"jobpulse/pkg/models"
)

func TestMemoryJobCacheRoundTrip(t *testing.T) {
	c := NewMemoryJobCache(time.Hour, time.Minute, nil)

	job := &models.NormalizedJob{ID: "j1", Title: "Go Engineer"}
	c.Set("j1", job)

	got := c.Get("j1")
	if got == nil {
		t.Fatal("expected a hit")
	}
	if got.Title != "Go Engineer" {
		t.Errorf("title = %q", got.Title)
	}
	if c.Get("missing") != nil {
		t.Error("expected a miss for an unknown id")
	}
}

func TestMemoryJobCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryJobCache(time.Hour, time.Minute, func() time.Time { return now })

	c.Set("j1", &models.NormalizedJob{ID: "j1"})

	now = now.Add(59 * time.Minute)
	if c.Get("j1") == nil {
		t.Fatal("entry expired too early")
	}

	now = now.Add(2 * time.Minute)
	if c.Get("j1") != nil {
		t.Fatal("expected the entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on read, len = %d", c.Len())
	}
}

func TestMemoryJobCacheCleanup(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryJobCache(time.Hour, time.Minute, func() time.Time { return now })

	c.Set("j1", &models.NormalizedJob{ID: "j1"})
	c.Set("j2", &models.NormalizedJob{ID: "j2"})

	now = now.Add(30 * time.Minute)
	c.Set("j3", &models.NormalizedJob{ID: "j3"})

	now = now.Add(45 * time.Minute)
	removed := c.Cleanup()

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
	if c.Get("j3") == nil {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestMemoryJobCacheIgnoresBadInput(t *testing.T) {
	c := NewMemoryJobCache(time.Hour, time.Minute, nil)

	c.Set("", &models.NormalizedJob{ID: "x"})
	c.Set("x", nil)

	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
}
