package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"kartvizit.link/models"
	"kartvizit.link/pkg/ratelimit"
)

func TestRateLimitRepositoryWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewRateLimitRepositoryWithDB(newTestDB(t, &models.RateLimitEvent{}))

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := ratelimit.NewLimiter(repo, 10, time.Hour, ratelimit.WithClock(func() time.Time { return now }))
	first := now

	for i := 0; i < 10; i++ {
		if _, err := l.Reserve(ctx, 7, "background"); err != nil {
			t.Fatalf("istek %d reddedildi: %v", i+1, err)
		}
		now = now.Add(time.Minute)
	}

	_, err := l.Reserve(ctx, 7, "background")
	var limited *ratelimit.LimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("11. istek sınırlanmalı, gelen %v", err)
	}
	if want := first.Add(time.Hour).Sub(now); limited.RetryAfter != want {
		t.Errorf("RetryAfter = %s, beklenen %s", limited.RetryAfter, want)
	}

	now = first.Add(time.Hour)
	if _, err := l.Reserve(ctx, 7, "background"); err != nil {
		t.Errorf("pencere kaydıktan sonra izin verilmeli: %v", err)
	}
	if _, err := l.Reserve(ctx, 7, "background"); !errors.Is(err, ratelimit.ErrRateLimited) {
		t.Errorf("sadece bir hak açılmalıydı, gelen %v", err)
	}

	n, err := l.Prune(ctx)
	if err != nil || n != 1 {
		t.Errorf("Prune = %d, %v; beklenen 1", n, err)
	}
}

func TestRateLimitRepositoryRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewRateLimitRepositoryWithDB(newTestDB(t, &models.RateLimitEvent{}))
	l := ratelimit.NewLimiter(repo, 1, time.Hour)

	r, err := l.Reserve(ctx, 1, "nametag")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Release(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reserve(ctx, 1, "nametag"); err != nil {
		t.Errorf("iade edilen hak tekrar kullanılabilmeli: %v", err)
	}
}
