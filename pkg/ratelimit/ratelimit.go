// Package ratelimit kullanıcı ve özellik bazında kayan pencere (sliding-window log) sınırlayıcı.
// Olaylar bir Store'da tutulur; kontrol ve ekleme aynı süreç içinde kilitle atomiktir.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrRateLimited tavan aşıldı. Genel hatalardan ayırt etmek için errors.Is ile kontrol edilir.
var ErrRateLimited = errors.New("istek sınırı aşıldı")

// LimitedError ne zaman tekrar denenebileceğini taşır.
type LimitedError struct {
	Key        string
	Limit      int
	RetryAfter time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("%s: %s için saatte %d, %s sonra tekrar deneyin", ErrRateLimited, e.Key, e.Limit, e.RetryAfter.Round(time.Second))
}

func (e *LimitedError) Unwrap() error { return ErrRateLimited }

// EventID Store'un olaya verdiği kimlik.
type EventID uint64

// Store olay günlüğü. Window since'ten sonraki olay zamanlarını artan sırada döndürür.
type Store interface {
	Window(ctx context.Context, key string, since time.Time) ([]time.Time, error)
	Add(ctx context.Context, key string, at time.Time) (EventID, error)
	Remove(ctx context.Context, id EventID) error
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Key kullanıcı ve özellik adından sayaç anahtarı üretir.
func Key(userID uint, feature string) string {
	return fmt.Sprintf("%d:%s", userID, feature)
}

// Limiter pencere içinde en fazla limit olaya izin verir.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
	mu     sync.Mutex
}

// Option Limiter ayarı.
type Option func(*Limiter)

// WithClock testlerde zamanı sabitlemek için.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// NewLimiter limit veya pencere sıfırsa 10/saat kullanılır.
func NewLimiter(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Hour
	}
	l := &Limiter{store: store, limit: limit, window: window, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Reservation başarısız render sonrası geri verilebilen hak.
type Reservation struct {
	store Store
	id    EventID
	once  sync.Once
}

// Release hakkı iade eder; birden fazla çağrı güvenlidir.
func (r *Reservation) Release(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var err error
	r.once.Do(func() { err = r.store.Remove(ctx, r.id) })
	return err
}

// Reserve pencerede yer varsa bir olay kaydeder. Dolu ise *LimitedError döner.
func (l *Limiter) Reserve(ctx context.Context, userID uint, feature string) (*Reservation, error) {
	key := Key(userID, feature)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	since := now.Add(-l.window)
	events, err := l.store.Window(ctx, key, since)
	if err != nil {
		return nil, fmt.Errorf("sayaç okunamadı: %w", err)
	}
	if len(events) >= l.limit {
		retry := events[len(events)-l.limit].Add(l.window).Sub(now)
		if retry < time.Second {
			retry = time.Second
		}
		return nil, &LimitedError{Key: key, Limit: l.limit, RetryAfter: retry}
	}

	id, err := l.store.Add(ctx, key, now)
	if err != nil {
		return nil, fmt.Errorf("sayaç yazılamadı: %w", err)
	}
	return &Reservation{store: l.store, id: id}, nil
}

// Remaining penceredeki kalan hak sayısı.
func (l *Limiter) Remaining(ctx context.Context, userID uint, feature string) (int, error) {
	now := l.now()
	events, err := l.store.Window(ctx, Key(userID, feature), now.Add(-l.window))
	if err != nil {
		return 0, err
	}
	if rem := l.limit - len(events); rem > 0 {
		return rem, nil
	}
	return 0, nil
}

// Prune pencere dışına çıkmış olayları siler.
func (l *Limiter) Prune(ctx context.Context) (int64, error) {
	return l.store.Prune(ctx, l.now().Add(-l.window))
}

// Limit ve Window yapılandırılmış değerler.
func (l *Limiter) Limit() int            { return l.limit }
func (l *Limiter) Window() time.Duration { return l.window }

// MemoryStore tek süreçlik Store; testlerde ve veritabanısız çalışmada kullanılır.
type MemoryStore struct {
	mu     sync.Mutex
	nextID EventID
	events map[EventID]memEvent
}

type memEvent struct {
	key string
	at  time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[EventID]memEvent)}
}

func (s *MemoryStore) Window(_ context.Context, key string, since time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Time
	for _, e := range s.events {
		if e.key == key && e.at.After(since) {
			out = append(out, e.at)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, key string, at time.Time) (EventID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.events[s.nextID] = memEvent{key: key, at: at}
	return s.nextID, nil
}

func (s *MemoryStore) Remove(_ context.Context, id EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

func (s *MemoryStore) Prune(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, e := range s.events {
		if !e.at.After(before) {
			delete(s.events, id)
			n++
		}
	}
	return n, nil
}

var _ Store = (*MemoryStore)(nil)
