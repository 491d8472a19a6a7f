package cache

import (
	"testing"
	"time"
)

func testStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Now()
	s := New()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGetMiss(t *testing.T) {
	s, _ := testStore(t)
	if _, ok := s.Get("weather", "paris"); ok {
		t.Error("expected miss on empty store")
	}
}

func TestPutGet(t *testing.T) {
	s, _ := testStore(t)
	s.Put("weather", "paris", "18C")

	v, ok := s.Get("weather", "paris")
	if !ok {
		t.Fatal("expected hit")
	}
	if v.(string) != "18C" {
		t.Errorf("got %v, want 18C", v)
	}
}

func TestKindsDoNotCollide(t *testing.T) {
	s, _ := testStore(t)
	s.Put("weather", "paris", "weather-value")
	s.Put("news", "paris", "news-value")

	v, ok := s.Get("news", "paris")
	if !ok || v.(string) != "news-value" {
		t.Errorf("got %v (hit=%v), want news-value", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	s, now := testStore(t)
	s.Put("weather", "paris", "18C")

	*now = now.Add(DefaultTTL - time.Second)
	if _, ok := s.Get("weather", "paris"); !ok {
		t.Error("expected hit just inside TTL")
	}

	*now = now.Add(2 * time.Second)
	if _, ok := s.Get("weather", "paris"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestQuoteTTLShorter(t *testing.T) {
	s, now := testStore(t)
	s.Put("stock", "tsla", "quote")
	s.Put("weather", "paris", "18C")

	*now = now.Add(QuoteTTL + time.Second)
	if _, ok := s.Get("stock", "tsla"); ok {
		t.Error("expected stock entry expired after 5m")
	}
	if _, ok := s.Get("weather", "paris"); !ok {
		t.Error("expected weather entry still fresh at 5m")
	}
}

func TestSetTTL(t *testing.T) {
	s, now := testStore(t)
	s.SetTTL("webpage", time.Minute)
	s.Put("webpage", "https://example.com", "text")

	*now = now.Add(2 * time.Minute)
	if _, ok := s.Get("webpage", "https://example.com"); ok {
		t.Error("expected miss after custom TTL")
	}
}

func TestOverwrite(t *testing.T) {
	s, now := testStore(t)
	s.Put("weather", "paris", "old")
	*now = now.Add(DefaultTTL + time.Minute)
	s.Put("weather", "paris", "new")

	v, ok := s.Get("weather", "paris")
	if !ok || v.(string) != "new" {
		t.Errorf("got %v (hit=%v), want new", v, ok)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", s.Len())
	}
}

func TestKeyNormalization(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"Paris"}, "paris"},
		{[]string{"  Paris  "}, "paris"},
		{[]string{"large language models", "3"}, "large language models|3"},
		{[]string{"TSLA"}, "tsla"},
	}
	for _, tt := range tests {
		if got := Key(tt.parts...); got != tt.want {
			t.Errorf("Key(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}
