package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lotirium/SUNDAY/internal/cache"
	"github.com/lotirium/SUNDAY/internal/chat"
	"github.com/lotirium/SUNDAY/internal/provider"
	"github.com/lotirium/SUNDAY/internal/router"
)

// fakeCompleter records the request and echoes a canned reply.
type fakeCompleter struct {
	got   []chat.Message
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	f.got = messages
	return f.reply, f.err
}

const owmParis = `{
	"name": "Paris",
	"sys": {"country": "FR"},
	"main": {"temp": 18.0, "feels_like": 17.2, "humidity": 60},
	"weather": [{"description": "scattered clouds"}],
	"wind": {"speed": 4.1},
	"dt": 1700000000
}`

func weatherClient(t *testing.T) *provider.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(owmParis))
	}))
	t.Cleanup(srv.Close)
	return provider.New(provider.Config{
		Credentials:    provider.Credentials{Weather: "k"},
		WeatherBaseURL: srv.URL,
	}, cache.New())
}

func TestAugmentNoMatch(t *testing.T) {
	a := New(&fakeCompleter{}, provider.New(provider.Config{}, nil), Options{})

	if aug := a.Augment(context.Background(), "good morning, how are you?"); aug != nil {
		t.Errorf("expected nil augmentation, got %+v", aug)
	}
}

func TestAugmentWeather(t *testing.T) {
	a := New(&fakeCompleter{}, weatherClient(t), Options{})

	aug := a.Augment(context.Background(), "What's the weather in Paris?")
	if aug == nil {
		t.Fatal("expected augmentation")
	}
	if aug.Intent != router.Weather || aug.Param != "Paris" {
		t.Errorf("intent=%v param=%q", aug.Intent, aug.Param)
	}
	for _, want := range []string{"Paris", "18", "60"} {
		if !strings.Contains(aug.Context, want) {
			t.Errorf("context missing %q: %s", want, aug.Context)
		}
	}
	if aug.Err != nil {
		t.Errorf("unexpected error: %v", aug.Err)
	}
}

func TestAugmentStockMissingCredential(t *testing.T) {
	// No Alpha Vantage key configured: the lookup must report the missing
	// credential as a fragment, not crash.
	a := New(&fakeCompleter{}, provider.New(provider.Config{}, nil), Options{})

	aug := a.Augment(context.Background(), "stock price for TSLA")
	if aug == nil {
		t.Fatal("expected augmentation")
	}
	if aug.Param != "TSLA" {
		t.Errorf("param = %q, want TSLA", aug.Param)
	}
	if !provider.IsKind(aug.Err, provider.MissingCredential) {
		t.Fatalf("expected MissingCredential, got %v", aug.Err)
	}
	if !strings.Contains(aug.Context, "lookup failed") {
		t.Errorf("expected failure fragment, got %q", aug.Context)
	}
}

func TestAugmentSearchFallsBackThenFails(t *testing.T) {
	// Both the keyed API and the scrape target are unreachable: the result
	// is a NetworkFailure fragment, never a panic or raw error.
	deadAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadLite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	apiURL, liteURL := deadAPI.URL, deadLite.URL
	deadAPI.Close()
	deadLite.Close()

	providers := provider.New(provider.Config{
		Credentials:           provider.Credentials{Serp: "k"},
		SearchBaseURL:         apiURL,
		SearchFallbackBaseURL: liteURL,
	}, nil)
	a := New(&fakeCompleter{}, providers, Options{})

	aug := a.Augment(context.Background(), "tell me about large language models")
	if aug == nil {
		t.Fatal("expected augmentation")
	}
	if aug.Intent != router.Search || aug.Param != "large language models" {
		t.Errorf("intent=%v param=%q", aug.Intent, aug.Param)
	}
	if !provider.IsKind(aug.Err, provider.NetworkFailure) {
		t.Fatalf("expected NetworkFailure, got %v", aug.Err)
	}
}

func TestAugmentSearchWithTopHitDetail(t *testing.T) {
	pageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>deep page content</p></body></html>"))
	}))
	t.Cleanup(pageSrv.Close)

	serpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results":[{"title":"T","link":"` + pageSrv.URL + `","snippet":"s"}]}`))
	}))
	t.Cleanup(serpSrv.Close)

	providers := provider.New(provider.Config{
		Credentials:   provider.Credentials{Serp: "k"},
		SearchBaseURL: serpSrv.URL,
	}, nil)
	a := New(&fakeCompleter{}, providers, Options{})

	aug := a.Augment(context.Background(), "search for deep pages")
	if aug == nil {
		t.Fatal("expected augmentation")
	}
	if !strings.Contains(aug.Context, "deep page content") {
		t.Errorf("expected top-hit detail in context: %s", aug.Context)
	}
}

func TestAskInjectsAugmentationAsSystemMessage(t *testing.T) {
	fc := &fakeCompleter{reply: "It's 18 degrees in Paris, Boss."}
	a := New(fc, weatherClient(t), Options{})

	reply := a.Ask(context.Background(), "weather in Paris", nil)
	if reply != "It's 18 degrees in Paris, Boss." {
		t.Errorf("reply = %q", reply)
	}

	last := fc.got[len(fc.got)-1]
	if last.Role != chat.RoleSystem {
		t.Fatalf("expected trailing system message, got role %q", last.Role)
	}
	if !strings.Contains(last.Content, "I've accessed the internet") {
		t.Errorf("augmentation preamble missing: %s", last.Content)
	}
	if !strings.Contains(last.Content, "Paris") {
		t.Errorf("augmentation data missing: %s", last.Content)
	}

	// The injected context is per-request only, never part of the durable
	// conversation.
	for _, m := range a.Messages()[1:] {
		if m.Role == chat.RoleSystem {
			t.Errorf("augmentation leaked into conversation: %+v", m)
		}
	}
}

func TestAskUnaugmented(t *testing.T) {
	fc := &fakeCompleter{reply: "Hello, Boss."}
	a := New(fc, provider.New(provider.Config{}, nil), Options{})

	a.Ask(context.Background(), "good morning", nil)

	if len(fc.got) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(fc.got))
	}
	if fc.got[1].Role != chat.RoleUser || fc.got[1].Content != "good morning" {
		t.Errorf("user turn = %+v", fc.got[1])
	}
}

func TestAskCompletionFailureStaysInCharacter(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("upstream down")}
	a := New(fc, provider.New(provider.Config{}, nil), Options{})

	reply := a.Ask(context.Background(), "good morning", nil)
	if !strings.Contains(reply, "system error") {
		t.Errorf("expected in-character error reply, got %q", reply)
	}
	// The failure reply is part of the conversation like any other turn.
	msgs := a.Messages()
	if msgs[len(msgs)-1].Content != reply {
		t.Error("error reply not recorded in conversation")
	}
}

func TestAskAcknowledgement(t *testing.T) {
	fc := &fakeCompleter{reply: "done"}
	a := New(fc, provider.New(provider.Config{}, nil), Options{})

	var acked string
	a.Ask(context.Background(), "good morning", func(s string) { acked = s })
	if acked == "" {
		t.Error("expected acknowledgement callback")
	}
}

func TestClearHistory(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	a := New(fc, provider.New(provider.Config{}, nil), Options{})

	a.Ask(context.Background(), "good morning", nil)
	a.ClearHistory()

	msgs := a.Messages()
	if len(msgs) != 1 || msgs[0].Role != chat.RoleSystem {
		t.Errorf("expected only system prompt after clear, got %+v", msgs)
	}
}

type memRecorder struct {
	msgs []chat.Message
}

func (m *memRecorder) Append(sessionID string, msg chat.Message) error {
	m.msgs = append(m.msgs, msg)
	return nil
}

func TestRecording(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	a := New(fc, provider.New(provider.Config{}, nil), Options{})

	rec := &memRecorder{}
	a.Record(rec, "session-1")
	a.Ask(context.Background(), "good morning", nil)

	// system prompt + user turn + assistant reply
	if len(rec.msgs) != 3 {
		t.Fatalf("expected 3 recorded messages, got %d", len(rec.msgs))
	}
	if rec.msgs[1].Content != "good morning" || rec.msgs[2].Content != "ok" {
		t.Errorf("recorded turns wrong: %+v", rec.msgs)
	}
}

func TestClipDetailCountsRunes(t *testing.T) {
	long := strings.Repeat("é", detailLimit+100)
	got := clipDetail(long)
	if !utf8.ValidString(got) {
		t.Fatal("clipped detail is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != detailLimit+3 {
		t.Errorf("expected %d runes, got %d", detailLimit+3, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing truncation marker: %q", got[len(got)-10:])
	}

	short := "brief"
	if clipDetail(short) != short {
		t.Errorf("short detail should pass through unchanged")
	}
}
