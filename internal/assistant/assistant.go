// Package assistant wires the pieces together: route the user's text to an
// intent, fetch live data through the cached providers, rewrite it as
// persona context, and request a completion with the conversation so far.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lotirium/SUNDAY/internal/chat"
	"github.com/lotirium/SUNDAY/internal/narrative"
	"github.com/lotirium/SUNDAY/internal/persona"
	"github.com/lotirium/SUNDAY/internal/provider"
	"github.com/lotirium/SUNDAY/internal/router"
)

// Augmentation is the auxiliary context attached to one request. Failed
// lookups still produce an Augmentation (with a neutral fragment and the
// classified error) so the caller can decide whether to surface them.
type Augmentation struct {
	Intent  router.Intent
	Param   string
	Context string
	Err     error // the provider error behind a failure fragment, if any
}

// Options tunes the augmentation layer.
type Options struct {
	NewsCount   int
	SearchCount int
	PageLength  int
}

// Recorder receives every conversation turn as it happens. Implemented by
// the history store; nil disables recording.
type Recorder interface {
	Append(sessionID string, msg chat.Message) error
}

// Assistant owns one conversation. Not safe for concurrent Ask calls; the
// REPL is strictly sequential.
type Assistant struct {
	completer chat.Completer
	providers *provider.Client
	opts      Options

	messages []chat.Message

	recorder  Recorder
	sessionID string
}

// New creates an Assistant with the persona system prompt as the first
// conversation turn.
func New(completer chat.Completer, providers *provider.Client, opts Options) *Assistant {
	if opts.NewsCount <= 0 {
		opts.NewsCount = provider.DefaultNewsCount
	}
	if opts.SearchCount <= 0 {
		opts.SearchCount = provider.DefaultSearchCount
	}
	if opts.PageLength <= 0 {
		opts.PageLength = 1500
	}
	return &Assistant{
		completer: completer,
		providers: providers,
		opts:      opts,
		messages:  []chat.Message{{Role: chat.RoleSystem, Content: persona.SystemPrompt}},
	}
}

// Record attaches a session recorder. The system prompt is recorded
// immediately so exported logs match the in-memory conversation.
func (a *Assistant) Record(r Recorder, sessionID string) {
	a.recorder = r
	a.sessionID = sessionID
	a.record(a.messages[0])
}

func (a *Assistant) record(msg chat.Message) {
	if a.recorder != nil {
		// Best effort: a failed history write never blocks the conversation.
		a.recorder.Append(a.sessionID, msg) //nolint:errcheck
	}
}

// Augment classifies input and fetches matching live data. A nil return
// means no pattern matched and the request proceeds unaugmented. Augment
// never returns an error: lookup failures become neutral failure fragments.
func (a *Assistant) Augment(ctx context.Context, input string) *Augmentation {
	match := router.Route(input)
	if match.Intent == router.None {
		return nil
	}

	aug := &Augmentation{Intent: match.Intent, Param: match.Param}
	switch match.Intent {
	case router.Weather:
		w, err := a.providers.Weather(ctx, match.Param)
		if err != nil {
			return failed(aug, "weather", err)
		}
		aug.Context = narrative.Weather(w)
	case router.News:
		articles, err := a.providers.News(ctx, match.Param, a.opts.NewsCount)
		if err != nil {
			return failed(aug, "news", err)
		}
		aug.Context = narrative.News(articles)
	case router.Stock:
		q, err := a.providers.Quote(ctx, match.Param)
		if err != nil {
			return failed(aug, "stock", err)
		}
		aug.Context = narrative.Stock(q)
	case router.Search:
		hits, err := a.providers.Search(ctx, match.Param, a.opts.SearchCount)
		if err != nil {
			return failed(aug, "search", err)
		}
		aug.Context = narrative.Search(match.Param, hits, a.topHitDetail(ctx, hits))
	}
	return aug
}

func failed(aug *Augmentation, capability string, err error) *Augmentation {
	aug.Err = err
	aug.Context = narrative.Failure(capability, err)
	return aug
}

// topHitDetail pulls page text from the first search hit to enrich the
// context. Best effort; an unreadable page just means no detail section.
func (a *Assistant) topHitDetail(ctx context.Context, hits []provider.SearchHit) string {
	if len(hits) == 0 {
		return ""
	}
	link := hits[0].Link
	if !strings.HasPrefix(link, "http") {
		return ""
	}
	page, err := a.providers.Page(ctx, link, a.opts.PageLength)
	if err != nil {
		return ""
	}
	return clipDetail(page.Text)
}

const detailLimit = 800

// clipDetail bounds the detail fragment, counting runes so a multi-byte
// character is never split mid-sequence.
func clipDetail(text string) string {
	runes := []rune(text)
	if len(runes) <= detailLimit {
		return text
	}
	return string(runes[:detailLimit]) + "..."
}

// Ask runs the full loop for one user turn: augment, extend the
// conversation, request a completion, and record the reply. The optional
// ack callback fires after augmentation, before the blocking completion.
// Completion failures are folded into an in-character error reply so a
// flaky upstream never aborts the conversation.
func (a *Assistant) Ask(ctx context.Context, input string, ack func(string)) string {
	aug := a.Augment(ctx, input)

	userMsg := chat.Message{Role: chat.RoleUser, Content: input}
	a.messages = append(a.messages, userMsg)
	a.record(userMsg)

	if ack != nil {
		ack(persona.Acknowledgement())
	}

	request := a.messages
	if aug != nil {
		request = append(append([]chat.Message{}, a.messages...), chat.Message{
			Role: chat.RoleSystem,
			Content: fmt.Sprintf(
				"I've accessed the internet and found this information: %s\n\nPlease incorporate this information into your response while maintaining your SUNDAY persona. Do not explicitly state that this came from a system message.",
				aug.Context,
			),
		})
	}

	reply, err := a.completer.Complete(ctx, request)
	if err != nil {
		reply = fmt.Sprintf("I'm experiencing a system error: %v. Shall I run diagnostics?", err)
	}

	replyMsg := chat.Message{Role: chat.RoleAssistant, Content: reply}
	a.messages = append(a.messages, replyMsg)
	a.record(replyMsg)
	return reply
}

// Messages returns the conversation so far, system prompt included.
func (a *Assistant) Messages() []chat.Message {
	return a.messages
}

// ClearHistory forgets the conversation, keeping only the system prompt.
func (a *Assistant) ClearHistory() {
	a.messages = a.messages[:1]
}
