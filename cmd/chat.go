package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lotirium/SUNDAY/internal/assistant"
	"github.com/lotirium/SUNDAY/internal/cache"
	"github.com/lotirium/SUNDAY/internal/chat"
	"github.com/lotirium/SUNDAY/internal/config"
	"github.com/lotirium/SUNDAY/internal/history"
	"github.com/lotirium/SUNDAY/internal/persona"
	"github.com/lotirium/SUNDAY/internal/provider"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	replyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func runChat(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	completer, err := chat.New(chat.Config{
		Provider:    cfg.Chat.Provider,
		Model:       cfg.Chat.Model,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
	}, cfg.ChatKey())
	if err != nil {
		return err
	}

	providers := provider.New(provider.Config{
		Credentials: provider.Credentials{
			Serp:    cfg.SerpKey(),
			Weather: cfg.WeatherKey(),
			News:    cfg.NewsKey(),
			Stock:   cfg.StockKey(),
		},
		Timeout: cfg.AugmentTimeout(),
	}, cache.New())

	a := assistant.New(completer, providers, assistant.Options{
		NewsCount:   cfg.Augment.NewsCount,
		SearchCount: cfg.Augment.SearchCount,
		PageLength:  cfg.Augment.PageLength,
	})

	var store *history.Store
	if cfg.History.Enabled && !flagNoHistory {
		store, err = history.Open(config.HistoryPath())
		if err != nil {
			fmt.Println(warnStyle.Render("[warn] history disabled: " + err.Error()))
		} else {
			defer store.Close()
			if id, err := store.Begin(); err == nil {
				a.Record(store, id)
			}
		}
	}

	fmt.Println(speakerStyle.Render("SUNDAY") + " " + replyStyle.Render(persona.Greeting()))
	fmt.Println(subtleStyle.Render("Commands: /clear forgets the conversation, /save exports it, /quit exits."))

	return repl(a)
}

func repl(a *assistant.Assistant) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := runSlashCommand(a, input); quit {
				return nil
			}
			continue
		}

		mood := persona.Sentiment(input)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		reply := a.Ask(ctx, input, func(ack string) {
			fmt.Println(subtleStyle.Render(ack))
		})
		cancel()

		fmt.Println(speakerStyle.Render("SUNDAY") + " " + replyStyleFor(mood).Render(reply))
	}
}

// replyStyleFor picks the reply rendering for the user's mood. Distressed
// input gets the alert colour so the shift in tone is visible.
func replyStyleFor(mood persona.Mood) lipgloss.Style {
	if mood == persona.Concerned {
		return alertStyle
	}
	return replyStyle
}

// runSlashCommand handles the local commands; returns true to exit.
func runSlashCommand(a *assistant.Assistant, input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	switch cmd {
	case "/quit", "/exit":
		fmt.Println(subtleStyle.Render("Powering down. Good talk, Boss."))
		return true
	case "/clear":
		a.ClearHistory()
		fmt.Println(subtleStyle.Render("Conversation cleared."))
	case "/save":
		path := strings.TrimSpace(arg)
		if path == "" {
			path = fmt.Sprintf("sunday_log_%s.json", time.Now().Format("20060102_150405"))
		}
		if err := saveConversation(a, path); err != nil {
			fmt.Println(warnStyle.Render("[warn] " + err.Error()))
		} else {
			fmt.Println(subtleStyle.Render("Saved to " + path))
		}
	default:
		fmt.Println(warnStyle.Render("Unknown command " + cmd))
	}
	return false
}

func saveConversation(a *assistant.Assistant, path string) error {
	msgs := a.Messages()
	if len(msgs) <= 1 {
		return fmt.Errorf("nothing to save yet")
	}
	return writeMessagesJSON(msgs, path)
}
