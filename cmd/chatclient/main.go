package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"kate-klips/internal/chat"
	"kate-klips/internal/config"
	"kate-klips/internal/logging"
	"kate-klips/internal/render"
	"kate-klips/internal/wire"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/peterh/liner"
)

const defaultURL = "http://localhost:8080/api/chat_openai"

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// main is the entry point for the terminal chat client.
func main() {
	_ = godotenv.Load()

	url := flag.String("url", envOr("FORWARDER_URL", defaultURL), "forwarder route to post conversations to")
	mode := flag.String("render", "markdown", "reply rendering: markdown or raw")
	flag.Parse()

	// Logs go to a file or nowhere so they never mix with the conversation.
	logger := logging.Discard()
	if path := os.Getenv("LOG_FILE"); path != "" {
		l, err := logging.Init(config.LogConfig{Level: os.Getenv("LOG_LEVEL"), Format: "text", File: path})
		if err != nil {
			log.Fatalf("Could not set up logging: %v", err)
		}
		logger = l
	}

	markdown := *mode == "markdown" && render.IsTerminal(os.Stdout)
	renderer := render.Raw()
	if markdown {
		renderer = render.New(render.TerminalWidth())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := newPrinter(os.Stdout, renderer, markdown)
	session := chat.NewService(chat.NewHTTPForwarderClient(*url, logger), out.update, logger)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Printf("Chatting with %s. Ctrl+D to quit.\n", *url)
	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			log.Fatalf("Could not read input: %v", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		out.begin()
		// The error is already in the snapshot and printed from there.
		_ = session.Send(ctx, input)
		out.end()

		if ctx.Err() != nil {
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// printer draws session snapshots. In raw mode fragments are printed as
// they arrive; in markdown mode the finished reply is rendered once.
type printer struct {
	w        io.Writer
	renderer *render.Renderer
	markdown bool

	mu      sync.Mutex
	printed int
	shown   bool
	last    chat.Snapshot
}

func newPrinter(w io.Writer, renderer *render.Renderer, markdown bool) *printer {
	return &printer{w: w, renderer: renderer, markdown: markdown}
}

func (p *printer) begin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printed = 0
	p.shown = false
	fmt.Fprintln(p.w, loadingStyle.Render("Loading..."))
}

func (p *printer) update(snap chat.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = snap

	if p.markdown {
		return
	}
	last, ok := snap.Last()
	if !ok || last.Role != wire.RoleAssistant {
		return
	}
	if !p.shown {
		fmt.Fprint(p.w, promptStyle.Render("assistant> "))
		p.shown = true
	}
	if len(last.Content) > p.printed {
		fmt.Fprint(p.w, last.Content[p.printed:])
		p.printed = len(last.Content)
	}
}

func (p *printer) end() {
	p.mu.Lock()
	defer p.mu.Unlock()

	last, ok := p.last.Last()
	hasReply := ok && last.Role == wire.RoleAssistant
	switch {
	case p.markdown && hasReply:
		fmt.Fprint(p.w, p.renderer.Render(last.Content))
	case p.shown:
		fmt.Fprintln(p.w)
	}
	if p.last.Err != "" {
		fmt.Fprintln(p.w, errorStyle.Render(p.last.Err))
	}
}
