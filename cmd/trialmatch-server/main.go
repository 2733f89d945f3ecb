package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"trialmatch/internal/extraction"
	"trialmatch/internal/httpapi"
	"trialmatch/internal/llm"
	"trialmatch/internal/matcher"
	"trialmatch/internal/registry"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	provider, model := buildProvider()
	engine := extraction.NewEngine(provider, model)
	client := registry.NewClient(registry.Config{
		BaseURL: envOr("CTGOV_BASE_URL", ""),
	})
	service := matcher.NewService(engine, client)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewServer(service),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("starting trialmatch server addr=%s model=%s", *addr, model)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func buildProvider() (llm.Provider, string) {
	switch strings.ToLower(envOr("LLM_PROVIDER", "openai")) {
	case "anthropic":
		return llm.NewAnthropicProvider(requiredEnv("ANTHROPIC_API_KEY")), envOr("LLM_MODEL", defaultAnthropicModel)
	default:
		return llm.NewOpenAIProvider(requiredEnv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL")), envOr("LLM_MODEL", defaultOpenAIModel)
	}
}

func requiredEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Fatalf("missing required env var %s", key)
	}
	return v
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
