package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docqa/internal/chat"
	"docqa/internal/config"
	"docqa/internal/document"
	"docqa/internal/embedding"
	"docqa/internal/helper"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/prompts"
	"docqa/internal/vectorindex"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	files := flag.String("file", "", "Comma-separated document paths to ingest")
	urls := flag.String("url", "", "Comma-separated document URLs to ingest")
	query := flag.String("query", "", "One-shot question against the saved index")
	chatLoop := flag.Bool("chat", false, "Interactive chat session against the saved index")
	verbose := flag.Bool("verbose", false, "Dump the retrieved chunks alongside each answer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	embedder, err := embedding.NewEmbedder(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	index := vectorindex.New(cfg.FolderPath, cfg.IndexName, cfg.TopK, embedder)

	ctx := context.Background()
	sources := splitList(*files)
	sources = append(sources, splitList(*urls)...)
	switch {
	case len(sources) > 0:
		runIngest(ctx, cfg, index, sources)
	case *query != "":
		session := newSession(cfg, index)
		answerOne(ctx, session, *query, *verbose)
	case *chatLoop:
		session := newSession(cfg, index)
		runChat(ctx, session, *verbose)
	default:
		flag.Usage()
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func runIngest(ctx context.Context, cfg *config.Config, index *vectorindex.Index, sources []string) {
	opts := ingest.Options{
		Strategy:     document.Strategy(cfg.SplitMethod),
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}
	if err := ingest.Ingest(ctx, index, sources, opts); err != nil {
		log.Fatal().Err(err).Msg("Error ingesting documents")
	}
	log.Info().Int("chunks", index.Len()).Msg("Ingestion complete")
}

func newSession(cfg *config.Config, index *vectorindex.Index) *chat.Chat {
	template, err := prompts.Resolve(prompts.Category(cfg.PromptCategory), cfg.PromptStyle)
	if err != nil {
		log.Fatal().Err(err).Msg("Error resolving prompt template")
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM client")
	}

	if err := index.Load(); err != nil {
		log.Fatal().Err(err).Msg("Error loading index")
	}

	return chat.New(chat.Mode(cfg.Mode), index.Retriever(), client, template)
}

func answerOne(ctx context.Context, session *chat.Chat, question string, verbose bool) {
	answer, err := session.Ask(ctx, question)
	if err != nil {
		log.Fatal().Err(err).Msg("Error answering question")
	}

	fmt.Printf("%s\n\n", answer.Answer)
	if sources := chat.FormatSources(answer.SourceChunks); sources != "" {
		fmt.Printf("Sources:\n%s\n", sources)
	}
	if verbose {
		helper.PrettyPrint(answer.SourceChunks)
	}
}

func runChat(ctx context.Context, session *chat.Chat, verbose bool) {
	fmt.Println("Ask a question (exit to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}
		answerOne(ctx, session, question, verbose)
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Error reading input")
	}
}
