package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"locale-translator/internal/cache"
	"locale-translator/internal/config"
	"locale-translator/internal/filewalker"
	"locale-translator/internal/glossary"
	"locale-translator/internal/memory"
	"locale-translator/internal/seed"
	"locale-translator/internal/transform"
	"locale-translator/internal/translation"
	"locale-translator/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "locale-translator",
		Short: "Selective Russian→Ukrainian translator for JS/JSON locale files",
		Long: `Translates the Cyrillic string values of JavaScript and JSON locale files
to Ukrainian while preserving everything else byte for byte: keys, comments,
formatting, placeholders, and markup.`,
	}

	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(ingestPairsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <input> [output]",
		Short: "Translate the Cyrillic values of a locale file or directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _ := cmd.Flags().GetString("engine")
			workers, _ := cmd.Flags().GetInt("workers")

			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runTranslate(args[0], output, engine, workers)
		},
	}

	cmd.Flags().String("engine", translation.EngineGoogle, "Translation engine: google or offline")
	cmd.Flags().Int("workers", 0, "Concurrent file workers (default from WORKER_COUNT)")

	return cmd
}

func ingestPairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest-pairs <source-file> <translated-file>",
		Short: "Ingest an aligned ru/uk file pair as translation memory",
		Long: `Aligns the string values of a Russian locale file with its already
translated Ukrainian counterpart and stores the pairs for the offline engine,
the translation cache, the terminology graph, and vector retrieval.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, _ := cmd.Flags().GetString("export")
			exportPath, _ := cmd.Flags().GetString("output")
			return runIngestPairs(args[0], args[1], exportFormat, exportPath)
		},
	}

	cmd.Flags().String("export", "", "Also export pairs: tsv or json")
	cmd.Flags().String("output", "seed_pairs", "Export path (without extension)")

	return cmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// connectPostgres returns a pool or nil when the database is not configured
// or not reachable. Translation degrades without it.
func connectPostgres(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		log.Debug().Msg("DATABASE_URL not set, running without cache and memory")
		return nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, continuing without cache and memory")
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Warn().Err(err).Msg("PostgreSQL unavailable, continuing without cache and memory")
		return nil
	}

	log.Info().Msg("Connected to PostgreSQL")
	return pool
}

// connectGlossary returns a glossary or nil when Neo4j is not configured or
// not reachable.
func connectGlossary(ctx context.Context, cfg *config.Config) *glossary.Glossary {
	if cfg.Neo4jURI == "" {
		log.Debug().Msg("NEO4J_URI not set, running without terminology graph")
		return nil
	}

	gl, err := glossary.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Warn().Err(err).Msg("Neo4j unavailable, continuing without terminology graph")
		return nil
	}

	log.Info().Msg("Connected to Neo4j")
	return gl
}

// outputPathFor derives the destination path: ru.js → ru.uk.js.
func outputPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".uk" + ext
}

// runTranslate handles the `translate` command.
func runTranslate(input, output, engineName string, workers int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if workers <= 0 {
		workers = cfg.WorkerCount
	}

	pgPool := connectPostgres(ctx, cfg)
	if pgPool != nil {
		defer pgPool.Close()
	}
	gl := connectGlossary(ctx, cfg)
	if gl != nil {
		defer gl.Close(ctx)
	}

	var translationCache *cache.TranslationCache
	if pgPool != nil {
		translationCache = cache.NewTranslationCache(pgPool)
		if err := translationCache.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Cache schema failed, continuing without cache")
			translationCache = nil
		} else if err := translationCache.Preload(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to preload cache")
		}
	}

	engine, err := buildEngine(ctx, cfg, engineName, pgPool, gl)
	if err != nil {
		return err
	}

	paths, err := filewalker.Walk(input)
	if err != nil {
		return fmt.Errorf("discover input files: %w", err)
	}
	if len(paths) == 0 {
		log.Warn().Str("input", input).Msg("No locale files found")
		return nil
	}
	if output != "" && len(paths) > 1 {
		return fmt.Errorf("explicit output path is only valid for a single input file")
	}

	translator := transform.New(translation.TranslateFunc(ctx, engine, translationCache))

	log.Info().
		Int("files", len(paths)).
		Str("engine", engineName).
		Int("workers", workers).
		Msg("Starting translation")

	pool := worker.NewPool[string, transform.Stats](workers,
		func(ctx context.Context, path string) (transform.Stats, error) {
			outPath := output
			if outPath == "" {
				outPath = outputPathFor(path)
			}
			return translator.TransformFile(path, outPath)
		},
	)

	results := pool.Execute(ctx, paths)

	var total transform.Stats
	failedFiles := 0
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("file", r.Input).Msg("File translation failed")
			failedFiles++
			continue
		}
		total.Values += r.Result.Values
		total.Translated += r.Result.Translated
		total.Failed += r.Result.Failed
	}

	log.Info().
		Int("files", len(paths)-failedFiles).
		Int("failed_files", failedFiles).
		Int("values", total.Values).
		Int("translated", total.Translated).
		Int("kept_original", total.Failed).
		Msg("Translation complete")

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files failed", failedFiles, len(paths))
	}
	return nil
}

// buildEngine wires the requested engine with whatever backends are up.
func buildEngine(ctx context.Context, cfg *config.Config, name string, pgPool *pgxpool.Pool, gl *glossary.Glossary) (translation.Engine, error) {
	switch name {
	case translation.EngineGoogle:
		var retriever *memory.Retriever
		if pgPool != nil || gl != nil {
			var store *memory.Store
			var embedder *memory.EmbeddingClient
			if pgPool != nil {
				store = memory.NewStore(pgPool, cfg.EmbeddingDimensions)
				embedder = memory.NewEmbeddingClient(cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.EmbeddingBaseURL, cfg.EmbeddingDimensions)
			}
			retriever = memory.NewRetriever(store, embedder, gl, 5)
		}
		return translation.NewGoogleEngine(cfg.GeminiAPIKey, cfg.TranslationModel, retriever)

	case translation.EngineOffline:
		if pgPool == nil {
			return nil, fmt.Errorf("the offline engine requires DATABASE_URL with ingested pairs")
		}
		seedStore := seed.NewStore(pgPool)
		lookup, err := seedStore.BuildTranslationMap(ctx)
		if err != nil {
			return nil, fmt.Errorf("load offline translation map: %w", err)
		}
		log.Info().Int("pairs", len(lookup)).Msg("Loaded offline translation map")
		return translation.NewOfflineEngine(lookup), nil

	default:
		return nil, fmt.Errorf("unknown engine %q (want google or offline)", name)
	}
}

// runIngestPairs handles the `ingest-pairs` command.
func runIngestPairs(sourcePath, translatedPath, exportFormat, exportPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("ingest-pairs requires DATABASE_URL")
	}

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect PostgreSQL: %w", err)
	}
	defer pgPool.Close()
	if err := pgPool.Ping(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}

	entries, err := seed.ExtractPairs(sourcePath, translatedPath)
	if err != nil {
		return fmt.Errorf("extract pairs: %w", err)
	}
	if len(entries) == 0 {
		log.Warn().Msg("No translation pairs found in file pair")
		return nil
	}
	entries = seed.Dedupe(entries)

	// Seed store and translation cache.
	seedStore := seed.NewStore(pgPool)
	if err := seedStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("seed schema: %w", err)
	}
	if err := seedStore.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("store pairs: %w", err)
	}

	translationCache := cache.NewTranslationCache(pgPool)
	if err := translationCache.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("cache schema: %w", err)
	}
	for _, e := range entries {
		if err := translationCache.Set(ctx, e.Source, e.Translated); err != nil {
			log.Warn().Err(err).Msg("Failed to cache seed translation")
		}
	}

	// Vector memory, when the embedding backend is configured.
	if cfg.GeminiAPIKey != "" {
		store := memory.NewStore(pgPool, cfg.EmbeddingDimensions)
		embedder := memory.NewEmbeddingClient(cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.EmbeddingBaseURL, cfg.EmbeddingDimensions)
		vectorSeeder := seed.NewVectorSeeder(store, embedder, cfg.BatchSize)
		if err := vectorSeeder.Seed(ctx, entries); err != nil {
			return fmt.Errorf("seed translation memory: %w", err)
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, skipping vector memory seeding")
	}

	// Terminology graph, when Neo4j is configured.
	if gl := connectGlossary(ctx, cfg); gl != nil {
		defer gl.Close(ctx)
		graphSeeder := seed.NewGraphSeeder(gl)
		if err := graphSeeder.Seed(ctx, entries); err != nil {
			return fmt.Errorf("seed terminology graph: %w", err)
		}
	}

	switch exportFormat {
	case "":
	case "json":
		if err := seed.ExportJSON(entries, exportPath+".json"); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	case "tsv":
		if err := seed.ExportTSV(entries, exportPath+".tsv"); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q (want tsv or json)", exportFormat)
	}

	log.Info().Int("pairs", len(entries)).Msg("Pair ingestion complete")
	return nil
}
