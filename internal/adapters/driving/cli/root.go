// Package cli provides the verita command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	completionanthropic "github.com/verita-labs/verita-cli/internal/adapters/driven/completion/anthropic"
	completionollama "github.com/verita-labs/verita-cli/internal/adapters/driven/completion/ollama"
	completionopenai "github.com/verita-labs/verita-cli/internal/adapters/driven/completion/openai"
	configfile "github.com/verita-labs/verita-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/verita-labs/verita-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/verita-labs/verita-cli/internal/adapters/driven/embedding/openai"
	vectorsqlite "github.com/verita-labs/verita-cli/internal/adapters/driven/vectorindex/sqlite"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/core/services"
	"github.com/verita-labs/verita-cli/internal/ingest"
	"github.com/verita-labs/verita-cli/internal/ingest/chunker"
	"github.com/verita-labs/verita-cli/internal/ingest/docx"
	"github.com/verita-labs/verita-cli/internal/ingest/pdf"
	"github.com/verita-labs/verita-cli/internal/ingest/pptx"
	"github.com/verita-labs/verita-cli/internal/ingest/text"
	"github.com/verita-labs/verita-cli/internal/ingest/xlsx"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// defaultComposeTemperature matches a conversational register without
// drifting from the analysis.
const defaultComposeTemperature = 0.3

var (
	verbose   bool
	configDir string
)

// Wired services, populated by initServices on first use.
var (
	configStore   *configfile.ConfigStore
	promptStore   *configfile.PromptStore
	snapshots     *services.SnapshotHolder
	classifier    *services.Classifier
	router        *services.Router
	retriever     *services.Retriever
	reconciler    *services.Reconciler
	composer      *services.Composer
	ingestService *ingest.Service
	corpusDir     string
	defaultTopK   int
)

var rootCmd = &cobra.Command{
	Use:   "verita",
	Short: "Grounded question answering over a local document corpus",
	Long: `Verita answers questions from your own documents.

It classifies each query, routes it to the document types most likely
to hold the answer, retrieves matching evidence, cross-checks the claim
against that evidence, and composes an answer that cites only retrieved
sources.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.verita)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires adapters and core services from configuration.
// Commands that talk to the pipeline call it lazily, so commands like
// version work without API keys or config.
func initServices() error {
	if configStore != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	promptStore, err = configfile.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}

	completion, err := buildCompletion()
	if err != nil {
		return err
	}
	embedder, err := buildEmbedding()
	if err != nil {
		return err
	}

	snapshots = services.NewSnapshotHolder()
	router = services.NewRouter()
	retriever = services.NewRetriever(snapshots, embedder)

	classifier = services.NewClassifier(completion)
	classifier.SetPromptStore(promptStore)

	reconciler = services.NewReconciler(completion)
	reconciler.SetPromptStore(promptStore)

	temperature := configStore.GetFloat(configfile.KeyCompletionTemperature)
	if temperature == 0 {
		temperature = defaultComposeTemperature
	}
	composer = services.NewComposer(completion, temperature)
	composer.SetPromptStore(promptStore)

	defaultTopK = configStore.GetInt(configfile.KeyTopK)
	if defaultTopK < 1 {
		defaultTopK = services.DefaultTopK
	}

	corpusDir = configStore.GetString(configfile.KeyDataDir)
	indexPath := configStore.GetString(configfile.KeyIndexPath)
	if corpusDir == "" || indexPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		if corpusDir == "" {
			corpusDir = filepath.Join(home, ".verita", "data")
		}
		if indexPath == "" {
			indexPath = filepath.Join(home, ".verita", "index.db")
		}
	}

	ingestors := []driven.Ingestor{
		pdf.New(),
		docx.New(),
		pptx.New(),
		xlsx.New(),
		text.New(),
	}
	ingestService = ingest.NewService(
		ingestors,
		chunker.New(),
		embedder,
		snapshots,
		vectorsqlite.New(),
		corpusDir,
		indexPath,
	)

	logger.Debug("services wired: corpus=%s index=%s", corpusDir, indexPath)
	return nil
}

// buildCompletion constructs the configured completion backend.
// API keys come from the environment only; the config file never
// stores secrets.
func buildCompletion() (driven.CompletionService, error) {
	provider := configStore.GetString(configfile.KeyCompletionProvider)
	if provider == "" {
		provider = "openai"
	}

	model := configStore.GetString(configfile.KeyCompletionModel)
	baseURL := configStore.GetString(configfile.KeyCompletionBaseURL)

	switch provider {
	case "openai":
		return completionopenai.New(completionopenai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: baseURL,
			Model:   model,
		})
	case "anthropic":
		return completionanthropic.New(completionanthropic.Config{
			APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
			BaseURL: baseURL,
			Model:   model,
		})
	case "ollama":
		return completionollama.New(completionollama.Config{
			BaseURL: baseURL,
			Model:   model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", provider)
	}
}

// buildEmbedding constructs the configured embedding backend.
func buildEmbedding() (driven.EmbeddingService, error) {
	provider := configStore.GetString(configfile.KeyEmbeddingProvider)
	if provider == "" {
		provider = "openai"
	}

	model := configStore.GetString(configfile.KeyEmbeddingModel)
	baseURL := configStore.GetString(configfile.KeyEmbeddingBaseURL)

	switch provider {
	case "openai":
		return embeddingopenai.New(embeddingopenai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: baseURL,
			Model:   model,
		})
	case "ollama":
		return embeddingollama.New(embeddingollama.Config{
			BaseURL: baseURL,
			Model:   model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}
