package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/services"
)

var (
	askJSON bool
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the indexed corpus",
	Long: `Runs the full answer pipeline: classifies the question, routes it to
the relevant document types, retrieves evidence, fact-checks the claim
and composes a grounded answer with citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full pipeline context as JSON")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "evidence chunks to retrieve (default from config)")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the JSON shape of a detailed pipeline run.
type askOutput struct {
	Query         string        `json:"query"`
	Category      string        `json:"category"`
	AllowedTypes  []string      `json:"allowed_types"`
	Evidence      []askEvidence `json:"evidence"`
	Verdict       string        `json:"verdict"`
	Justification string        `json:"justification"`
	CitedSources  []string      `json:"cited_sources"`
	Answer        string        `json:"answer"`
}

type askEvidence struct {
	Content      string `json:"content"`
	DocumentType string `json:"document_type"`
	SourceName   string `json:"source_name"`
	Location     string `json:"location"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := ingestService.Restore(ctx); err != nil {
		return err
	}

	topK := askTopK
	if topK < 1 {
		topK = defaultTopK
	}

	pipeline := services.NewPipelineService(classifier, router, retriever, reconciler, composer, topK)

	pctx, err := pipeline.RunDetailed(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrIndexUnavailable) {
			return fmt.Errorf("no document index found; run 'verita ingest' first")
		}
		return err
	}

	if askJSON {
		return outputAskJSON(cmd, pctx)
	}

	cmd.Println(pctx.Answer)
	return nil
}

func outputAskJSON(cmd *cobra.Command, pctx *domain.PipelineContext) error {
	out := askOutput{
		Query:        pctx.Query,
		Category:     string(pctx.Category),
		AllowedTypes: make([]string, len(pctx.AllowedTypes)),
		Evidence:     make([]askEvidence, len(pctx.Evidence)),
		Answer:       pctx.Answer,
	}
	for i, t := range pctx.AllowedTypes {
		out.AllowedTypes[i] = t.String()
	}
	for i, chunk := range pctx.Evidence {
		out.Evidence[i] = askEvidence{
			Content:      chunk.Content,
			DocumentType: chunk.DocumentType.String(),
			SourceName:   chunk.SourceName,
			Location:     chunk.Location.String(),
		}
	}
	if pctx.Reconciliation != nil {
		out.Verdict = string(pctx.Reconciliation.Verdict)
		out.Justification = pctx.Reconciliation.Justification
		out.CitedSources = make([]string, len(pctx.Reconciliation.CitedSources))
		for i, ref := range pctx.Reconciliation.CitedSources {
			out.CitedSources[i] = ref.String()
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
