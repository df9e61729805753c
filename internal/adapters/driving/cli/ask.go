package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

var (
	askTop      int
	askFilter   string
	askSemantic bool
	askCaptions bool
	askGroups   []string
	askJSON     bool
	askNoStream bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the Civil Procedure Rules",
	Long: `Retrieves the most relevant rule subsections for the question and
generates an answer grounded in them. Each answer statement carries a
citation of the form "label, sourcepage, sourcefile".`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTop, "top", "n", 5, "maximum number of chunks to retrieve")
	askCmd.Flags().StringVar(&askFilter, "filter", "", "index filter expression")
	askCmd.Flags().BoolVar(&askSemantic, "semantic", false, "enable semantic reranking")
	askCmd.Flags().BoolVar(&askCaptions, "captions", false, "use semantic captions as source content")
	askCmd.Flags().StringSliceVar(&askGroups, "groups", nil, "restrict results to these security groups")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "wait for the full answer instead of streaming")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	req := domain.AskRequest{
		Question: args[0],
		Retrieval: domain.RetrievalOptions{
			Top:              askTop,
			Filter:           askFilter,
			SemanticRanking:  askSemantic,
			SemanticCaptions: askSemantic && askCaptions,
			Groups:           askGroups,
		},
		UseSemanticCaptions: askSemantic && askCaptions,
	}

	ctx := context.Background()

	var answer *domain.Answer
	var err error
	if askJSON || askNoStream {
		answer, err = askService.Ask(ctx, req)
	} else {
		answer, err = askService.AskStream(ctx, req, func(delta string) {
			cmd.Print(delta)
		})
		if answer != nil && answer.Text != "" {
			cmd.Println()
		}
	}
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, answer)
	}

	return outputAskText(cmd, answer, askNoStream)
}

func outputAskJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, answer *domain.Answer, printAnswer bool) error {
	// Streamed answers were already written delta by delta.
	if printAnswer && answer.Text != "" {
		cmd.Println(answer.Text)
	}

	if len(answer.Sources) == 0 {
		cmd.Println("No sources found.")
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i := range answer.Sources {
		src := &answer.Sources[i]
		cmd.Printf("  [%d] %s\n", i+1, src.Citation)
		if src.CaptionSummary != "" {
			cmd.Printf("      %s\n", src.CaptionSummary)
		} else if snippet := sourceSnippet(src.Content); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
	}

	return nil
}

// sourceSnippet returns the first line of content, truncated for display.
func sourceSnippet(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > 120 {
		line = line[:117] + "..."
	}
	return line
}
