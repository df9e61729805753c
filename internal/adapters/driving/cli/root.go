// Package cli implements the cobra command tree for cprchat.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cprchat/internal/core/ports/driving"
	"github.com/custodia-labs/cprchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by the composition root before Execute.
// Commands check for nil and fail with a clear error, so the CLI
// degrades gracefully when a backend is not configured.
var (
	askService      driving.AskService
	feedbackService driving.FeedbackService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cprchat",
	Short: "Ask grounded questions about the UK Civil Procedure Rules",
	Long: `cprchat answers questions about the UK Civil Procedure Rules and
court guides, grounded in an indexed document collection. Every statement
in an answer carries a citation back to the rule subsection it came from.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetAskService injects the ask service used by the ask command.
func SetAskService(s driving.AskService) {
	askService = s
}

// SetFeedbackService injects the feedback service used by the feedback commands.
func SetFeedbackService(s driving.FeedbackService) {
	feedbackService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
