package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

var (
	feedbackAnswer    string
	feedbackCitations []string
	feedbackComment   string
	feedbackLimit     int
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and review feedback on answers",
}

var feedbackRecordCmd = &cobra.Command{
	Use:   "record [question] [positive|negative]",
	Short: "Record a verdict on an answer",
	Args:  cobra.ExactArgs(2),
	RunE:  runFeedbackRecord,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded feedback, newest first",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackList,
}

func init() {
	feedbackRecordCmd.Flags().StringVar(&feedbackAnswer, "answer", "", "the answer text being rated")
	feedbackRecordCmd.Flags().StringSliceVar(&feedbackCitations, "citations", nil, "citations the answer carried")
	feedbackRecordCmd.Flags().StringVar(&feedbackComment, "comment", "", "optional free-text remark")
	feedbackListCmd.Flags().IntVarP(&feedbackLimit, "limit", "n", 20, "maximum number of records to show")

	feedbackCmd.AddCommand(feedbackRecordCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackRecord(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	fb := domain.Feedback{
		Question:  args[0],
		Answer:    feedbackAnswer,
		Citations: feedbackCitations,
		Rating:    domain.FeedbackRating(args[1]),
		Comment:   feedbackComment,
	}

	stored, err := feedbackService.Record(context.Background(), fb)
	if err != nil {
		return fmt.Errorf("record feedback failed: %w", err)
	}

	cmd.Printf("Recorded %s feedback %s\n", stored.Rating, stored.ID)
	return nil
}

func runFeedbackList(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	records, err := feedbackService.List(context.Background(), feedbackLimit)
	if err != nil {
		return fmt.Errorf("list feedback failed: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No feedback recorded.")
		return nil
	}

	for i := range records {
		fb := &records[i]
		cmd.Printf("%s  %-8s  %s\n", fb.CreatedAt.Format("2006-01-02 15:04"), fb.Rating, fb.Question)
		if fb.Comment != "" {
			cmd.Printf("    %s\n", fb.Comment)
		}
	}
	return nil
}
