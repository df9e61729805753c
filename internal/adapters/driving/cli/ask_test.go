package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

// stubAskService returns a canned answer and records the request it saw.
type stubAskService struct {
	answer  *domain.Answer
	err     error
	lastReq domain.AskRequest
	deltas  []string
}

func (s *stubAskService) Ask(_ context.Context, req domain.AskRequest) (*domain.Answer, error) {
	s.lastReq = req
	return s.answer, s.err
}

func (s *stubAskService) AskStream(_ context.Context, req domain.AskRequest, onDelta func(string)) (*domain.Answer, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	for _, d := range s.deltas {
		onDelta(d)
	}
	return s.answer, nil
}

func execAsk(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"ask"}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetAskFlags(t)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetAskFlags(t *testing.T) {
	t.Helper()
	askTop = 5
	askFilter = ""
	askSemantic = false
	askCaptions = false
	askGroups = nil
	askJSON = false
	askNoStream = false
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_NoService(t *testing.T) {
	original := askService
	askService = nil
	defer func() { askService = original }()

	_, err := execAsk(t, "what is standard disclosure")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ask service not configured")
}

func TestAskCmd_StreamsAnswerAndPrintsSources(t *testing.T) {
	stub := &stubAskService{
		deltas: []string{"Rule 31.6 governs ", "standard disclosure."},
		answer: &domain.Answer{
			Text: "Rule 31.6 governs standard disclosure.",
			Sources: []domain.SourceRecord{
				{Citation: "31.6, CPR Part 31#page=4, CPR Part 31", Content: "31.6 Standard disclosure requires..."},
			},
			Citations: []string{"31.6, CPR Part 31#page=4, CPR Part 31"},
		},
	}
	original := askService
	askService = stub
	defer func() { askService = original }()

	out, err := execAsk(t, "what is standard disclosure")

	require.NoError(t, err)
	assert.Contains(t, out, "Rule 31.6 governs standard disclosure.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "[1] 31.6, CPR Part 31#page=4, CPR Part 31")
}

func TestAskCmd_FlagsReachService(t *testing.T) {
	stub := &stubAskService{answer: &domain.Answer{}}
	original := askService
	askService = stub
	defer func() { askService = original }()

	_, err := execAsk(t, "q",
		"--top", "3",
		"--filter", "category eq 'rules'",
		"--semantic", "--captions",
		"--groups", "litigation,chambers",
		"--no-stream",
	)

	require.NoError(t, err)
	assert.Equal(t, 3, stub.lastReq.Retrieval.Top)
	assert.Equal(t, "category eq 'rules'", stub.lastReq.Retrieval.Filter)
	assert.True(t, stub.lastReq.Retrieval.SemanticRanking)
	assert.True(t, stub.lastReq.Retrieval.SemanticCaptions)
	assert.True(t, stub.lastReq.UseSemanticCaptions)
	assert.Equal(t, []string{"litigation", "chambers"}, stub.lastReq.Retrieval.Groups)
}

func TestAskCmd_CaptionsIgnoredWithoutSemantic(t *testing.T) {
	stub := &stubAskService{answer: &domain.Answer{}}
	original := askService
	askService = stub
	defer func() { askService = original }()

	_, err := execAsk(t, "q", "--captions", "--no-stream")

	require.NoError(t, err)
	assert.False(t, stub.lastReq.Retrieval.SemanticCaptions)
	assert.False(t, stub.lastReq.UseSemanticCaptions)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	stub := &stubAskService{
		answer: &domain.Answer{
			Text:      "answer",
			Citations: []string{"1.2, CPR Part 1#page=10, CPR Part 1"},
		},
	}
	original := askService
	askService = stub
	defer func() { askService = original }()

	out, err := execAsk(t, "q", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"Text": "answer"`)
	assert.Contains(t, out, "1.2, CPR Part 1#page=10, CPR Part 1")
}

func TestAskCmd_NoSources(t *testing.T) {
	stub := &stubAskService{answer: &domain.Answer{}}
	original := askService
	askService = stub
	defer func() { askService = original }()

	out, err := execAsk(t, "q", "--no-stream")

	require.NoError(t, err)
	assert.Contains(t, out, "No sources found.")
}

func TestSourceSnippet(t *testing.T) {
	assert.Equal(t, "first line", sourceSnippet("first line\nsecond line"))
	assert.Equal(t, "", sourceSnippet("   \n"))

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	snippet := sourceSnippet(string(long))
	assert.Len(t, snippet, 120)
	assert.True(t, len(snippet) <= 120)
}
