package ai

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/validation"
)

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	requests []Request
	replies  []fakeReply
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return "", stderrors.New("no reply configured")
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply.text, reply.err
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleDataset() domain.Dataset {
	return domain.Dataset{
		Employees: []domain.Employee{{ID: 1, Name: "Ana Souza", Role: "Analista"}},
		Tasks: []domain.Task{{
			ID: 1, EmployeeID: 1, Title: "Fechamento",
			Date:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Hours:  3,
			Status: domain.TaskStatusPending,
		}},
		FinanceData: []domain.FinanceData{{ID: 1, Municipality: "CAMPINAS", Paid: decimal.NewFromInt(100), Pending: decimal.NewFromInt(20)}},
	}
}

func TestAnalyze_ReturnsTrimmedText(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{text: "\n  **Ana** has 1 pending task.  \n"}}}
	analyzer := NewAnalyzer(gen, Config{}, WithLogger(quietLogger()))

	answer, err := analyzer.Analyze(context.Background(), "Who has pending tasks?", sampleDataset())

	require.NoError(t, err)
	assert.Equal(t, "**Ana** has 1 pending task.", answer)
	assert.Equal(t, 1, gen.calls)
}

func TestAnalyze_BuildsPrompt(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{text: "ok"}}}
	analyzer := NewAnalyzer(gen, Config{}, WithLogger(quietLogger()))

	_, err := analyzer.Analyze(context.Background(), "  Total pending amount?  ", sampleDataset())
	require.NoError(t, err)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, SystemInstruction, req.SystemInstruction)
	require.Len(t, req.Parts, 2)
	assert.Equal(t, "**USER QUESTION:**\nTotal pending amount?", req.Parts[0])

	jsonPart := req.Parts[1][strings.Index(req.Parts[1], "{"):]
	assert.Contains(t, jsonPart, "\n  \"employees\"")
	var decoded map[string]interface{}
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(jsonPart, &decoded))
	assert.Contains(t, decoded, "employees")
	assert.Contains(t, decoded, "tasks")
	assert.Contains(t, decoded, "financeData")
}

func TestAnalyze_NetworkFailure(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{err: stderrors.New("dial tcp: connection refused")}}}
	analyzer := NewAnalyzer(gen, Config{}, WithLogger(quietLogger()))

	_, err := analyzer.Analyze(context.Background(), "Anything?", sampleDataset())

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrCommunication))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeExternalService))
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, ErrCommunication.Message, errors.GetUserMessage(err))
}

func TestAnalyze_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{replies: []fakeReply{{text: tt.text}}}
			analyzer := NewAnalyzer(gen, Config{}, WithLogger(quietLogger()))

			_, err := analyzer.Analyze(context.Background(), "Anything?", sampleDataset())

			assert.True(t, stderrors.Is(err, ErrCommunication))
			assert.Equal(t, 1, gen.calls)
		})
	}
}

func TestAnalyze_EmptyQuestion(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{text: "ok"}}}
	analyzer := NewAnalyzer(gen, Config{}, WithLogger(quietLogger()))

	_, err := analyzer.Analyze(context.Background(), "   ", sampleDataset())

	assert.True(t, validation.IsValidationError(err))
	assert.False(t, stderrors.Is(err, ErrCommunication))
	assert.Equal(t, 0, gen.calls)
}

func TestAnalyze_RetriesWhenConfigured(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{
		{err: stderrors.New("503 unavailable")},
		{text: ""},
		{text: "recovered"},
	}}
	analyzer := NewAnalyzer(gen, Config{MaxAttempts: 3, RetryDelay: time.Millisecond}, WithLogger(quietLogger()))

	answer, err := analyzer.Analyze(context.Background(), "Anything?", sampleDataset())

	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)
	assert.Equal(t, 3, gen.calls)
}

func TestAnalyze_GivesUpAfterMaxAttempts(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{err: stderrors.New("boom")}}}
	analyzer := NewAnalyzer(gen, Config{MaxAttempts: 2}, WithLogger(quietLogger()))

	_, err := analyzer.Analyze(context.Background(), "Anything?", sampleDataset())

	assert.True(t, stderrors.Is(err, ErrCommunication))
	assert.Equal(t, 2, gen.calls)
}

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, req Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestAnalyze_Timeout(t *testing.T) {
	analyzer := NewAnalyzer(blockingGenerator{}, Config{Timeout: 20 * time.Millisecond}, WithLogger(quietLogger()))

	start := time.Now()
	_, err := analyzer.Analyze(context.Background(), "Anything?", sampleDataset())

	assert.True(t, stderrors.Is(err, ErrCommunication))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestAnalyze_CancelledContextStopsRetries(t *testing.T) {
	gen := &fakeGenerator{replies: []fakeReply{{err: stderrors.New("boom")}}}
	analyzer := NewAnalyzer(gen, Config{MaxAttempts: 5, RetryDelay: time.Hour}, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := analyzer.Analyze(ctx, "Anything?", sampleDataset())

	assert.True(t, stderrors.Is(err, ErrCommunication))
	assert.Equal(t, 1, gen.calls)
}
