// Package ai answers free-form questions about the dashboard records with a generative model.
package ai

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/validation"
)

const (
	// DefaultModel is the model used when none is configured
	DefaultModel = "gemini-2.5-flash"

	// CodeUnavailable is the error code of every failed analysis
	CodeUnavailable = "AI_UNAVAILABLE"

	communicationMessage = "Failed to communicate with the AI service. Check the logs for details."
)

// ErrCommunication matches, via errors.Is, every failure returned by Analyze
// other than an invalid question.
var ErrCommunication = errors.NewExternalServiceError("ai", CodeUnavailable, communicationMessage, nil)

var errEmptyResponse = stderrors.New("AI service returned an empty response")

// SystemInstruction fixes the assistant's persona and answering rules
const SystemInstruction = `You are a data analysis assistant for a management system called Infoco.
Your job is to analyse the JSON data supplied in the prompt and answer the user's question clearly, concisely and usefully.
Stick strictly to the supplied data. It holds three arrays: 'employees', 'tasks' and 'financeData'.
- 'employees': the company's employees.
- 'tasks': tasks assigned to employees, including status and hours.
- 'financeData': financial figures per municipality.
Always format the answer in markdown (use **bold** for key terms, *italics*, and bulleted lists).
If the question cannot be answered from the data, say politely that the information is not available. Never invent information.
Be direct and objective.`

// Request is one generation call: a system instruction and ordered text parts
type Request struct {
	Model             string
	SystemInstruction string
	Parts             []string
}

// Generator sends a Request to a model and returns its text answer
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config bounds the calls made for a single analysis
type Config struct {
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// Analyzer builds the analysis prompt and calls the Generator
type Analyzer struct {
	generator Generator
	cfg       Config
	validator *validation.Validator
	logger    *log.Logger
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used to report failed calls
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithValidator sets the validator used for questions
func WithValidator(v *validation.Validator) Option {
	return func(a *Analyzer) {
		a.validator = v
	}
}

// NewAnalyzer creates an Analyzer. Zero config fields fall back to one attempt on DefaultModel.
func NewAnalyzer(generator Generator, cfg Config, opts ...Option) *Analyzer {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	a := &Analyzer{
		generator: generator,
		cfg:       cfg,
		validator: validation.NewValidator(),
		logger:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildRequest assembles the generation request for question over ds
func (a *Analyzer) BuildRequest(question string, ds domain.Dataset) (Request, error) {
	payload, err := sonic.ConfigStd.MarshalIndent(ds.Clone(), "", "  ")
	if err != nil {
		return Request{}, err
	}

	return Request{
		Model:             a.cfg.Model,
		SystemInstruction: SystemInstruction,
		Parts: []string{
			"**USER QUESTION:**\n" + question,
			"\n\n---\n\n**DATA FOR ANALYSIS (JSON):**\n" + string(payload),
		},
	}, nil
}

// Analyze asks the model question about ds and returns the trimmed markdown answer.
// An empty question fails validation without calling the model. Any other failure,
// including an empty answer, is reported as ErrCommunication.
func (a *Analyzer) Analyze(ctx context.Context, question string, ds domain.Dataset) (string, error) {
	question, err := a.validator.ValidateQuestion(question)
	if err != nil {
		return "", err
	}

	req, err := a.BuildRequest(question, ds)
	if err != nil {
		return "", a.communicationError(err)
	}

	var lastErr error
	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		if attempt > 1 && !sleep(ctx, a.cfg.RetryDelay) {
			lastErr = ctx.Err()
			break
		}

		text, err := a.generate(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		a.logger.WithFields(log.Fields{
			"attempt":      attempt,
			"max_attempts": a.cfg.MaxAttempts,
			"model":        req.Model,
		}).WithError(err).Warn("AI analysis call failed")

		if ctx.Err() != nil {
			break
		}
	}

	return "", a.communicationError(lastErr)
}

func (a *Analyzer) generate(ctx context.Context, req Request) (string, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	text, err := a.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func (a *Analyzer) communicationError(cause error) error {
	return errors.NewExternalServiceError("ai", CodeUnavailable, communicationMessage, cause)
}

// sleep waits for d or until ctx is done, reporting whether the full delay elapsed
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
