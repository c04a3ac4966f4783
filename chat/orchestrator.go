// Package chat orchestrates one conversational exchange: resolve the
// session, build the model request, invoke the completion backend, and
// commit the resulting turn.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/completion"
	"github.com/hanjelito/hackatonNasa2025/domain"
	"github.com/hanjelito/hackatonNasa2025/prompt"
	"github.com/hanjelito/hackatonNasa2025/session"
	"github.com/hanjelito/hackatonNasa2025/telemetry"
)

// paperChatPrompt is the system-instruction template name.
const paperChatPrompt = "paper_chat"

// PaperSource provides paper content for building the system instruction.
// The store satisfies it.
type PaperSource interface {
	GetPaper(ctx context.Context, paperID string) (*domain.Paper, error)
}

// Orchestrator performs one turn exchange per call.
type Orchestrator struct {
	sessions  *session.Manager
	completer completion.Completer
	papers    PaperSource
	prompts   *prompt.Loader
	metrics   *telemetry.ChatMetrics
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewOrchestrator wires the turn orchestrator. completer may be nil when no
// model backend is configured; exchanges then fail with ErrCompletionFailed.
func NewOrchestrator(sessions *session.Manager, completer completion.Completer, papers PaperSource, prompts *prompt.Loader, metrics *telemetry.ChatMetrics, tracer trace.Tracer, logger *zap.Logger) *Orchestrator {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("chat")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		sessions:  sessions,
		completer: completer,
		papers:    papers,
		prompts:   prompts,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
}

// GenerateReply performs one exchange: obtain the session, send the full
// ordered history plus newTurns to the model, validate the reply, and
// commit everything through the lifecycle manager. The commit re-checks
// expiry; if the session timed out while the model was generating, the
// reply is discarded and ErrSessionExpired propagates.
func (o *Orchestrator) GenerateReply(ctx context.Context, paperID, token string, newTurns []domain.Turn) (domain.Turn, error) {
	if strings.TrimSpace(paperID) == "" {
		return domain.Turn{}, fmt.Errorf("paper_id is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(token) == "" {
		return domain.Turn{}, domain.ErrSessionRequired
	}
	if err := domain.ValidateTurns(newTurns); err != nil {
		return domain.Turn{}, err
	}
	if o.completer == nil {
		return domain.Turn{}, fmt.Errorf("no model backend configured: %w", domain.ErrCompletionFailed)
	}

	sess, isNew, err := o.sessions.Obtain(ctx, paperID, token)
	if err != nil {
		return domain.Turn{}, err
	}
	if isNew {
		o.logger.Info("exchange continued under replacement session",
			zap.String("paper_id", paperID))
	}

	instruction := o.systemInstruction(ctx, paperID)
	messages := make([]domain.Turn, 0, len(sess.History)+len(newTurns))
	messages = append(messages, sess.History...)
	messages = append(messages, newTurns...)

	genCtx, span := o.tracer.Start(ctx, "completion.generate",
		trace.WithAttributes(
			attribute.String("paper_id", paperID),
			attribute.Int("message_count", len(messages)),
		))
	start := time.Now()
	text, err := o.completer.Generate(genCtx, instruction, messages)
	o.metrics.RecordCompletionLatency(ctx, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.End()
		o.metrics.RecordCompletionFailure(ctx)
		o.logger.Warn("completion call failed", zap.String("paper_id", paperID), zap.Error(err))
		return domain.Turn{}, fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}
	span.End()
	if strings.TrimSpace(text) == "" {
		o.metrics.RecordCompletionFailure(ctx)
		return domain.Turn{}, fmt.Errorf("%w: model returned empty text", domain.ErrCompletionFailed)
	}

	reply := domain.Turn{Role: domain.RoleModel, Content: text}
	committed, err := o.sessions.CommitTurn(ctx, sess.Token, paperID, newTurns, reply)
	if err != nil {
		return domain.Turn{}, err
	}
	o.metrics.RecordTurn(ctx, int64(len(newTurns)+1))

	// The committed reply carries the server-side timestamp.
	return committed.History[len(committed.History)-1], nil
}

// systemInstruction renders the paper-context prompt. When the paper or
// the template is unavailable the exchange still proceeds with a generic
// instruction naming the paper identifier.
func (o *Orchestrator) systemInstruction(ctx context.Context, paperID string) string {
	fallback := fmt.Sprintf(
		"You are a research assistant answering questions about the scientific paper with identifier %s. "+
			"If you lack the paper's content, say so rather than inventing details.", paperID)

	paper, err := o.papers.GetPaper(ctx, paperID)
	if err != nil || paper == nil {
		if err != nil {
			o.logger.Warn("paper lookup failed, using fallback instruction",
				zap.String("paper_id", paperID), zap.Error(err))
		}
		return fallback
	}

	content := paper.FullText
	if content == "" {
		content = paper.Abstract
	}
	if o.prompts == nil {
		return fallback
	}
	rendered, err := o.prompts.Render(paperChatPrompt, map[string]string{
		"paper_id": paper.ID,
		"title":    paper.Title,
		"authors":  strings.Join(paper.Authors, ", "),
		"content":  content,
	})
	if err != nil {
		o.logger.Warn("prompt render failed, using fallback instruction",
			zap.String("paper_id", paperID), zap.Error(err))
		return fallback
	}
	return rendered
}
