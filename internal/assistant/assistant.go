// Package assistant drafts client messages and answers questions about the
// agency's data with a generative model.
package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/andy/agencyflow/internal/domain"
)

// Replies used instead of model output
const (
	DraftFailed = "Error generating message. Please try again."
	DraftEmpty  = "Could not generate message."
	AskFailed   = "Sorry, I'm having trouble accessing the data right now."
	AskEmpty    = "I couldn't process that request."
)

// Assistant never returns errors to callers. Failures are logged and
// replaced with a fixed reply.
type Assistant struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// New creates an assistant. A zero timeout leaves deadlines to ctx.
func New(gen Generator, timeout time.Duration, log zerolog.Logger) *Assistant {
	return &Assistant{gen: gen, timeout: timeout, log: log}
}

// DraftMessage writes a message of kind to client. due is the outstanding
// amount mentioned by reminders and invoice emails.
func (a *Assistant) DraftMessage(ctx context.Context, client *domain.Client, kind MessageKind, due float64) string {
	prompt, err := DraftPrompt(client, kind, due)
	if err != nil {
		a.log.Error().Err(err).Str("kind", string(kind)).Msg("failed to build message prompt")
		return DraftFailed
	}

	text, err := a.generate(ctx, "draft message", prompt)
	switch {
	case err != nil:
		a.log.Error().Err(err).Str("kind", string(kind)).Str("client", client.ID).Msg("error generating AI message")
		return DraftFailed
	case text == "":
		return DraftEmpty
	}
	return text
}

// Ask answers question using the given clients and expenses
func (a *Assistant) Ask(ctx context.Context, question string, clients []*domain.Client, expenses []*domain.Expense) string {
	prompt, err := ChatPrompt(question, clients, expenses)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to build chat prompt")
		return AskFailed
	}

	text, err := a.generate(ctx, "chat with data", prompt)
	switch {
	case err != nil:
		a.log.Error().Err(err).Msg("error in AI chat")
		return AskFailed
	case text == "":
		return AskEmpty
	}
	return text
}

func (a *Assistant) generate(ctx context.Context, op, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Op: op, Err: err}
	}
	a.log.Debug().Str("op", op).Dur("elapsed", time.Since(start)).Int("chars", len(text)).Msg("generated text")
	return text, nil
}
