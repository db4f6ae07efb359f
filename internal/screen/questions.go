package screen

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/model"
)

// Questions drives the question bank page and the generation dialog.
type Questions struct {
	client *api.Client

	mu         sync.RWMutex
	questions  []model.Question
	sources    []model.Document
	generating bool
}

// NewQuestions creates the questions controller.
func NewQuestions(client *api.Client) *Questions {
	return &Questions{client: client}
}

// Refresh replaces the question list with the server's, wholesale.
func (q *Questions) Refresh(ctx context.Context) error {
	questions, err := q.client.ListQuestions(ctx, model.QuestionFilter{})
	if err != nil {
		return err
	}
	q.mu.Lock()
	q.questions = questions
	q.mu.Unlock()
	return nil
}

// RefreshSources reloads the documents offered as generation sources.
// Only processed documents ever appear in the selection list.
func (q *Questions) RefreshSources(ctx context.Context) error {
	docs, err := q.client.ListDocuments(ctx)
	if err != nil {
		return err
	}
	var processed []model.Document
	for _, doc := range docs {
		if doc.Processed {
			processed = append(processed, doc)
		}
	}
	q.mu.Lock()
	q.sources = processed
	q.mu.Unlock()
	return nil
}

// List returns the current question list.
func (q *Questions) List() []model.Question {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.questions
}

// Sources returns the processed documents available for generation.
func (q *Questions) Sources() []model.Document {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.sources
}

// Generate validates the config, runs one generation call, and reloads the
// question list. Validation failures never reach the network.
func (q *Questions) Generate(ctx context.Context, cfg model.GenerateConfig) ([]model.Question, error) {
	q.mu.Lock()
	if q.generating {
		q.mu.Unlock()
		return nil, ErrBusy
	}
	q.generating = true
	q.mu.Unlock()
	defer func() {
		q.mu.Lock()
		q.generating = false
		q.mu.Unlock()
	}()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	generated, err := q.client.GenerateQuestions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := q.Refresh(ctx); err != nil {
		slog.Error("reload questions after generate", "error", err)
	}
	return generated, nil
}

// Generating reports whether a generation call is in flight.
func (q *Questions) Generating() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.generating
}

// Delete removes a question and reloads the list.
func (q *Questions) Delete(ctx context.Context, id int64) error {
	if err := q.client.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	if err := q.Refresh(ctx); err != nil {
		slog.Error("reload questions after delete", "error", err)
	}
	return nil
}
