package screen

import (
	"context"
	"slices"
	"sync"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/model"
)

// PaperBuilder drives the create-paper page: a question list, an ordered
// selection, and the paper configuration form.
type PaperBuilder struct {
	client *api.Client

	mu        sync.RWMutex
	questions []model.Question
	selected  []int64
	draft     model.PaperDraft
	creating  bool
}

// NewPaperBuilder creates the builder with the form defaults filled in.
func NewPaperBuilder(client *api.Client) *PaperBuilder {
	return &PaperBuilder{client: client, draft: model.DefaultPaperDraft()}
}

// Refresh replaces the selectable question list with the server's.
func (b *PaperBuilder) Refresh(ctx context.Context) error {
	questions, err := b.client.ListQuestions(ctx, model.QuestionFilter{})
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.questions = questions
	b.mu.Unlock()
	return nil
}

// Questions returns the selectable question list.
func (b *PaperBuilder) Questions() []model.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.questions
}

// Toggle adds the question to the selection, or removes it if present.
// Selection order is preserved and becomes the paper's question order.
func (b *PaperBuilder) Toggle(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.Index(b.selected, id); i >= 0 {
		b.selected = slices.Delete(b.selected, i, i+1)
		return
	}
	b.selected = append(b.selected, id)
}

// IsSelected reports whether a question is in the current selection.
func (b *PaperBuilder) IsSelected(id int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Contains(b.selected, id)
}

// Selected returns the selection in order.
func (b *PaperBuilder) Selected() []int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.selected)
}

// ClearSelection empties the selection.
func (b *PaperBuilder) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
}

// Draft returns the current paper configuration.
func (b *PaperBuilder) Draft() model.PaperDraft {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.draft
}

// SetDraft replaces the configuration fields. The question ids are owned
// by the selection and filled in at create time.
func (b *PaperBuilder) SetDraft(draft model.PaperDraft) {
	draft.QuestionIDs = nil
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = draft
}

// Creating reports whether a create call is in flight.
func (b *PaperBuilder) Creating() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.creating
}

// Create submits the draft with the selected question ids in selection
// order. Validation failures never reach the network; on success the
// selection is cleared for the next paper.
func (b *PaperBuilder) Create(ctx context.Context) (model.Paper, error) {
	b.mu.Lock()
	if b.creating {
		b.mu.Unlock()
		return model.Paper{}, ErrBusy
	}
	b.creating = true
	draft := b.draft
	draft.QuestionIDs = slices.Clone(b.selected)
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.creating = false
		b.mu.Unlock()
	}()

	if err := draft.Validate(); err != nil {
		return model.Paper{}, err
	}

	paper, err := b.client.CreatePaper(ctx, draft)
	if err != nil {
		return model.Paper{}, err
	}
	b.mu.Lock()
	b.selected = nil
	b.mu.Unlock()
	return paper, nil
}
