package screen

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/model"
)

// Papers drives the paper list page.
type Papers struct {
	client *api.Client

	mu     sync.RWMutex
	papers []model.Paper
}

// NewPapers creates the papers controller.
func NewPapers(client *api.Client) *Papers {
	return &Papers{client: client}
}

// Refresh replaces the local list with the server's, wholesale.
func (p *Papers) Refresh(ctx context.Context) error {
	papers, err := p.client.ListPapers(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.papers = papers
	p.mu.Unlock()
	return nil
}

// List returns the current paper list.
func (p *Papers) List() []model.Paper {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.papers
}

// Delete removes a paper and reloads the list.
func (p *Papers) Delete(ctx context.Context, id int64) error {
	if err := p.client.DeletePaper(ctx, id); err != nil {
		return err
	}
	if err := p.Refresh(ctx); err != nil {
		slog.Error("reload papers after delete", "error", err)
	}
	return nil
}

// Publish marks a paper published and reloads the list.
func (p *Papers) Publish(ctx context.Context, id int64) error {
	if _, err := p.client.PublishPaper(ctx, id); err != nil {
		return err
	}
	if err := p.Refresh(ctx); err != nil {
		slog.Error("reload papers after publish", "error", err)
	}
	return nil
}

// Export renders a paper and returns the file bytes with a download
// filename. Export is read-only: it may be repeated freely and never
// touches the paper list.
func (p *Papers) Export(ctx context.Context, id int64, format model.ExportFormat, includeAnswers bool) (string, []byte, error) {
	data, err := p.client.ExportPaper(ctx, id, format, includeAnswers)
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(format, includeAnswers), data, nil
}

// ExportFilename names the download; with-answers exports get a distinct
// name so repeated exports of the same paper stay apart on disk.
func ExportFilename(format model.ExportFormat, includeAnswers bool) string {
	if includeAnswers {
		return fmt.Sprintf("question_paper_with_answers.%s", format)
	}
	return fmt.Sprintf("question_paper.%s", format)
}
