package screen

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/model"
)

// Stats are the dashboard counters.
type Stats struct {
	Documents int
	Questions int
	Papers    int
}

// Dashboard gathers entity counts via concurrent independent list calls.
type Dashboard struct {
	client *api.Client

	mu    sync.RWMutex
	stats Stats
}

// NewDashboard creates the dashboard controller.
func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{client: client}
}

// Stats returns the last successfully loaded counters.
func (d *Dashboard) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Refresh runs the three list calls concurrently and combines the results
// only after all have settled. Any failure leaves the previous stats in
// place and is logged once; individual calls are not surfaced separately.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var (
		wg                             sync.WaitGroup
		docs                           []model.Document
		questions                      []model.Question
		papers                         []model.Paper
		docsErr, questionsErr, papsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		docs, docsErr = d.client.ListDocuments(ctx)
	}()
	go func() {
		defer wg.Done()
		questions, questionsErr = d.client.ListQuestions(ctx, model.QuestionFilter{})
	}()
	go func() {
		defer wg.Done()
		papers, papsErr = d.client.ListPapers(ctx)
	}()
	wg.Wait()

	for _, err := range []error{docsErr, questionsErr, papsErr} {
		if err != nil {
			slog.Error("failed to load dashboard stats", "error", err)
			return err
		}
	}

	d.mu.Lock()
	d.stats = Stats{
		Documents: len(docs),
		Questions: len(questions),
		Papers:    len(papers),
	}
	d.mu.Unlock()
	return nil
}
