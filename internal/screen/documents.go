package screen

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/model"
)

// Documents drives the document upload/process/delete page.
type Documents struct {
	client *api.Client

	mu        sync.RWMutex
	docs      []model.Document
	uploading bool
}

// NewDocuments creates the documents controller.
func NewDocuments(client *api.Client) *Documents {
	return &Documents{client: client}
}

// Refresh replaces the local list with the server's, wholesale. The lock
// is not held across the network call; the last response to land wins.
func (d *Documents) Refresh(ctx context.Context) error {
	docs, err := d.client.ListDocuments(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.docs = docs
	d.mu.Unlock()
	return nil
}

// List returns the current document list.
func (d *Documents) List() []model.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.docs
}

// Processed returns only documents eligible as generation sources.
func (d *Documents) Processed() []model.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []model.Document
	for _, doc := range d.docs {
		if doc.Processed {
			out = append(out, doc)
		}
	}
	return out
}

// Find returns the document with the given id from the current list.
func (d *Documents) Find(id int64) (model.Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, doc := range d.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return model.Document{}, false
}

// Upload sends a file and reloads the list. Guarded against re-entrant
// submission while an upload is in flight.
func (d *Documents) Upload(ctx context.Context, filename string, r io.Reader) (model.Document, error) {
	d.mu.Lock()
	if d.uploading {
		d.mu.Unlock()
		return model.Document{}, ErrBusy
	}
	d.uploading = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.uploading = false
		d.mu.Unlock()
	}()

	doc, err := d.client.UploadDocument(ctx, filename, r)
	if err != nil {
		return model.Document{}, err
	}
	if err := d.Refresh(ctx); err != nil {
		slog.Error("reload documents after upload", "error", err)
	}
	return doc, nil
}

// Uploading reports whether an upload is in flight.
func (d *Documents) Uploading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.uploading
}

// Process asks the server to start extraction. A document already in the
// processing state is refused before any call goes out.
func (d *Documents) Process(ctx context.Context, id int64) error {
	doc, ok := d.Find(id)
	if !ok {
		return ErrUnknownDocument
	}
	if doc.ProcessingStatus == model.ProcessingRunning {
		return ErrAlreadyProcessing
	}

	if err := d.client.ProcessDocument(ctx, id); err != nil {
		return err
	}
	if err := d.Refresh(ctx); err != nil {
		slog.Error("reload documents after process", "error", err)
	}
	return nil
}

// Delete removes a document and reloads the list.
func (d *Documents) Delete(ctx context.Context, id int64) error {
	if err := d.client.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if err := d.Refresh(ctx); err != nil {
		slog.Error("reload documents after delete", "error", err)
	}
	return nil
}
