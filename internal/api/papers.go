package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rushikeshburle/autoq/internal/model"
)

// CreatePaper submits a paper draft and returns the created record.
func (c *Client) CreatePaper(ctx context.Context, draft model.PaperDraft) (model.Paper, error) {
	var paper model.Paper
	err := c.doJSON(ctx, http.MethodPost, "/papers/", draft, &paper)
	return paper, err
}

// ListPapers returns all papers in server order.
func (c *Client) ListPapers(ctx context.Context) ([]model.Paper, error) {
	var papers []model.Paper
	err := c.getJSON(ctx, "/papers/", &papers)
	return papers, err
}

// GetPaper returns one paper with its questions.
func (c *Client) GetPaper(ctx context.Context, id int64) (model.PaperDetail, error) {
	var paper model.PaperDetail
	err := c.getJSON(ctx, fmt.Sprintf("/papers/%d", id), &paper)
	return paper, err
}

// UpdatePaper replaces the editable fields of a paper.
func (c *Client) UpdatePaper(ctx context.Context, id int64, draft model.PaperDraft) (model.Paper, error) {
	var paper model.Paper
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/papers/%d", id), draft, &paper)
	return paper, err
}

// DeletePaper removes a paper.
func (c *Client) DeletePaper(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/papers/%d", id))
}

type exportRequest struct {
	Format         model.ExportFormat `json:"format"`
	IncludeAnswers bool               `json:"include_answers"`
}

// ExportPaper renders a paper and returns the file bytes untouched. The
// response is a binary document, never JSON, so it is not decoded.
func (c *Client) ExportPaper(ctx context.Context, id int64, format model.ExportFormat, includeAnswers bool) ([]byte, error) {
	raw, err := encodeBody(exportRequest{Format: format, IncludeAnswers: includeAnswers})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/papers/%d/export", id), raw, "application/json")
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// PublishPaper marks a paper published and returns the updated record.
func (c *Client) PublishPaper(ctx context.Context, id int64) (model.Paper, error) {
	var paper model.Paper
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/papers/%d/publish", id), nil, &paper)
	return paper, err
}
