package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rushikeshburle/autoq/internal/model"
)

// UploadDocument sends a PDF as the multipart field "file" and returns the
// created document record.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (model.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return model.Document{}, fmt.Errorf("encode upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.Document{}, fmt.Errorf("read upload payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return model.Document{}, fmt.Errorf("encode upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/documents/upload", &buf, w.FormDataContentType())
	if err != nil {
		return model.Document{}, err
	}
	raw, err := c.send(req)
	if err != nil {
		return model.Document{}, err
	}
	var doc model.Document
	if err := decodeJSON(raw, &doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// ProcessDocument asks the server to start extraction for a document. The
// response is a status acknowledgement the client does not need.
func (c *Client) ProcessDocument(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/documents/%d/process", id), nil, nil)
}

// ListDocuments returns all documents in server order.
func (c *Client) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	err := c.getJSON(ctx, "/documents/", &docs)
	return docs, err
}

// GetDocument returns one document with its extracted text and topics.
func (c *Client) GetDocument(ctx context.Context, id int64) (model.DocumentDetail, error) {
	var doc model.DocumentDetail
	err := c.getJSON(ctx, fmt.Sprintf("/documents/%d", id), &doc)
	return doc, err
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/documents/%d", id))
}

// DocumentTopics returns the topics the server extracted from a document.
func (c *Client) DocumentTopics(ctx context.Context, id int64) ([]model.Topic, error) {
	var topics []model.Topic
	err := c.getJSON(ctx, fmt.Sprintf("/documents/%d/topics", id), &topics)
	return topics, err
}
