package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rushikeshburle/autoq/internal/model"
)

// GenerateQuestions runs one atomic generation call and returns the batch
// in server order. The config is sent verbatim; validation belongs to the
// caller, and the difficulty weights are never normalized here.
func (c *Client) GenerateQuestions(ctx context.Context, cfg model.GenerateConfig) ([]model.Question, error) {
	var questions []model.Question
	err := c.doJSON(ctx, http.MethodPost, "/questions/generate", cfg, &questions)
	return questions, err
}

// ListQuestions returns questions matching the optional filter.
func (c *Client) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	params := url.Values{}
	if filter.Type != "" {
		params.Set("question_type", string(filter.Type))
	}
	if filter.Difficulty != "" {
		params.Set("difficulty", string(filter.Difficulty))
	}
	if filter.DocumentID != 0 {
		params.Set("document_id", strconv.FormatInt(filter.DocumentID, 10))
	}
	var questions []model.Question
	err := c.getJSON(ctx, query("/questions/", params), &questions)
	return questions, err
}

// GetQuestion returns one question.
func (c *Client) GetQuestion(ctx context.Context, id int64) (model.Question, error) {
	var q model.Question
	err := c.getJSON(ctx, fmt.Sprintf("/questions/%d", id), &q)
	return q, err
}

// CreateQuestion adds a hand-written question to the bank.
func (c *Client) CreateQuestion(ctx context.Context, draft model.QuestionDraft) (model.Question, error) {
	var q model.Question
	err := c.doJSON(ctx, http.MethodPost, "/questions/", draft, &q)
	return q, err
}

// UpdateQuestion replaces the editable fields of a question.
func (c *Client) UpdateQuestion(ctx context.Context, id int64, draft model.QuestionDraft) (model.Question, error) {
	var q model.Question
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", id), draft, &q)
	return q, err
}

// DeleteQuestion removes a question.
func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/questions/%d", id))
}
