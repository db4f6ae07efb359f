package model

import (
	"errors"
	"time"
)

// Validation errors raised before any network call is made.
var (
	ErrNoDocumentSelected  = errors.New("no document selected")
	ErrNoTypeSelected      = errors.New("no question type selected")
	ErrNoTitle             = errors.New("title is required")
	ErrNoQuestionsSelected = errors.New("no questions selected")
)

// UserRole represents a user's access level on the remote service.
type UserRole string

const (
	// UserRoleAdmin is an administrator role.
	UserRoleAdmin UserRole = "admin"
	// UserRoleInstructor is an instructor role (the server-side default).
	UserRoleInstructor UserRole = "instructor"
	// UserRoleStudent is a student role.
	UserRoleStudent UserRole = "student"
)

// User is the profile of the authenticated user as the server reports it.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	Active   bool     `json:"is_active"`
}

// Token is the credential payload returned by a successful login.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ProcessingStatus tracks server-side extraction of an uploaded document.
// Transitions are server-driven; the client only reads them back.
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingRunning   ProcessingStatus = "processing"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// Document is the client view of an uploaded document.
type Document struct {
	ID               int64            `json:"id"`
	Filename         string           `json:"filename"`
	OriginalFilename string           `json:"original_filename"`
	FileSize         int64            `json:"file_size"`
	Processed        bool             `json:"is_processed"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	CreatedAt        time.Time        `json:"created_at"`
}

// DocumentDetail adds the extracted text and topics to a document.
type DocumentDetail struct {
	Document
	ExtractedText string  `json:"extracted_text"`
	Topics        []Topic `json:"topics"`
}

// Topic is a section of a processed document identified by the server.
type Topic struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuestionType enumerates the kinds of questions the service generates.
type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "true_false"
	TypeShortAnswer QuestionType = "short_answer"
	TypeLongAnswer  QuestionType = "long_answer"
	TypeFillBlank   QuestionType = "fill_blank"
	TypeProgramming QuestionType = "programming"
)

// QuestionTypes lists every type the generation dialog offers.
var QuestionTypes = []QuestionType{
	TypeMCQ, TypeTrueFalse, TypeShortAnswer, TypeLongAnswer, TypeFillBlank, TypeProgramming,
}

// Difficulty represents question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is the client view of a generated or hand-written question.
type Question struct {
	ID             int64        `json:"id"`
	Text           string       `json:"question_text"`
	Type           QuestionType `json:"question_type"`
	Difficulty     Difficulty   `json:"difficulty"`
	OptionA        string       `json:"option_a,omitempty"`
	OptionB        string       `json:"option_b,omitempty"`
	OptionC        string       `json:"option_c,omitempty"`
	OptionD        string       `json:"option_d,omitempty"`
	CorrectAnswer  string       `json:"correct_answer"`
	Explanation    string       `json:"explanation,omitempty"`
	SuggestedMarks float64      `json:"suggested_marks"`
	Tags           string       `json:"tags,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// QuestionDraft is the payload for creating or updating a question by hand.
type QuestionDraft struct {
	Text             string       `json:"question_text"`
	Type             QuestionType `json:"question_type"`
	Difficulty       Difficulty   `json:"difficulty"`
	OptionA          string       `json:"option_a,omitempty"`
	OptionB          string       `json:"option_b,omitempty"`
	OptionC          string       `json:"option_c,omitempty"`
	OptionD          string       `json:"option_d,omitempty"`
	CorrectAnswer    string       `json:"correct_answer"`
	Explanation      string       `json:"explanation,omitempty"`
	SuggestedMarks   float64      `json:"suggested_marks"`
	Tags             string       `json:"tags,omitempty"`
	SourceDocumentID int64        `json:"source_document_id,omitempty"`
}

// QuestionFilter holds optional query parameters for listing questions.
type QuestionFilter struct {
	Type       QuestionType
	Difficulty Difficulty
	DocumentID int64
}

// GenerateConfig parameterizes one question-generation call. The three
// difficulty weights are independent sliders; they are sent verbatim and
// nothing enforces that they sum to one.
type GenerateConfig struct {
	DocumentID       int64          `json:"document_id"`
	NumQuestions     int            `json:"num_questions"`
	QuestionTypes    []QuestionType `json:"question_types"`
	DifficultyEasy   float64        `json:"difficulty_easy"`
	DifficultyMedium float64        `json:"difficulty_medium"`
	DifficultyHard   float64        `json:"difficulty_hard"`
}

// DefaultGenerateConfig mirrors the defaults of the generation dialog.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		NumQuestions:     10,
		QuestionTypes:    []QuestionType{TypeMCQ, TypeShortAnswer},
		DifficultyEasy:   0.4,
		DifficultyMedium: 0.4,
		DifficultyHard:   0.2,
	}
}

// Validate checks the config before any network call is made.
func (c GenerateConfig) Validate() error {
	if c.DocumentID == 0 {
		return ErrNoDocumentSelected
	}
	if len(c.QuestionTypes) == 0 {
		return ErrNoTypeSelected
	}
	return nil
}

// Paper is the client view of a question paper.
type Paper struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	TotalMarks      float64   `json:"total_marks"`
	DurationMinutes int       `json:"duration_minutes"`
	Published       bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaperDetail adds presentation metadata and the constituent questions.
type PaperDetail struct {
	Paper
	Instructions    string     `json:"instructions"`
	InstitutionName string     `json:"institution_name"`
	Questions       []Question `json:"questions"`
}

// PaperDraft is the payload for creating a paper. Total marks is
// user-declared, not recomputed from the selected questions.
type PaperDraft struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	TotalMarks      float64 `json:"total_marks"`
	DurationMinutes int     `json:"duration_minutes"`
	Instructions    string  `json:"instructions,omitempty"`
	InstitutionName string  `json:"institution_name,omitempty"`
	QuestionIDs     []int64 `json:"question_ids"`
}

// DefaultPaperDraft mirrors the paper builder's form defaults.
func DefaultPaperDraft() PaperDraft {
	return PaperDraft{
		TotalMarks:      100,
		DurationMinutes: 60,
		Instructions:    "Read all questions carefully before answering.",
		InstitutionName: "Your Institution",
	}
}

// Validate checks the draft before any network call is made.
func (d PaperDraft) Validate() error {
	if d.Title == "" {
		return ErrNoTitle
	}
	if len(d.QuestionIDs) == 0 {
		return ErrNoQuestionsSelected
	}
	return nil
}

// ExportFormat selects the rendered output format of a paper export.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportDocx ExportFormat = "docx"
)

// ValidExportFormat reports whether the format is one the server renders.
func ValidExportFormat(f ExportFormat) bool {
	return f == ExportPDF || f == ExportDocx
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role,omitempty"`
}
