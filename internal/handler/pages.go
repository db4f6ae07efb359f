package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/model"
	"github.com/rushikeshburle/autoq/internal/screen"
)

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Refresh(r.Context()); err != nil {
		// Stale counters are acceptable; the page still renders.
		slog.Warn("dashboard refresh", "error", err)
	}
	h.render(w, r, "dashboard.html", pageData{
		Title: appI18n.T(r.Context(), "Dashboard"),
		Data:  h.dashboard.Stats(),
	})
}

type documentsPage struct {
	Documents []model.Document
}

func (h *Handler) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, "documents.html", pageData{
		Title: appI18n.T(r.Context(), "Documents"),
		Data:  documentsPage{Documents: h.documents.List()},
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if _, err := h.documents.Upload(r.Context(), header.Filename, file); err != nil {
		h.fail(w, r, err, "/documents")
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "DocumentUploaded"))
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid document ID", http.StatusBadRequest)
		return
	}
	if err := h.documents.Process(r.Context(), id); err != nil {
		switch err {
		case screen.ErrAlreadyProcessing:
			h.setFlash(w, appI18n.T(r.Context(), "AlreadyProcessing"))
			http.Redirect(w, r, "/documents", http.StatusSeeOther)
		default:
			h.fail(w, r, err, "/documents")
		}
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "ProcessingStarted"))
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid document ID", http.StatusBadRequest)
		return
	}
	if err := h.documents.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "/documents")
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "DocumentDeleted"))
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

type questionsPage struct {
	Questions []model.Question
	Sources   []model.Document
	Types     []model.QuestionType
	Defaults  model.GenerateConfig
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.questions.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}
	if err := h.questions.RefreshSources(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, "questions.html", pageData{
		Title: appI18n.T(r.Context(), "Questions"),
		Data: questionsPage{
			Questions: h.questions.List(),
			Sources:   h.questions.Sources(),
			Types:     model.QuestionTypes,
			Defaults:  model.DefaultGenerateConfig(),
		},
	})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	cfg, err := generateConfigFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	generated, err := h.questions.Generate(r.Context(), cfg)
	if err != nil {
		switch err {
		case model.ErrNoDocumentSelected:
			h.setFlash(w, appI18n.T(r.Context(), "SelectDocument"))
			http.Redirect(w, r, "/questions", http.StatusSeeOther)
		case model.ErrNoTypeSelected:
			h.setFlash(w, appI18n.T(r.Context(), "SelectQuestionType"))
			http.Redirect(w, r, "/questions", http.StatusSeeOther)
		default:
			h.fail(w, r, err, "/questions")
		}
		return
	}
	h.setFlash(w, appI18n.Tp(r.Context(), "QuestionsGenerated", len(generated)))
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

// generateConfigFromForm reads the generation dialog fields. Unset numeric
// fields keep the dialog defaults.
func generateConfigFromForm(r *http.Request) (model.GenerateConfig, error) {
	cfg := model.DefaultGenerateConfig()
	cfg.QuestionTypes = nil

	if v := r.FormValue("document_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid document_id")
		}
		cfg.DocumentID = id
	}
	if v := r.FormValue("num_questions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid num_questions")
		}
		cfg.NumQuestions = n
	}
	for _, t := range r.Form["question_types"] {
		cfg.QuestionTypes = append(cfg.QuestionTypes, model.QuestionType(t))
	}
	for field, dst := range map[string]*float64{
		"difficulty_easy":   &cfg.DifficultyEasy,
		"difficulty_medium": &cfg.DifficultyMedium,
		"difficulty_hard":   &cfg.DifficultyHard,
	} {
		if v := r.FormValue(field); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, fmt.Errorf("invalid %s", field)
			}
			*dst = f
		}
	}
	return cfg, nil
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid question ID", http.StatusBadRequest)
		return
	}
	if err := h.questions.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "/questions")
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "QuestionDeleted"))
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

type builderPage struct {
	Questions []model.Question
	Selected  map[int64]bool
	Order     []int64
	Draft     model.PaperDraft
}

func (h *Handler) handleBuilder(w http.ResponseWriter, r *http.Request) {
	if err := h.builder.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}
	selected := make(map[int64]bool)
	for _, id := range h.builder.Selected() {
		selected[id] = true
	}
	h.render(w, r, "builder.html", pageData{
		Title: appI18n.T(r.Context(), "PaperBuilder"),
		Data: builderPage{
			Questions: h.builder.Questions(),
			Selected:  selected,
			Order:     h.builder.Selected(),
			Draft:     h.builder.Draft(),
		},
	})
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid question ID", http.StatusBadRequest)
		return
	}
	h.builder.Toggle(id)
	http.Redirect(w, r, "/builder", http.StatusSeeOther)
}

func (h *Handler) handleCreatePaper(w http.ResponseWriter, r *http.Request) {
	draft := h.builder.Draft()
	draft.Title = r.FormValue("title")
	draft.Description = r.FormValue("description")
	draft.Instructions = r.FormValue("instructions")
	draft.InstitutionName = r.FormValue("institution_name")
	if v := r.FormValue("total_marks"); v != "" {
		marks, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid total_marks", http.StatusBadRequest)
			return
		}
		draft.TotalMarks = marks
	}
	if v := r.FormValue("duration_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
			return
		}
		draft.DurationMinutes = minutes
	}
	h.builder.SetDraft(draft)

	paper, err := h.builder.Create(r.Context())
	if err != nil {
		switch err {
		case model.ErrNoTitle:
			h.setFlash(w, appI18n.T(r.Context(), "EnterPaperTitle"))
			http.Redirect(w, r, "/builder", http.StatusSeeOther)
		case model.ErrNoQuestionsSelected:
			h.setFlash(w, appI18n.T(r.Context(), "SelectQuestions"))
			http.Redirect(w, r, "/builder", http.StatusSeeOther)
		default:
			h.fail(w, r, err, "/builder")
		}
		return
	}
	h.setFlash(w, appI18n.Td(r.Context(), "PaperCreated", map[string]any{"Title": paper.Title}))
	http.Redirect(w, r, "/papers", http.StatusSeeOther)
}

type papersPage struct {
	Papers []model.Paper
}

func (h *Handler) handlePapers(w http.ResponseWriter, r *http.Request) {
	if err := h.papers.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, "papers.html", pageData{
		Title: appI18n.T(r.Context(), "Papers"),
		Data:  papersPage{Papers: h.papers.List()},
	})
}

func (h *Handler) handleDeletePaper(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid paper ID", http.StatusBadRequest)
		return
	}
	if err := h.papers.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "/papers")
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "PaperDeleted"))
	http.Redirect(w, r, "/papers", http.StatusSeeOther)
}

func (h *Handler) handlePublishPaper(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid paper ID", http.StatusBadRequest)
		return
	}
	if err := h.papers.Publish(r.Context(), id); err != nil {
		h.fail(w, r, err, "/papers")
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "PaperPublished"))
	http.Redirect(w, r, "/papers", http.StatusSeeOther)
}

// handleExportPaper streams the rendered paper as a download.
func (h *Handler) handleExportPaper(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid paper ID", http.StatusBadRequest)
		return
	}
	format := model.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = model.ExportPDF
	}
	if !model.ValidExportFormat(format) {
		http.Error(w, "invalid export format", http.StatusBadRequest)
		return
	}
	includeAnswers := r.URL.Query().Get("answers") == "true"

	name, data, err := h.papers.Export(r.Context(), id, format, includeAnswers)
	if err != nil {
		h.fail(w, r, err, "/papers")
		return
	}

	contentType := "application/pdf"
	if format == model.ExportDocx {
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(data); err != nil {
		slog.Error("stream export", "error", err)
	}
}
