package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "AutoQ" {
		t.Errorf("T(AppTitle) = %q, want 'AutoQ'", got)
	}

	got = T(ctx, "SessionExpired")
	if got != "Your session has expired. Please sign in again." {
		t.Errorf("T(SessionExpired) = %q", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "Documents")
	if got != "Документы" {
		t.Errorf("T(Documents) = %q, want 'Документы'", got)
	}

	got = T(ctx, "SessionExpired")
	if got != "Сессия истекла. Войдите снова." {
		t.Errorf("T(SessionExpired) = %q", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got1 := Tp(ctx, "QuestionsGenerated", 1)
	if got1 != "1 question generated." {
		t.Errorf("Tp(QuestionsGenerated, 1) = %q, want '1 question generated.'", got1)
	}

	got5 := Tp(ctx, "QuestionsGenerated", 5)
	if got5 != "5 questions generated." {
		t.Errorf("Tp(QuestionsGenerated, 5) = %q, want '5 questions generated.'", got5)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "ExportSaved", map[string]any{"Path": "/tmp/paper.pdf"})
	if got != "Export saved to /tmp/paper.pdf." {
		t.Errorf("Td(ExportSaved) = %q", got)
	}
}

func TestInitRejectsMalformedLanguage(t *testing.T) {
	if err := Init("not a language tag"); err == nil {
		t.Fatal("Init accepted a malformed language tag")
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}
