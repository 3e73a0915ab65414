package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestTransformLiteral_SkipsNonCyrillic(t *testing.T) {
	called := false
	translate := func(s string) (string, error) {
		called = true
		return "SHOULD NOT HAPPEN", nil
	}

	in := `"Hello %1, you have {count} items"`
	got, err := TransformLiteral(in, translate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Fatalf("already-translated literal changed: %q", got)
	}
	if called {
		t.Fatal("translate invoked for non-Cyrillic literal")
	}
}

func TestTransformLiteral_MasksPlaceholders(t *testing.T) {
	var seen string
	translate := func(s string) (string, error) {
		seen = s
		return strings.ReplaceAll(s, "Добрий день", "Good day"), nil
	}

	got, err := TransformLiteral(`"Добрий день, %1!"`, translate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "Добрий день, __MASK0__!" {
		t.Fatalf("backend saw unmasked text: %q", seen)
	}
	if got != `"Good day, %1!"` {
		t.Fatalf("got %q", got)
	}
}

func TestTransformLiteral_PlaceholderOrderPreserved(t *testing.T) {
	translate := func(s string) (string, error) {
		// Pretend translation that keeps tokens but changes words.
		return strings.ReplaceAll(s, "Привет", "Hello"), nil
	}

	got, err := TransformLiteral(`"Привет %1, у вас {count} писем"`, translate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i1 := strings.Index(got, "%1")
	i2 := strings.Index(got, "{count}")
	if i1 < 0 || i2 < 0 || i1 > i2 {
		t.Fatalf("placeholders missing or reordered: %q", got)
	}
}

func TestTransformLiteral_QuoteReescaping(t *testing.T) {
	translate := func(s string) (string, error) {
		return strings.ReplaceAll(s, "скажи", "say"), nil
	}

	got, err := TransformLiteral(`"скажи \"да\""`, translate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `"say \"да\""` {
		t.Fatalf("quotes not re-escaped: %q", got)
	}
}

func TestTransformLiteral_BackendError(t *testing.T) {
	translate := func(s string) (string, error) {
		return "", errors.New("backend down")
	}

	if _, err := TransformLiteral(`"Привет"`, translate); err == nil {
		t.Fatal("expected error from failing backend")
	}
}

func TestTransformLiteral_RejectsUnquotedInput(t *testing.T) {
	translate := func(s string) (string, error) { return s, nil }
	if _, err := TransformLiteral(`Привет`, translate); err == nil {
		t.Fatal("expected error for unquoted literal")
	}
}
