package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractPairs_AlignsValues(t *testing.T) {
	src := writeTemp(t, "ru.js", `var messages = {
	title: "Привет",
	count: "42",
	farewell: "Пока, %1!"
};`)
	tr := writeTemp(t, "uk.js", `var messages = {
	title: "Привіт",
	count: "42",
	farewell: "Бувай, %1!"
};`)

	entries, err := ExtractPairs(src, tr)
	if err != nil {
		t.Fatalf("ExtractPairs: %v", err)
	}

	// "42" has no Cyrillic and is skipped.
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Source != "Привет" || entries[0].Translated != "Привіт" {
		t.Fatalf("first pair wrong: %+v", entries[0])
	}
	// Placeholders are stored masked, matching what the engines see.
	if entries[1].Source != "Пока, __MASK0__!" || entries[1].Translated != "Бувай, __MASK0__!" {
		t.Fatalf("second pair wrong: %+v", entries[1])
	}
	if entries[0].Hash == "" || entries[0].Hash == entries[1].Hash {
		t.Fatalf("hashes missing or colliding: %+v", entries)
	}
}

func TestExtractPairs_SkipsIdenticalValues(t *testing.T) {
	src := writeTemp(t, "ru.json", `{"brand": "Сервер", "ok": "Да"}`)
	tr := writeTemp(t, "uk.json", `{"brand": "Сервер", "ok": "Так"}`)

	entries, err := ExtractPairs(src, tr)
	if err != nil {
		t.Fatalf("ExtractPairs: %v", err)
	}
	if len(entries) != 1 || entries[0].Source != "Да" {
		t.Fatalf("identical values not skipped: %+v", entries)
	}
}

func TestExtractPairs_CountMismatch(t *testing.T) {
	src := writeTemp(t, "ru.json", `{"a": "Один", "b": "Два"}`)
	tr := writeTemp(t, "uk.json", `{"a": "Один"}`)

	if _, err := ExtractPairs(src, tr); err == nil {
		t.Fatal("expected error on value count mismatch")
	}
}

func TestExtractPairs_MissingFile(t *testing.T) {
	tr := writeTemp(t, "uk.json", `{"a": "Один"}`)
	if _, err := ExtractPairs("/nonexistent/ru.json", tr); err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestDedupe_KeepsLastTranslation(t *testing.T) {
	entries := []Entry{
		{Hash: "h1", Source: "Привет", Translated: "old"},
		{Hash: "h2", Source: "Пока", Translated: "Бувай"},
		{Hash: "h1", Source: "Привет", Translated: "Привіт"},
	}

	out := Dedupe(entries)
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out[0].Translated != "Привіт" {
		t.Fatalf("duplicate not replaced by last entry: %+v", out[0])
	}
	if out[1].Hash != "h2" {
		t.Fatalf("order not preserved: %+v", out)
	}
}
