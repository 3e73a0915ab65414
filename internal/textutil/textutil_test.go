package textutil

import "testing"

func TestContainsCyrillic(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"Save changes", false},
		{"Hello %1, you have {count} items", false},
		{"Сохранить изменения", true},
		{"Mixed: настройки page", true},
		{"ї is Cyrillic too", true},
		{"日本語テキスト", false},
	}

	for _, c := range cases {
		if got := ContainsCyrillic(c.in); got != c.want {
			t.Fatalf("ContainsCyrillic(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHash_DistinctAndStable(t *testing.T) {
	a := Hash("Сохранить")
	b := Hash("Сохранить")
	c := Hash("Отменить")

	if a != b {
		t.Fatalf("hash not stable: %s != %s", a, b)
	}
	if a == c {
		t.Fatalf("distinct inputs produced identical hash %s", a)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate left short string changed: %q", got)
	}
	if got := Truncate("0123456789abcdef", 8); got != "01234567..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
