package placeholder

import (
	"strings"
	"testing"
)

func TestMask_FragmentClasses(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		masked    string
		fragments []string
	}{
		{
			name:      "numbered placeholder",
			in:        "Привет %1!",
			masked:    "Привет __MASK0__!",
			fragments: []string{"%1"},
		},
		{
			name:      "brace placeholder",
			in:        "У вас {count} сообщений",
			masked:    "У вас __MASK0__ сообщений",
			fragments: []string{"{count}"},
		},
		{
			name:      "markup tags",
			in:        "<b>Внимание</b><br/>",
			masked:    "__MASK0__Внимание__MASK1____MASK2__",
			fragments: []string{"<b>", "</b>", "<br/>"},
		},
		{
			name:      "character reference",
			in:        "A&nbsp;B и &#160;",
			masked:    "A__MASK0__B и __MASK1__",
			fragments: []string{"&nbsp;", "&#160;"},
		},
		{
			name:      "plural group kept whole",
			in:        "%1 [файл|файлов] удалено",
			masked:    "__MASK0__ __MASK1__ удалено",
			fragments: []string{"%1", "[файл|файлов]"},
		},
		{
			name:      "no fragments",
			in:        "просто текст",
			masked:    "просто текст",
			fragments: nil,
		},
	}

	for _, c := range cases {
		masked, fragments := Mask(c.in)
		if masked != c.masked {
			t.Fatalf("%s: masked = %q, want %q", c.name, masked, c.masked)
		}
		if len(fragments) != len(c.fragments) {
			t.Fatalf("%s: got %d fragments, want %d (%v)", c.name, len(fragments), len(c.fragments), fragments)
		}
		for i := range fragments {
			if fragments[i] != c.fragments[i] {
				t.Fatalf("%s: fragment[%d] = %q, want %q", c.name, i, fragments[i], c.fragments[i])
			}
		}
	}
}

func TestUnmask_RoundTrip(t *testing.T) {
	inputs := []string{
		"Привет %1, у вас {count} новых писем",
		"<a href=\"#\">ссылка</a> и &amp; ещё",
		"%1 [минута|минут] до конца {session}",
		"без фрагментов вообще",
		"%1%2%3",
		"{a}{b}{c} подряд",
	}

	for _, in := range inputs {
		masked, fragments := Mask(in)
		if got := Unmask(masked, fragments); got != in {
			t.Fatalf("round trip failed:\n in:     %q\n masked: %q\n out:    %q", in, masked, got)
		}
	}
}

func TestUnmask_TokenDuplicatedByBackend(t *testing.T) {
	masked, fragments := Mask("Осталось %1")
	// A backend that repeats the token still yields no dangling sentinels.
	echoed := masked + " / " + masked
	restored := Unmask(echoed, fragments)
	if strings.Contains(restored, "__MASK") {
		t.Fatalf("dangling mask token in %q", restored)
	}
	if restored != "Осталось %1 / Осталось %1" {
		t.Fatalf("unexpected restore: %q", restored)
	}
}

func TestAlign_InverseOfUnmask(t *testing.T) {
	maskedSrc, fragments := Mask("Привет %1, у вас {count} писем")

	// A human translation carries the same fragments in its own word order.
	translated := "Вітаю %1, у вас {count} листів"
	aligned := Align(translated, fragments)
	if aligned != "Вітаю __MASK0__, у вас __MASK1__ листів" {
		t.Fatalf("align: %q", aligned)
	}
	if got := Unmask(aligned, fragments); got != translated {
		t.Fatalf("align/unmask not inverse: %q", got)
	}
	if !strings.Contains(maskedSrc, "__MASK0__") {
		t.Fatalf("source not masked: %q", maskedSrc)
	}
}

func TestMask_OrderIsLeftToRight(t *testing.T) {
	_, fragments := Mask("{b} %1 <i> &lt; [x|y]")
	want := []string{"{b}", "%1", "<i>", "&lt;", "[x|y]"}
	if len(fragments) != len(want) {
		t.Fatalf("got %d fragments: %v", len(fragments), fragments)
	}
	for i := range want {
		if fragments[i] != want[i] {
			t.Fatalf("fragment[%d] = %q, want %q", i, fragments[i], want[i])
		}
	}
}
