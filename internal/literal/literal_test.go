package literal

import "testing"

func TestDecode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"plain"`, "plain"},
		{`"скажи \"да\""`, `скажи "да"`},
		{`"tab\tstays"`, `tab\tstays`},        // \t is not decoded
		{`"back\\slash"`, `back\\slash`},      // \\ is not decoded
		{"\"uni\\u0414code\"", "uni\\u0414code"}, // \uXXXX is not decoded
	}

	for _, c := range cases {
		got, err := Decode(c.in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("Decode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecode_RejectsUnquoted(t *testing.T) {
	for _, in := range []string{"", `"`, `plain`, `"unterminated`, `trailing"`} {
		if _, err := Decode(in); err == nil {
			t.Fatalf("Decode(%q) expected error", in)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	values := []string{
		"",
		"plain",
		`with "quotes" inside`,
		`"leading and trailing"`,
		`много "кавычек" подряд """`,
	}

	for _, v := range values {
		enc := Encode(v)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) error: %v", v, err)
		}
		if dec != v {
			t.Fatalf("round trip: %q -> %q -> %q", v, enc, dec)
		}
	}
}

func TestEncode_EscapesQuotes(t *testing.T) {
	if got := Encode(`say "hi"`); got != `"say \"hi\""` {
		t.Fatalf("Encode = %s", got)
	}
}
