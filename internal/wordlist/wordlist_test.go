package wordlist

import (
	"reflect"
	"strings"
	"testing"
)

func TestDefaultTableAnchors(t *testing.T) {
	w, err := Default(2, Prefix{})
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(w.words) != 2 {
		t.Fatalf("want 2 columns, got %d", len(w.words))
	}
	checks := []struct {
		col, idx int
		want     string
	}{
		{0, 0, "adroitness"},
		{1, 0, "aardvark"},
		{0, 255, "yucatan"},
		{1, 255, "zulu"},
	}
	for _, c := range checks {
		if got := w.words[c.col][c.idx]; got != c.want {
			t.Fatalf("words[%d][%d] = %q, want %q", c.col, c.idx, got, c.want)
		}
	}
	for col := range w.words {
		for idx, word := range w.words[col] {
			if word == "" {
				t.Fatalf("hole in column %d at index %d", col, idx)
			}
		}
	}
}

func columns(all ...string) [][]string {
	out := make([][]string, len(all))
	for i, col := range all {
		out[i] = strings.Fields(col)
	}
	return out
}

func TestChooseCyclesColumns(t *testing.T) {
	few := columns("purple", "sausages")

	cases := []struct {
		num  int
		want string
	}{
		{2, "purple-sausages"},
		{3, "purple-sausages-purple"},
		{4, "purple-sausages-purple-sausages"},
	}
	for _, c := range cases {
		got, err := New(c.num, few, Prefix{}).Choose()
		if err != nil {
			t.Fatalf("choose: %v", err)
		}
		if got != c.want {
			t.Fatalf("numWords=%d: got %q, want %q", c.num, got, c.want)
		}
	}
}

func TestChooseDrawsFromTheRightColumn(t *testing.T) {
	more := columns("purple yellow", "sausages")

	expect2 := map[string]bool{"purple-sausages": true, "yellow-sausages": true}
	w := New(2, more, Prefix{})
	for i := 0; i < 20; i++ {
		got, err := w.Choose()
		if err != nil {
			t.Fatalf("choose: %v", err)
		}
		if !expect2[got] {
			t.Fatalf("unexpected phrase %q", got)
		}
	}

	expect3 := map[string]bool{
		"purple-sausages-purple": true,
		"yellow-sausages-purple": true,
		"purple-sausages-yellow": true,
		"yellow-sausages-yellow": true,
	}
	w = New(3, more, Prefix{})
	for i := 0; i < 20; i++ {
		got, err := w.Choose()
		if err != nil {
			t.Fatalf("choose: %v", err)
		}
		if !expect3[got] {
			t.Fatalf("unexpected phrase %q", got)
		}
	}
}

func TestCompletionsPrefix(t *testing.T) {
	w, err := Default(2, Prefix{})
	if err != nil {
		t.Fatalf("load table: %v", err)
	}

	if got := w.Completions("22"); len(got) != 0 {
		t.Fatalf("numeric nameplate should not complete, got %v", got)
	}

	want := []string{
		"22-chairlift", "22-chatter", "22-checkup", "22-chisel",
		"22-choking", "22-chopper", "22-christmas",
	}
	if got := w.Completions("22-ch"); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// the second dash flips back to the first column
	if got := w.Completions("22-chisel-adro"); !reflect.DeepEqual(got, []string{"22-chisel-adroitness"}) {
		t.Fatalf("got %v", got)
	}
}

func TestCompletionsFuzzy(t *testing.T) {
	w, err := Default(2, Fuzzy{})
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	got := w.Completions("22-chisl")
	if len(got) == 0 || got[0] != "22-chisel" {
		t.Fatalf("fuzzy completion for chisl: got %v", got)
	}
}

func TestColumnForHonorsCursor(t *testing.T) {
	w := New(2, columns("even", "odd"), Prefix{})

	if got := w.ColumnFor("aa-bb", -1); got[0] != "odd" {
		t.Fatalf("end of line: got %v", got)
	}
	// cursor inside the first word sees zero dashes
	if got := w.ColumnFor("aa-bb", 1); got[0] != "even" {
		t.Fatalf("cursor at 1: got %v", got)
	}
}

func TestPartialAt(t *testing.T) {
	cases := []struct {
		prefix string
		pos    int
		want   string
	}{
		{"22-chisel-aard", 5, "chisel"},
		{"22-chisel-aard", 12, "aard"},
		{"22-chisel-aard", 1, "22"},
		{"word", 2, "word"},
	}
	for _, c := range cases {
		if got := PartialAt(c.prefix, c.pos); got != c.want {
			t.Fatalf("PartialAt(%q, %d) = %q, want %q", c.prefix, c.pos, got, c.want)
		}
	}
}
