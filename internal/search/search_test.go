package search

import (
	"sort"
	"strings"
	"testing"
)

const catFragment = `<h1>Pets</h1><p>A Cat sat.</p><p>The cat and the CAT.</p>`

func TestCaseInsensitiveMatchCount(t *testing.T) {
	s, err := New(catFragment, "cat")
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 3 {
		t.Fatalf("Count = %d, want 3", s.Count())
	}
	if got := s.Position(); got != (Position{Current: 1, Total: 3}) {
		t.Errorf("initial Position = %+v", got)
	}
}

func TestCyclicNavigation(t *testing.T) {
	s, err := New(catFragment, "cat")
	if err != nil {
		t.Fatal(err)
	}

	// next() three times from the initial state wraps back to 1.
	want := []int{2, 3, 1}
	for i, w := range want {
		if got := s.Next(); got.Current != w {
			t.Errorf("Next #%d = %d, want %d", i+1, got.Current, w)
		}
	}

	// previous() from the initial state wraps backward to the last match.
	s2, _ := New(catFragment, "cat")
	if got := s2.Previous(); got.Current != 3 {
		t.Errorf("Previous from initial = %d, want 3", got.Current)
	}
}

func TestHighlightWrapping(t *testing.T) {
	s, err := New(catFragment, "cat")
	if err != nil {
		t.Fatal(err)
	}
	out := s.HTML()
	if got := strings.Count(out, `<mark class="search-hit`); got != 3 {
		t.Errorf("expected 3 marks, got %d in %q", got, out)
	}
	// Only the first match is current.
	if got := strings.Count(out, `search-hit current`); got != 1 {
		t.Errorf("expected exactly 1 current mark, got %d", got)
	}
	// Original casing is preserved inside the marks.
	for _, want := range []string{">Cat</mark>", ">cat</mark>", ">CAT</mark>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	// Matches are numbered in encounter order.
	if !strings.Contains(out, `data-match="0"`) || !strings.Contains(out, `data-match="2"`) {
		t.Errorf("missing data-match indices: %s", out)
	}
}

func TestEmptyQueryInactive(t *testing.T) {
	s, err := New(catFragment, "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Active() {
		t.Error("empty query should be inactive")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
	if s.HTML() != catFragment {
		t.Errorf("empty query must leave the fragment untouched")
	}
}

func TestNoMatchesIsDistinguishable(t *testing.T) {
	s, err := New(catFragment, "zebra")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Active() {
		t.Error("a submitted query with no hits is still an active session")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
	if got := s.Next(); got != (Position{}) {
		t.Errorf("Next with no matches = %+v, want zero position", got)
	}
}

func TestNonOverlappingMatches(t *testing.T) {
	s, err := New("<p>aaaa</p>", "aa")
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 2 {
		t.Errorf("left-to-right non-overlapping: Count = %d, want 2", s.Count())
	}
}

func TestScriptAndStyleSkipped(t *testing.T) {
	frag := `<p>cat</p><script>var cat = 1;</script><style>.cat {}</style>`
	s, err := New(frag, "cat")
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1 (script/style content is not searchable text)", s.Count())
	}
}

func TestMarkersProportionalAndOrdered(t *testing.T) {
	frag := "<p>" + strings.Repeat("x", 100) + "cat" + strings.Repeat("y", 400) + "cat</p>"
	s, err := New(frag, "cat")
	if err != nil {
		t.Fatal(err)
	}
	m := s.Markers()
	if len(m) != 2 {
		t.Fatalf("markers = %v, want 2 entries", m)
	}
	if !sort.Float64sAreSorted(m) {
		t.Errorf("markers must be in document order: %v", m)
	}
	for _, f := range m {
		if f < 0 || f >= 1 {
			t.Errorf("marker fraction %v out of range [0,1)", f)
		}
	}
	if m[0] > 0.5 || m[1] < 0.5 {
		t.Errorf("markers not proportional to position: %v", m)
	}
}

func TestMatchSpansStayInDocumentOrder(t *testing.T) {
	frag := `<p>one cat</p><ul><li>two cat</li><li>three cat</li></ul>`
	s, err := New(frag, "cat")
	if err != nil {
		t.Fatal(err)
	}
	out := s.HTML()
	i0 := strings.Index(out, `data-match="0"`)
	i1 := strings.Index(out, `data-match="1"`)
	i2 := strings.Index(out, `data-match="2"`)
	if !(i0 < i1 && i1 < i2) {
		t.Errorf("matches out of order: %d %d %d in %s", i0, i1, i2, out)
	}
}
