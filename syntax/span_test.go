package syntax

import "testing"

func TestSpanMerge(t *testing.T) {
	a := Span{StartLine: 1, StartCol: 4, StartOffset: 4, EndLine: 1, EndCol: 9, EndOffset: 9}
	b := Span{StartLine: 2, StartCol: 0, StartOffset: 12, EndLine: 3, EndCol: 5, EndOffset: 30}

	merged := a.Merge(b)
	want := Span{StartLine: 1, StartCol: 4, StartOffset: 4, EndLine: 3, EndCol: 5, EndOffset: 30}
	if merged != want {
		t.Errorf("expected %+v, got %+v", want, merged)
	}

	// Merge is symmetric.
	if got := b.Merge(a); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	// Merging with itself is the identity.
	if got := a.Merge(a); got != a {
		t.Errorf("expected %+v, got %+v", a, got)
	}
}
