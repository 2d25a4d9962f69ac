package game

import "testing"

func matches(res []LetterResult) []int {
	out := make([]int, len(res))
	for i, r := range res {
		out[i] = r.Match
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		guess  string
		target string
		want   []int
	}{
		{name: "all exact", guess: "crane", target: "crane", want: []int{2, 2, 2, 2, 2}},
		{name: "no shared letters", guess: "pjump", target: "crane", want: []int{0, 0, 0, 0, 0}},
		{name: "anagram partials", guess: "trace", target: "crane", want: []int{0, 2, 2, 1, 2}},
		{name: "partial capped by target count", guess: "cacao", target: "crane", want: []int{2, 1, 0, 0, 0}},
		{name: "exact wins over earlier partial", guess: "eerie", target: "those", want: []int{0, 0, 0, 0, 2}},
		{name: "double letter both present", guess: "geese", target: "those", want: []int{0, 0, 0, 2, 2}},
		{name: "repeated guess letter single target hit", guess: "spoon", target: "snack", want: []int{2, 0, 0, 0, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matches(Evaluate(tc.guess, tc.target))
			if !equalInts(got, tc.want) {
				t.Fatalf("Evaluate(%q, %q)=%v want %v", tc.guess, tc.target, got, tc.want)
			}
		})
	}
}

func TestEvaluate_DuplicateLetterLaw(t *testing.T) {
	// letter appears once in the target but twice in the guess: exactly one
	// guess position scores, and an exact match beats any partial
	res := Evaluate("llama", "olive")
	got := matches(res)

	scored := 0
	for _, m := range got {
		if m >= MatchPartial {
			scored++
		}
	}
	// l once in target (pos 1): guess pos 1 is exact, guess pos 0 gets
	// nothing; a/m score nothing, second a nothing
	if scored != 1 {
		t.Fatalf("expected exactly one scoring position, got %v", got)
	}
	if got[1] != MatchExact {
		t.Fatalf("expected exact at pos 1, got %v", got)
	}
	if got[0] != MatchNone {
		t.Fatalf("expected no credit at pos 0, got %v", got)
	}
}

func TestAllExact(t *testing.T) {
	if !allExact(Evaluate("crane", "crane")) {
		t.Fatal("identical guess should be all exact")
	}
	if allExact(Evaluate("trace", "crane")) {
		t.Fatal("non-identical guess should not be all exact")
	}
}

func TestOpponentView(t *testing.T) {
	res := Evaluate("trace", "crane")
	view := opponentView(res)
	if len(view) != len(res) {
		t.Fatalf("length mismatch: %d vs %d", len(view), len(res))
	}
	for i := range view {
		if view[i].Match != res[i].Match {
			t.Fatalf("match mismatch at %d", i)
		}
	}
}
