package game

// Match levels for a single guessed letter.
const (
	MatchNone    = 0
	MatchPartial = 1
	MatchExact   = 2
)

// Evaluate scores guess against target with duplicate-aware rules. For every
// distinct letter value in the guess: positions shared with the target are
// exact; of the remaining guess positions, taken in ascending order, at most
// (target occurrences − exact matches) become partial; the rest score nothing.
// That bound keeps a repeated guess letter from earning more partial credit
// than the target has occurrences left.
//
// Both strings must be the same length; the caller validates that.
func Evaluate(guess, target string) []LetterResult {
	res := make([]LetterResult, len(guess))
	for i := range res {
		res[i] = LetterResult{Letter: string(guess[i]), Match: MatchNone}
	}

	var seen [256]bool
	for i := 0; i < len(guess); i++ {
		ch := guess[i]
		if seen[ch] {
			continue
		}
		seen[ch] = true

		var guessPos, targetPos []int
		for j := 0; j < len(guess); j++ {
			if guess[j] == ch {
				guessPos = append(guessPos, j)
			}
		}
		for j := 0; j < len(target); j++ {
			if target[j] == ch {
				targetPos = append(targetPos, j)
			}
		}

		exact := 0
		for _, p := range guessPos {
			if target[p] == ch {
				res[p].Match = MatchExact
				exact++
			}
		}

		partials := len(targetPos) - exact
		for _, p := range guessPos {
			if res[p].Match == MatchExact {
				continue
			}
			if partials > 0 {
				res[p].Match = MatchPartial
				partials--
			}
		}
	}

	return res
}

func allExact(res []LetterResult) bool {
	for _, r := range res {
		if r.Match != MatchExact {
			return false
		}
	}
	return true
}

// opponentView strips letters from an evaluation, leaving only the color
// pattern the opponent is allowed to see.
func opponentView(res []LetterResult) []OpponentLetterResult {
	out := make([]OpponentLetterResult, len(res))
	for i, r := range res {
		out[i] = OpponentLetterResult{Match: r.Match}
	}
	return out
}
