package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"
)

// Embedded defaults keep the server runnable with no word files configured.

//go:embed answers.txt
var embeddedAnswers string

//go:embed allowed.txt
var embeddedAllowed string

const wordLength = 5

// List is the read-only dictionary shared by all sessions: the set of legal
// guesses and the pool of candidate target words.
type List struct {
	answers []string
	allowed map[string]struct{}
}

// New builds a List from explicit word slices. Answers are always legal
// guesses, whether or not they appear in allowed.
func New(answers, allowed []string) (*List, error) {
	answers = normalize(answers)
	allowed = normalize(allowed)

	if len(answers) == 0 {
		return nil, errors.New("answer list is empty")
	}

	set := lo.SliceToMap(append(allowed, answers...), func(w string) (string, struct{}) {
		return w, struct{}{}
	})

	return &List{answers: answers, allowed: set}, nil
}

// Load reads the dictionary from the given files, falling back to the
// embedded defaults for any path left empty.
func Load(answersPath, allowedPath string) (*List, error) {
	answers, err := readList(answersPath, embeddedAnswers)
	if err != nil {
		return nil, fmt.Errorf("answers: %w", err)
	}
	allowed, err := readList(allowedPath, embeddedAllowed)
	if err != nil {
		return nil, fmt.Errorf("allowed: %w", err)
	}
	return New(answers, allowed)
}

// IsAllowed reports whether w is a legal guess.
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowed[strings.ToLower(w)]
	return ok
}

// RandomAnswer samples a target word uniformly from the answer pool.
func (l *List) RandomAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// Counts returns the answer pool size and the legal-guess set size.
func (l *List) Counts() (answers, allowed int) {
	return len(l.answers), len(l.allowed)
}

func readList(path, fallback string) ([]string, error) {
	if path == "" {
		return scanWords(strings.NewReader(fallback))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanWords(f)
}

func scanWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalize lowercases and drops anything that is not exactly five ASCII
// letters. Duplicates are kept out so RandomAnswer stays uniform.
func normalize(in []string) []string {
	cleaned := lo.FilterMap(in, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		return w, isWord(w)
	})
	return lo.Uniq(cleaned)
}

func isWord(w string) bool {
	if len(w) != wordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
