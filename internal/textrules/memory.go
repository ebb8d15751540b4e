package textrules

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

var (
	ErrBadLetter = errors.New("letter rule needs a single character on each side")
	ErrBadWord   = errors.New("word rule needs a non-empty source")
)

func validateLetter(from, to string) error {
	if utf8.RuneCountInString(from) != 1 || utf8.RuneCountInString(to) > 1 {
		return ErrBadLetter
	}
	return nil
}

func normalizeWord(from string) string {
	return strings.Join(strings.Fields(strings.ToLower(from)), " ")
}

func validateWord(from string) (string, error) {
	from = normalizeWord(from)
	if from == "" {
		return "", ErrBadWord
	}
	return from, nil
}

// memRepo keeps rules in insertion order; used when DATABASE_URL is empty.
type memRepo struct {
	mu      sync.RWMutex
	letters []LetterRule
	words   []WordRule
}

func NewMemoryRepo(words ...WordRule) Repo {
	r := &memRepo{}
	for _, w := range words {
		_ = r.AddWordRule(context.Background(), w.From, w.To)
	}
	return r
}

func (r *memRepo) ListLetterRules(context.Context) ([]LetterRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]LetterRule(nil), r.letters...), nil
}

func (r *memRepo) ListWordRules(context.Context) ([]WordRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]WordRule(nil), r.words...), nil
}

func (r *memRepo) AddLetterRule(_ context.Context, from, to string) error {
	if err := validateLetter(from, to); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.letters {
		if r.letters[i].From == from {
			r.letters[i].To = to
			return nil
		}
	}
	r.letters = append(r.letters, LetterRule{From: from, To: to})
	return nil
}

func (r *memRepo) AddWordRule(_ context.Context, from, to string) error {
	from, err := validateWord(from)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.words {
		if r.words[i].From == from {
			r.words[i].To = to
			return nil
		}
	}
	r.words = append(r.words, WordRule{From: from, To: to})
	return nil
}

func (r *memRepo) DeleteLetterRule(_ context.Context, from string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.letters {
		if r.letters[i].From == from {
			r.letters = append(r.letters[:i], r.letters[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memRepo) DeleteWordRule(_ context.Context, from string) error {
	from = normalizeWord(from)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.words {
		if r.words[i].From == from {
			r.words = append(r.words[:i], r.words[i+1:]...)
			break
		}
	}
	return nil
}

// DefaultWordRules fixes common mis-hearings of spoken arithmetic.
func DefaultWordRules() []WordRule {
	return []WordRule{
		{From: "to the power of", To: "cap"},
		{From: "to the power", To: "cap"},
		{From: "multiplied by", To: "x"},
		{From: "divided by", To: "divide"},
		{From: "over", To: "divide"},
		{From: "zero", To: "0"},
		{From: "one", To: "1"},
		{From: "two", To: "2"},
		{From: "three", To: "3"},
		{From: "four", To: "4"},
		{From: "five", To: "5"},
		{From: "six", To: "6"},
		{From: "seven", To: "7"},
		{From: "eight", To: "8"},
		{From: "nine", To: "9"},
		{From: "ten", To: "10"},
	}
}
