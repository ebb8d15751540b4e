package textrules

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

// Process rewrites a transcript: letters first, then words and phrases.
// Rules only touch the transcript, the calculator's own token table is separate.
func (s *service) Process(ctx context.Context, text string) (string, error) {
	// 1) letters
	letterRules, err := s.repo.ListLetterRules(ctx)
	if err != nil {
		return "", err
	}

	if len(letterRules) > 0 {
		letters := make(map[rune][]rune, len(letterRules))
		for _, rule := range letterRules {
			from := []rune(rule.From)
			if len(from) != 1 {
				continue
			}
			letters[from[0]] = []rune(rule.To)
		}

		var b strings.Builder
		for _, r := range text {
			if to, ok := letters[r]; ok {
				if len(to) > 0 {
					b.WriteRune(to[0])
				}
				continue
			}
			b.WriteRune(r)
		}
		text = b.String()
	}

	// 2) words
	wordRules, err := s.repo.ListWordRules(ctx)
	if err != nil {
		return "", err
	}

	tokens := strings.FieldsFunc(text, unicode.IsSpace)
	if len(wordRules) == 0 {
		return strings.Join(tokens, " "), nil
	}

	phrases := compile(wordRules)
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); {
		matched := false
		for _, p := range phrases {
			if hasPrefix(tokens[i:], p.from) {
				if p.to != "" {
					out = append(out, p.to)
				}
				i += len(p.from)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}

	return strings.Join(out, " "), nil
}

type phrase struct {
	from []string
	to   string
}

// compile orders phrases longest first so "to the power" wins over "to".
func compile(rules []WordRule) []phrase {
	out := make([]phrase, 0, len(rules))
	for _, r := range rules {
		from := strings.Fields(r.From)
		if len(from) == 0 {
			continue
		}
		out = append(out, phrase{from: from, to: strings.TrimSpace(r.To)})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].from) > len(out[j].from) })
	return out
}

func hasPrefix(tokens, words []string) bool {
	if len(tokens) < len(words) {
		return false
	}
	for i, w := range words {
		if tokens[i] != w {
			return false
		}
	}
	return true
}
