package textrules

import "context"

// LetterRule replaces one rune with another ("×" -> "x").
type LetterRule struct {
	From string // 1 rune
	To   string // 1 rune, empty drops the rune
}

// WordRule replaces a whole word or a phrase of words ("to the power" -> "cap").
type WordRule struct {
	From string
	To   string
}

type Repo interface {
	ListLetterRules(ctx context.Context) ([]LetterRule, error)
	ListWordRules(ctx context.Context) ([]WordRule, error)

	AddLetterRule(ctx context.Context, from, to string) error
	AddWordRule(ctx context.Context, from, to string) error

	DeleteLetterRule(ctx context.Context, from string) error
	DeleteWordRule(ctx context.Context, from string) error
}

type Service interface {
	Process(ctx context.Context, text string) (string, error)
}
