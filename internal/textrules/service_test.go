package textrules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(DefaultWordRules()...)
	require.NoError(t, repo.AddLetterRule(ctx, "×", "x"))
	svc := NewService(repo)

	cases := map[string]string{
		"two plus two":                   "2 plus 2",
		"two to the power of eight":      "2 cap 8",
		"two to the power eight":         "2 cap 8",
		"ten divided by four":            "10 divide 4",
		"5 × 6":                          "5 x 6",
		"  seven   multiplied by  three": "7 x 3",
		"towel":                          "towel",
		"":                               "",
	}
	for in, want := range cases {
		got, err := svc.Process(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestProcessNoRules(t *testing.T) {
	got, err := NewService(NewMemoryRepo()).Process(context.Background(), "a  b")
	require.NoError(t, err)
	assert.Equal(t, "a b", got)
}

func TestProcessDropRules(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(WordRule{From: "um", To: ""})
	require.NoError(t, repo.AddLetterRule(ctx, "?", ""))

	got, err := NewService(repo).Process(ctx, "um two plus um two?")
	require.NoError(t, err)
	assert.Equal(t, "two plus two", got)
}

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	require.NoError(t, repo.AddWordRule(ctx, "  To The  Power ", "cap"))
	require.NoError(t, repo.AddWordRule(ctx, "to the power", "**"))
	words, err := repo.ListWordRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WordRule{{From: "to the power", To: "**"}}, words)

	require.NoError(t, repo.DeleteWordRule(ctx, "TO THE POWER"))
	words, _ = repo.ListWordRules(ctx)
	assert.Empty(t, words)

	assert.ErrorIs(t, repo.AddLetterRule(ctx, "ab", "c"), ErrBadLetter)
	assert.ErrorIs(t, repo.AddWordRule(ctx, "   ", "c"), ErrBadWord)

	require.NoError(t, repo.AddLetterRule(ctx, "é", "e"))
	require.NoError(t, repo.DeleteLetterRule(ctx, "é"))
	letters, _ := repo.ListLetterRules(ctx)
	assert.Empty(t, letters)
}

type failingRepo struct{ Repo }

func (failingRepo) ListLetterRules(context.Context) ([]LetterRule, error) {
	return nil, errors.New("db down")
}

func TestProcessRepoFailure(t *testing.T) {
	_, err := NewService(failingRepo{NewMemoryRepo()}).Process(context.Background(), "two")
	assert.EqualError(t, err, "db down")
}
