package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"quiz-session-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	loader, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer loader.Close()

	subjects := []domain.Subject{
		{ID: "zoology", Name: "Zoology", Questions: []domain.Question{
			{ID: "q1", Prompt: "Largest mammal?", Options: []domain.Option{
				{Text: "Blue whale", Correct: true}, {Text: "Elephant"},
			}},
		}},
		{ID: "art", Name: "Art", Questions: []domain.Question{
			{ID: "q1", Prompt: "Who painted the Mona Lisa?", Options: []domain.Option{
				{Text: "Leonardo", Correct: true}, {Text: "Raphael"},
			}},
		}},
	}
	require.NoError(t, loader.Seed(ctx, subjects))

	got, err := loader.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, subjects, got)
}

func TestLoadEmptyCatalog(t *testing.T) {
	loader, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.LoadCatalog(context.Background())
	assert.True(t, errors.Is(err, domain.ErrCatalogNotFound))
}
