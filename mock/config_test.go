package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/huaci"
	"github.com/fwojciec/huaci/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigService_CommitConfig(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CommitConfigFn", func(t *testing.T) {
		t.Parallel()

		var calledWith huaci.ConfigUpdate
		s := &mock.ConfigService{
			CommitConfigFn: func(_ context.Context, upd huaci.ConfigUpdate) error {
				calledWith = upd
				return nil
			},
		}

		deck := "Vocab"
		err := s.CommitConfig(context.Background(), huaci.ConfigUpdate{DeckName: &deck})

		require.NoError(t, err)
		require.NotNil(t, calledWith.DeckName)
		assert.Equal(t, "Vocab", *calledWith.DeckName)
		assert.Nil(t, calledWith.ModelName)
	})
}
