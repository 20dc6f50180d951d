package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/huaci"
	main "github.com/fwojciec/huaci/cmd/huaci"
	"github.com/fwojciec/huaci/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkDeps(decks, models []string, versionErr error) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer, *string) {
	var gotURL string
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: &mock.ConfigService{
			ReadConfigFn: func(context.Context) (*huaci.Config, error) {
				return &huaci.Config{AnkiConnectURL: "http://localhost:8765", DeckName: "Vocab", ModelName: "Basic"}, nil
			},
		},
		Anki: func(url string) huaci.AnkiService {
			gotURL = url
			return &mock.AnkiService{
				VersionFn:    func(context.Context) (int, error) { return 6, versionErr },
				DeckNamesFn:  func(context.Context) ([]string, error) { return decks, nil },
				ModelNamesFn: func(context.Context) ([]string, error) { return models, nil },
			}
		},
	}
	return deps, stdout, stderr, &gotURL
}

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes when deck and note type exist", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _, url := checkDeps([]string{"Default", "Vocab"}, []string{"Basic"}, nil)

		require.NoError(t, (&main.CheckCmd{}).Run(deps))

		assert.Equal(t, "http://localhost:8765", *url)
		assert.Contains(t, stdout.String(), "ok (version 6)")
		assert.NotContains(t, stdout.String(), "missing")
	})

	t.Run("fails when the deck is missing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr, _ := checkDeps([]string{"Default"}, []string{"Basic"}, nil)

		err := (&main.CheckCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, huaci.ENOTFOUND, huaci.ErrorCode(err))
		assert.Contains(t, stdout.String(), "missing")
		assert.Contains(t, stderr.String(), `deck "Vocab" does not exist`)
	})

	t.Run("fails when the note type is missing", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr, _ := checkDeps([]string{"Vocab"}, []string{"Cloze"}, nil)

		err := (&main.CheckCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), `note type "Basic" does not exist`)
	})

	t.Run("hints when AnkiConnect is unreachable", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr, _ := checkDeps(nil, nil, huaci.Errorf(huaci.EIO, "failed to reach AnkiConnect"))

		err := (&main.CheckCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Hint: Start Anki")
	})
}
