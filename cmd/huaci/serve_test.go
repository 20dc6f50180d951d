package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/huaci"
	main "github.com/fwojciec/huaci/cmd/huaci"
	"github.com/fwojciec/huaci/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout := &syncBuffer{}
	deps := &main.Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: io.Discard,
		Dictionary: &mock.DictionaryService{
			FindWordBaseFn: func(context.Context, string) (string, bool, error) {
				return "run", true, nil
			},
		},
		Config: &mock.ConfigService{},
		Watcher: &mock.ConfigWatcher{
			ChangesFn: func() <-chan struct{} { return nil },
			ErrorsFn:  func() <-chan error { return nil },
		},
		Shell: &mock.Shell{},
	}

	done := make(chan error)
	go func() { done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps) }()

	listening := regexp.MustCompile(`Listening on (http://\S+)`)
	var url string
	require.Eventually(t, func() bool {
		m := listening.FindStringSubmatch(stdout.String())
		if m == nil {
			return false
		}
		url = m[1]
		return true
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get(url + "/api/v1/dict/base/ran")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		Base *string `json:"base"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Base)
	assert.Equal(t, "run", *body.Base)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServeCmd_Run_ListenError(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: io.Discard,
		Stderr: stderr,
	}

	err := (&main.ServeCmd{Addr: "256.0.0.1:bad"}).Run(deps)

	require.Error(t, err)
	assert.Equal(t, huaci.EIO, huaci.ErrorCode(err))
	assert.Contains(t, stderr.String(), "failed to listen")
}
