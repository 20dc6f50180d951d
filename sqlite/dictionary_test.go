package sqlite_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/huaci"
	"github.com/fwojciec/huaci/internal/dicttest"
	"github.com/fwojciec/huaci/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestDictionaryService_SearchCollins(t *testing.T) {
	t.Parallel()

	t.Run("returns the matching entry regardless of case", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchCollins(context.Background(), "RUN")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, &huaci.CollinsEntry{
			Word:              "run",
			Phonetic:          ptr("rʌn"),
			Sense:             ptr("1"),
			EnglishDefinition: ptr("move fast"),
			ChineseDefinition: ptr("跑"),
		}, entries[0])
	})

	t.Run("lower and upper case queries return identical results", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))
		ctx := context.Background()

		for _, w := range []string{"run", "apple", "missing"} {
			lower, err := svc.SearchCollins(ctx, w)
			require.NoError(t, err)
			upper, err := svc.SearchCollins(ctx, strings.ToUpper(w))
			require.NoError(t, err)
			assert.Equal(t, lower, upper, "word %q", w)
		}
	})

	t.Run("returns rows in insertion order with nulls as nil", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchCollins(context.Background(), "apple")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "apple", entries[0].Word)
		assert.Equal(t, "Apple", entries[1].Word)
		assert.Equal(t, "2", *entries[1].Sense)
		assert.Nil(t, entries[1].Phonetic)
		assert.Nil(t, entries[1].ChineseDefinition)
	})

	t.Run("returns empty slice for absent word", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchCollins(context.Background(), "zzz")
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("does not match prefixes", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchCollins(context.Background(), "ru")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("returns nil entries and an error when the database is missing", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/missing.db")
		defer db.Close()
		svc := sqlite.NewDictionaryService(db)

		entries, err := svc.SearchCollins(context.Background(), "run")
		require.Error(t, err)
		assert.Nil(t, entries)
		assert.Equal(t, huaci.EDATABASE, huaci.ErrorCode(err))
	})
}

func TestDictionaryService_SearchOxford(t *testing.T) {
	t.Parallel()

	t.Run("returns every sense in insertion order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchOxford(context.Background(), "Run")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "run", entries[0].Word)
		assert.Nil(t, entries[0].Phrase)
		assert.Equal(t, "verb", *entries[0].Sense)

		assert.Equal(t, "run into", *entries[1].Phrase)
		assert.Equal(t, "informal", *entries[1].Extension)
		assert.Equal(t, "meet by chance", *entries[1].EnglishDefinition)
		assert.Equal(t, "偶遇", *entries[1].ChineseDefinition)
	})

	t.Run("returns empty slice for absent word", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		entries, err := svc.SearchOxford(context.Background(), "apple")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestDictionaryService_FindWordBase(t *testing.T) {
	t.Parallel()

	t.Run("resolves inflected form regardless of case", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		base, ok, err := svc.FindWordBase(context.Background(), "Ran")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "run", base)
	})

	t.Run("reports no base for unknown word", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		base, ok, err := svc.FindWordBase(context.Background(), "run")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, base)
	})

	t.Run("returns the first row when a form has several bases", func(t *testing.T) {
		t.Parallel()

		fx := dicttest.Fixture{Forms: []dicttest.Form{
			{Word: "left", Base: "leave"},
			{Word: "left", Base: "left"},
		}}
		svc := sqlite.NewDictionaryService(setupTestDB(t, fx))

		base, ok, err := svc.FindWordBase(context.Background(), "left")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "leave", base)
	})
}

func TestDictionaryService_EachHeadword(t *testing.T) {
	t.Parallel()

	t.Run("visits distinct words of all tables", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))

		var words []string
		err := svc.EachHeadword(context.Background(), func(w string) error {
			words = append(words, w)
			return nil
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"run", "apple", "Apple", "ran", "running", "apples"}, words)
	})

	t.Run("stops at the first callback error", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))
		stop := huaci.Errorf(huaci.EINTERNAL, "stop")

		calls := 0
		err := svc.EachHeadword(context.Background(), func(string) error {
			calls++
			return stop
		})
		assert.Equal(t, stop, err)
		assert.Equal(t, 1, calls)
	})
}

func TestDictionaryService_ConcurrentLookups(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewDictionaryService(setupTestDB(t, dicttest.Default()))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := svc.SearchCollins(ctx, "run")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.SearchOxford(ctx, "run")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, _, err := svc.FindWordBase(ctx, "ran")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
