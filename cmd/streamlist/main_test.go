package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/streamlist/internal/config"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedStore returns an opener that always hands out the same memory store
func sharedStore(t *testing.T) storeOpener {
	t.Helper()
	st, err := store.NewWatchlistStore("")
	require.NoError(t, err)
	return func() (*store.WatchlistStore, error) { return st, nil }
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	open := sharedStore(t)

	out, err := execute(t, NewAddCmd(open), "Dune", "Part", "Two")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Dune Part Two"`)

	_, err = execute(t, NewAddCmd(open), "Arrival")
	require.NoError(t, err)

	out, err = execute(t, NewListCmd(open))
	require.NoError(t, err)
	assert.Equal(t, "[ ] Dune Part Two\n[ ] Arrival\n", out)
}

func TestAddBlankTitle(t *testing.T) {
	_, err := execute(t, NewAddCmd(sharedStore(t)), "   ")
	assert.Error(t, err)
}

func TestListFilterFlag(t *testing.T) {
	open := sharedStore(t)
	_, err := execute(t, NewAddCmd(open), "Dune")
	require.NoError(t, err)

	out, err := execute(t, NewListCmd(open), "--filter", "completed")
	require.NoError(t, err)
	assert.Equal(t, "No completed items.\n", out)

	_, err = execute(t, NewListCmd(open), "--filter", "watched")
	assert.Error(t, err)
}

func TestPrintItems(t *testing.T) {
	items := []domain.WatchlistItem{
		{ID: "1", Text: "Dune", Completed: true},
		{ID: "2", Text: "Arrival"},
	}

	var buf bytes.Buffer
	printItems(&buf, items, domain.FilterAll)
	assert.Equal(t, "[x] Dune\n[ ] Arrival\n", buf.String())

	buf.Reset()
	printItems(&buf, items, domain.FilterActive)
	assert.Equal(t, "[ ] Arrival\n", buf.String())

	buf.Reset()
	printItems(&buf, nil, domain.FilterCompleted)
	assert.Equal(t, "Your list is empty.\n", buf.String())
}

func TestReset(t *testing.T) {
	open := sharedStore(t)
	_, err := execute(t, NewAddCmd(open), "Dune")
	require.NoError(t, err)

	out, err := execute(t, NewResetCmd(open))
	require.NoError(t, err)
	assert.Contains(t, out, "Watchlist cleared.")

	out, err = execute(t, NewListCmd(open))
	require.NoError(t, err)
	assert.Equal(t, "Your list is empty.\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd("1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, "streamlist version 1.0.0\n", out)
}

func TestReadAPIKeyFromPipe(t *testing.T) {
	var out bytes.Buffer
	key, err := readAPIKey(bytes.NewBufferString("  abc123  \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
	assert.Contains(t, out.String(), "TMDB API key")
}

func TestRunSetup(t *testing.T) {
	ok := func(ctx context.Context, apiKey string) error { return nil }
	unreachable := func(ctx context.Context, apiKey string) error { return domain.ErrCatalogUnavailable }
	rejected := func(ctx context.Context, apiKey string) error { return domain.ErrAuthFailed }

	tests := []struct {
		name      string
		key       string
		validate  keyValidator
		wantErr   error
		wantSaved bool
	}{
		{name: "verified key", key: "abc", validate: ok, wantSaved: true},
		{name: "offline saves anyway", key: "abc", validate: unreachable, wantSaved: true},
		{name: "rejected key", key: "abc", validate: rejected, wantErr: domain.ErrAuthFailed},
		{name: "empty key", key: "", validate: ok, wantErr: errors.New("API key cannot be empty")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			var saved *config.Config
			save := func(c *config.Config) error {
				saved = c
				return nil
			}

			var out bytes.Buffer
			err := runSetup(&out, cfg, tt.key, tt.validate, save)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, saved)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, tt.key, saved.TMDB.APIKey)
			assert.Contains(t, out.String(), "Configuration saved!")
		})
	}
}

func TestRunSetupSaveFailure(t *testing.T) {
	save := func(*config.Config) error { return errors.New("disk full") }
	ok := func(ctx context.Context, apiKey string) error { return nil }

	err := runSetup(&bytes.Buffer{}, config.DefaultConfig(), "abc", ok, save)
	assert.ErrorContains(t, err, "disk full")
}
