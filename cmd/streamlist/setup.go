package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/streamlist/internal/config"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/tmdb"
	"github.com/mmcdole/streamlist/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const validateTimeout = 15 * time.Second

// keyValidator checks an API key against the catalog
type keyValidator func(ctx context.Context, apiKey string) error

// NewSetupCmd creates the setup command. cfg is called after config load.
func NewSetupCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure the TMDB API key",
		Long: `Prompt for a TMDB API key, check it against the API and save it to the config file.

The key can also be supplied with the TMDB_API_KEY environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Welcome to StreamList!")
			fmt.Fprintln(out)

			apiKey, err := readAPIKey(cmd.InOrStdin(), out)
			if err != nil {
				return err
			}
			return runSetup(out, c, apiKey, tmdbValidator(c), config.SaveConfig)
		},
	}
}

// readAPIKey prompts for the key, hiding input on a terminal
func readAPIKey(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter your TMDB API key: ")

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// runSetup validates apiKey and saves it. A rejected key is an error; an
// unreachable API only warns so setup works offline.
func runSetup(out io.Writer, cfg *config.Config, apiKey string, validate keyValidator, save func(*config.Config) error) error {
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	err := validateWithSpinner(ctx, out, apiKey, validate)
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		fmt.Fprintln(out, "✗ TMDB rejected this API key")
		return err
	case err != nil:
		fmt.Fprintf(out, "! Could not verify the key: %v\n", err)
		fmt.Fprintln(out, "  Saving it anyway.")
	default:
		fmt.Fprintln(out, "✓ API key verified")
	}

	cfg.TMDB.APIKey = apiKey
	if err := save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✓ Configuration saved!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run streamlist to start the application.")
	return nil
}

// validateWithSpinner runs validate while animating a spinner line
func validateWithSpinner(ctx context.Context, out io.Writer, apiKey string, validate keyValidator) error {
	resultCh := make(chan error, 1)
	go func() {
		resultCh <- validate(ctx, apiKey)
	}()

	frame := 0
	fmt.Fprintf(out, "\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Fprint(out, clearSpinnerLine)
			return err

		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Fprint(out, clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}

// tmdbValidator checks a key by fetching one page of popular movies
func tmdbValidator(cfg *config.Config) keyValidator {
	return func(ctx context.Context, apiKey string) error {
		client := tmdb.NewClient(tmdb.ClientConfig{
			BaseURL:    cfg.TMDB.BaseURL,
			APIKey:     apiKey,
			Language:   cfg.TMDB.Language,
			HTTPClient: newHTTPClient(cfg.TMDB.Timeout),
		}, nil)
		_, err := client.GetCategory(ctx, domain.CategoryPopular, 1)
		return err
	}
}
