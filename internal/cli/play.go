package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/remaimber-it/imagequiz/internal/api"
	"github.com/remaimber-it/imagequiz/internal/asset"
	practicesession "github.com/remaimber-it/imagequiz/internal/domain/practice_session"
	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/service"
	"github.com/remaimber-it/imagequiz/internal/tui"
)

var (
	playServer  string
	playLocale  string
	playTimeout time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz session against a running server",
	Long: `Play a quiz session in the terminal. The bank layout is read from the
server's /api/config and every image is fetched from the server before it is
shown.

Controls:
  space, a   - Show answer
  n, enter   - Next question / finish
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playServer, "server", "http://localhost:8080", "quiz server base URL")
	playCmd.Flags().StringVar(&playLocale, "locale", "", "label set, en or ko (default: the server's)")
	playCmd.Flags().DurationVar(&playTimeout, "timeout", service.DefaultLoadTimeout, "bound on each image load")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := &http.Client{Timeout: 30 * time.Second}
	cfg, err := fetchConfig(ctx, client, playServer)
	if err != nil {
		return err
	}

	loader, err := asset.NewHTTPLoader(playServer, client)
	if err != nil {
		return err
	}

	model, renderer := newPlayer(ctx, cfg, loader, playLocale, playTimeout)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	renderer.Attach(p.Send)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("player error: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if err := m.Err(); err != nil {
			return err
		}
		if m.Finished() {
			cmd.Println("Session complete.")
		}
	}
	return nil
}

// fetchConfig reads the bank layout published by the server.
func fetchConfig(ctx context.Context, client *http.Client, server string) (*api.ConfigResponse, error) {
	url := strings.TrimSuffix(server, "/") + "/api/config"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch server config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch server config: unexpected status %d", resp.StatusCode)
	}

	var cfg api.ConfigResponse
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode server config: %w", err)
	}
	return &cfg, nil
}

// newPlayer builds a controller for the server's bank and the model that
// drives it. The returned renderer must be attached to the running program.
func newPlayer(ctx context.Context, cfg *api.ConfigResponse, loader *asset.HTTPLoader, locale string, timeout time.Duration) (tui.Model, *tui.Renderer) {
	bank := questionbank.New(cfg.BankSize, cfg.QuestionsRoot, cfg.AnswersRoot)
	if cfg.Extension != "" {
		bank.Extension = cfg.Extension
	}
	if locale == "" {
		locale = cfg.Locale
	}
	labels := service.LabelsFor(locale)

	renderer := tui.NewRenderer()
	ctrl := service.NewController(bank, loader, renderer, renderer, service.Options{
		Config:      practicesession.SessionConfig{Size: cfg.SessionSize},
		Labels:      labels,
		LoadTimeout: timeout,
	})

	resolve := func(u string) string {
		if abs, err := loader.Resolve(u); err == nil {
			return abs
		}
		return u
	}
	return tui.NewModel(ctx, ctrl, labels, resolve), renderer
}
