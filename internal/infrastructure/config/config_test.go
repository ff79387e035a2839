package config_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	practicesession "github.com/remaimber-it/imagequiz/internal/domain/practice_session"
	"github.com/remaimber-it/imagequiz/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BankSize != 114 || cfg.SessionSize != 10 {
		t.Errorf("expected 114/10, got %d/%d", cfg.BankSize, cfg.SessionSize)
	}
	if cfg.QuestionsRoot != "./questions/" || cfg.AnswersRoot != "./answers/" {
		t.Errorf("unexpected roots %q %q", cfg.QuestionsRoot, cfg.AnswersRoot)
	}
	if cfg.LoadTimeout != 15*time.Second {
		t.Errorf("expected 15s load timeout, got %v", cfg.LoadTimeout)
	}
	if cfg.Bank().Extension != "png" {
		t.Errorf("expected png extension, got %q", cfg.Bank().Extension)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_SIZE", "30")
	t.Setenv("SESSION_SIZE", "5")
	t.Setenv("QUESTIONS_ROOT", "/static/q")
	t.Setenv("ASSET_EXT", ".jpg")
	t.Setenv("LOAD_TIMEOUT", "2s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bank := cfg.Bank()
	if bank.Size != 30 {
		t.Errorf("expected bank size 30, got %d", bank.Size)
	}
	if got := bank.Question(4).Path(); got != "/static/q/4.jpg" {
		t.Errorf("expected /static/q/4.jpg, got %q", got)
	}
	if cfg.Session().Size != 5 {
		t.Errorf("expected session size 5, got %d", cfg.Session().Size)
	}
	if cfg.LoadTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.LoadTimeout)
	}
}

func TestLoad_SessionLargerThanBank(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_SIZE", "8")
	t.Setenv("SESSION_SIZE", "10")

	_, err := config.Load()
	if !errors.Is(err, practicesession.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_AuditWorkers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUDIT_WORKERS", "0")

	if _, err := config.Load(); err == nil {
		t.Error("expected error for zero audit workers")
	}
}

func TestLoad_MalformedNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANK_SIZE", "5O")
	t.Setenv("SESSION_SIZE", "2O")
	t.Setenv("LOAD_TIMEOUT", "15")

	cfg, err := config.Load()
	if err == nil {
		t.Fatalf("expected error, got config %+v", cfg)
	}

	for _, want := range []string{
		`BANK_SIZE="5O" is not a valid integer`,
		`SESSION_SIZE="2O" is not a valid integer`,
		`LOAD_TIMEOUT="15" is not a valid duration`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got %v", want, err)
		}
	}
}

func TestLoad_MalformedShutdownTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	if _, err := config.Load(); err == nil {
		t.Error("expected error for malformed SHUTDOWN_TIMEOUT")
	}
}
