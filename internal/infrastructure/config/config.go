package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	practicesession "github.com/remaimber-it/imagequiz/internal/domain/practice_session"
	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DBPath          string

	// Question bank
	BankSize      int    // N, ids run 1..BankSize
	SessionSize   int    // K, questions per session
	QuestionsRoot string // URL prefix of question images, e.g. "./questions/"
	AnswersRoot   string
	QuestionsDir  string // directory served under QuestionsRoot
	AnswersDir    string
	AssetExt      string

	LoadTimeout  time.Duration
	Locale       string // label set: "en" or "ko"
	AuditWorkers int
}

// Load reads configuration from the environment, after loading a .env file
// if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Malformed numbers and durations are collected and reported together.
	var errs []error
	intVar := func(k string, fallback int) int {
		n, err := getIntDefault(k, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}
	durationVar := func(k string, fallback time.Duration) time.Duration {
		d, err := getDurationDefault(k, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}

	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: durationVar("SHUTDOWN_TIMEOUT", 10*time.Second),
		DBPath:          getenvDefault("DB_PATH", "quiz.db"),
		BankSize:        intVar("BANK_SIZE", questionbank.DefaultSize),
		SessionSize:     intVar("SESSION_SIZE", practicesession.DefaultSize),
		QuestionsRoot:   getenvDefault("QUESTIONS_ROOT", questionbank.DefaultQuestionsRoot),
		AnswersRoot:     getenvDefault("ANSWERS_ROOT", questionbank.DefaultAnswersRoot),
		QuestionsDir:    getenvDefault("QUESTIONS_DIR", "./questions"),
		AnswersDir:      getenvDefault("ANSWERS_DIR", "./answers"),
		AssetExt:        strings.TrimPrefix(getenvDefault("ASSET_EXT", questionbank.DefaultExtension), "."),
		LoadTimeout:     durationVar("LOAD_TIMEOUT", 15*time.Second),
		Locale:          getenvDefault("QUIZ_LOCALE", "en"),
		AuditWorkers:    intVar("AUDIT_WORKERS", 4),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the quiz cannot run with. A session larger
// than the bank is caught here rather than when the first session is drawn.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if err := c.Bank().Validate(); err != nil {
		return err
	}
	if err := c.Session().Validate(c.BankSize); err != nil {
		return err
	}
	if c.QuestionsDir == "" || c.AnswersDir == "" {
		return fmt.Errorf("QUESTIONS_DIR and ANSWERS_DIR cannot be empty")
	}
	if c.AuditWorkers < 1 {
		return fmt.Errorf("AUDIT_WORKERS must be > 0")
	}
	return nil
}

// Bank describes the configured question bank.
func (c *Config) Bank() *questionbank.QuestionBank {
	bank := questionbank.New(c.BankSize, c.QuestionsRoot, c.AnswersRoot)
	bank.Extension = c.AssetExt
	return bank
}

func (c *Config) Session() practicesession.SessionConfig {
	return practicesession.SessionConfig{Size: c.SessionSize}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getIntDefault(k string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid integer", k, v)
	}
	return n, nil
}

func getDurationDefault(k string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration", k, v)
	}
	return d, nil
}
