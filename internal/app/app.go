package app

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sgodoy/joblist/internal/config"
	"github.com/sgodoy/joblist/internal/crypto"
	"github.com/sgodoy/joblist/internal/format"
	"github.com/sgodoy/joblist/internal/repository"
	"github.com/sgodoy/joblist/internal/service"
	"github.com/sgodoy/joblist/internal/store"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *store.DB
	Log    zerolog.Logger

	// Shared aggregate state
	Repo  repository.AggregateRepository
	State *service.State

	// Services
	Jobs      service.JobService
	Companies service.CompanyService

	// Presentation helpers
	Format *format.Formatter
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening the document store
// 4. Running migrations
// 5. Loading the aggregate and wiring services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log := newLogger(cfg.Log.Level)

	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	// Open the document store with encryption
	db, err := store.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repository.NewAggregateRepo(db, cfg.Storage.DocumentKey, log)
	state := service.NewState(ctx, repo)

	formatter := format.NewFormatter(format.Locale{
		Tag:            cfg.Locale.Tag,
		CurrencySymbol: cfg.Locale.CurrencySymbol,
		CurrencyCode:   cfg.Locale.CurrencyCode,
		GroupSep:       cfg.Locale.GroupSeparator,
		DecimalSep:     cfg.Locale.DecimalSeparator,
	})

	return &App{
		Config:    cfg,
		DB:        db,
		Log:       log,
		Repo:      repo,
		State:     state,
		Jobs:      service.NewJobService(state),
		Companies: service.NewCompanyService(state),
		Format:    formatter,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// newLogger builds the process logger. Output goes to stderr so it
// never interleaves with table output or the TUI's alt screen.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your job data will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
