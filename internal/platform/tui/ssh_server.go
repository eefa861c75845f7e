package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/kirilian/tui-advent/internal/adventures"
	"github.com/kirilian/tui-advent/internal/config"
	"github.com/kirilian/tui-advent/internal/datafile"
	"github.com/kirilian/tui-advent/internal/engine"
	"github.com/kirilian/tui-advent/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.advent/host_key.
	HostKeyPath string

	// Adventure is the bundled ID or data file path to serve.
	Adventure string

	// DBPath is the path to the session history database.
	DBPath string

	// SaveDir is where per-user save files go. Empty disables saving.
	SaveDir string

	// Seed forces a fixed RNG seed for every connection; 0 is random.
	Seed int64

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		Adventure:   "demo",
		DBPath:      "~/.advent/sessions.db",
		SaveDir:     "~/.advent/saves",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that serves one adventure.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	adventureID string
	title       string
	data        string
}

// NewSSHServer creates a new SSH server with the given configuration.
// The adventure data file is loaded once up front to fail fast; each
// connection still parses its own copy because item locations are live
// program state.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "advent-ssh",
	})

	cfg.SaveDir = config.ExpandHome(cfg.SaveDir)

	id, data, err := adventures.Open(cfg.Adventure)
	if err != nil {
		return nil, err
	}
	if _, err := datafile.Load(data); err != nil {
		return nil, fmt.Errorf("adventure %q does not parse: %w", cfg.Adventure, err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		logger:      logger,
		adventureID: id,
		title:       adventures.Title(id),
		data:        data,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".advent", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	prog, err := datafile.Load(s.data)
	if err != nil {
		s.logger.Error("adventure parse failed", "error", err)
		return nil, nil
	}

	session := NewSession(s.userSavePath(sshSession.User()))
	eng := engine.New(prog, session, engine.Options{Seed: s.config.Seed})
	session.Bind(eng)
	eng.Begin()

	model := NewModel(session, eng, s.store, s.adventureID, s.title)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// userSavePath derives a per-user save file path, or "" when saving is
// disabled.
func (s *SSHServer) userSavePath(user string) string {
	if s.config.SaveDir == "" || user == "" {
		return ""
	}
	name := fmt.Sprintf("%s-%s.yaml", user, s.adventureID)
	return filepath.Join(s.config.SaveDir, name)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server",
		"address", s.config.Address,
		"adventure", s.adventureID,
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
