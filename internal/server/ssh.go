// Package server serves termwm over SSH. Every session gets its own window
// manager; nothing is shared between sessions except the theme.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/termwm/internal/app"
	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/input"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// Config is used for every session; nil loads the user config once
	// at startup.
	Config *config.UserConfig
}

// DefaultHostKeyPath returns ~/.ssh/termwm_host_key.
func DefaultHostKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "termwm_host_key"), nil
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		var err error
		if hostKeyPath, err = DefaultHostKeyPath(); err != nil {
			return err
		}
	}

	userConfig := cfg.Config
	if userConfig == nil {
		var err error
		if userConfig, err = config.LoadUserConfig(); err != nil {
			log.Warn("failed to load config, using defaults", "err", err)
			userConfig = config.DefaultConfig()
		}
	}

	app.SetInputHandler(input.HandleInput)

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(userConfig)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// teaHandler creates an independent OS for each SSH session.
func teaHandler(userConfig *config.UserConfig) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "termwm requires a PTY; connect with ssh -t")
			return nil, nil
		}

		env := append(sess.Environ(), "TERM="+pty.Term)
		id := uuid.New().String()
		o := app.NewOS(userConfig, app.Options{
			SessionID: id,
			Host:      app.DetectHostCapabilitiesFrom(app.Lookup(env)),
		})
		o.Width, o.Height = pty.Window.Width, pty.Window.Height
		log.Info("session started", "id", id[:8], "user", sess.User(), "size", fmt.Sprintf("%dx%d", o.Width, o.Height))

		return o, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
		}
	}
}
