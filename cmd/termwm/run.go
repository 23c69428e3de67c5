package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/termwm/internal/app"
	"github.com/Gaurav-Gosain/termwm/internal/config"
	"github.com/Gaurav-Gosain/termwm/internal/input"
	"github.com/Gaurav-Gosain/termwm/internal/server"
)

func runLocal(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("termwm needs an interactive terminal; use `termwm ssh` to serve it remotely")
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Set up the input handler to break circular dependency
	app.SetInputHandler(input.HandleInput)

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	o := app.NewOS(userConfig, app.Options{})
	if debugMode {
		o.WM.ToggleDebugWindow()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		o,
		tea.WithFPS(config.NormalFPS),
		tea.WithContext(ctx),
	)

	// Hot reload: the watcher posts into the program's update loop.
	if configPath, err := config.GetConfigPath(); err == nil {
		if err := config.Watch(ctx, configPath, func(msg config.ConfigReloadedMsg) { p.Send(msg) }); err != nil {
			log.Printf("Warning: config changes will not be reloaded: %v", err)
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(ctx context.Context, host, port, keyPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting termwm SSH server on %s:%s", host, port)
	if err := server.StartSSHServer(ctx, &server.SSHServerConfig{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
	}); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
