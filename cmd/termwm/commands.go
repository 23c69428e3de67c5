package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/termwm/internal/config"
)

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor picks $EDITOR, $VISUAL, then the first common editor on PATH.
func findEditor(getenv func(string) string, lookPath func(string) (string, error)) string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if e := getenv(name); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := lookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// LoadConfigFile writes the defaults when the file is missing.
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
	}
	if _, err := config.LoadConfigFile(configPath); err != nil && !errors.Is(err, config.ErrInvalidConfig) {
		return fmt.Errorf("could not create config file: %w", err)
	}

	editor := findEditor(os.Getenv, exec.LookPath)
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(in io.Reader, out io.Writer, assumeYes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !assumeYes {
		fmt.Fprintf(out, "Warning: This will overwrite your existing configuration at:\n")
		fmt.Fprintf(out, "  %s\n\n", configPath)
		fmt.Fprintf(out, "Are you sure you want to reset to defaults? (yes/no): ")
		if !confirmed(in) {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.SaveConfigFile(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration reset to defaults\n")
	fmt.Fprintf(out, "  Location: %s\n", configPath)
	fmt.Fprintln(out, "\nYou can customize it with: termwm config edit")
	return nil
}

func confirmed(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}

// loadConfigOrDefaults loads the user config for the read-only commands.
func loadConfigOrDefaults() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		return config.DefaultConfig()
	}
	return userConfig
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings(out io.Writer) error {
	registry := config.NewKeybindRegistry(loadConfigOrDefaults())
	printKeybindingsTable(out, registry)
	return nil
}

// keybindingRows returns the [keys, description] rows of one action group,
// skipping unbound actions.
func keybindingRows(registry *config.KeybindRegistry, group config.ActionGroup) [][]string {
	var rows [][]string
	for _, action := range group.Actions {
		keys := registry.GetKeys(action)
		if len(keys) == 0 {
			continue
		}
		desc := config.ActionDescriptions[action]
		if desc == "" {
			desc = action
		}
		rows = append(rows, []string{strings.Join(keys, ", "), desc})
	}
	return rows
}

// printKeybindingsTable prints keybindings in a pretty table format
func printKeybindingsTable(out io.Writer, registry *config.KeybindRegistry) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	fmt.Fprintln(out)
	fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("termwm Keybindings"))
	fmt.Fprintln(out)

	for _, group := range config.ActionGroups {
		rows := keybindingRows(registry, group)
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(group.Title))
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out)
	}

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Esc opens the menu. Tab / Shift+Tab cycle focus. These are not configurable.")
	fmt.Fprintln(out, note)
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations compares every action's keys against the defaults.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	user := config.NewKeybindRegistry(userCfg)
	defaults := config.NewKeybindRegistry(defaultCfg)

	var customizations []Customization
	for _, group := range config.ActionGroups {
		for _, action := range group.Actions {
			defaultKeys := defaults.GetKeys(action)
			customKeys := user.GetKeys(action)
			if slices.Equal(defaultKeys, customKeys) {
				continue
			}
			custom := strings.Join(customKeys, ", ")
			if custom == "" {
				custom = "(unbound)"
			}
			customizations = append(customizations, Customization{
				Action:      action,
				DefaultKeys: strings.Join(defaultKeys, ", "),
				CustomKeys:  custom,
			})
		}
	}
	return customizations
}

// listCustomKeybindings prints only the keybindings that differ from defaults
func listCustomKeybindings(out io.Writer) error {
	customizations := findCustomizations(loadConfigOrDefaults(), config.DefaultConfig())

	if len(customizations) == 0 {
		fmt.Fprintln(out, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("No custom keybindings configured. All keybindings are using defaults."))
		return nil
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	rows := make([][]string, 0, len(customizations))
	for _, custom := range customizations {
		rows = append(rows, []string{
			formatActionName(custom.Action),
			custom.DefaultKeys,
			custom.CustomKeys,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Action", "Default", "Custom").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(out)
	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out)
	fmt.Fprintln(out, lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	return nil
}

// formatActionName turns "new_window" into "New Window".
func formatActionName(action string) string {
	words := strings.Split(action, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
