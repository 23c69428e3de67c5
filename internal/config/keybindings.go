package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// ActionGroup lists the actions of one config section in display order.
type ActionGroup struct {
	Title   string
	Actions []string
}

// ActionGroups is the display order used by help and `keybinds list`.
var ActionGroups = []ActionGroup{
	{
		Title: "Window Management",
		Actions: []string{
			"new_window", "close_window", "minimize_window", "restore_all",
			"toggle_maximize", "next_window", "prev_window",
		},
	},
	{
		Title:   "Layout",
		Actions: []string{"tile_window", "float_window", "floating_front"},
	},
	{
		Title: "System",
		Actions: []string{
			"toggle_menu", "toggle_debug_log", "toggle_mouse_capture",
			"toggle_help", "quit",
		},
	},
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil the defaults are shown.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}
	var sections []KeybindingSection
	for _, g := range ActionGroups {
		section := KeybindingSection{Title: g.Title}
		for _, action := range g.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns the mouse and menu help that is not
// configurable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "Focus",
			Bindings: []Keybinding{
				{"Tab / Shift+Tab", "Cycle focus"},
				{"Click", "Focus and raise window"},
			},
		},
		{
			Title: "Mouse",
			Bindings: []Keybinding{
				{"Drag title", "Move window"},
				{"Drag to edge", "Snap into layout"},
				{"Drag onto tile", "Split beside tile"},
				{"Double-click title", "Maximize / restore"},
				{"Drag border", "Resize floating window"},
				{"Drag gap", "Resize split"},
				{"_ □ ×", "Minimize, maximize, close"},
			},
		},
		{
			Title: "Menu",
			Bindings: []Keybinding{
				{"Esc", "Open / close the menu"},
				{"Esc Esc", "Close the menu and send Esc to the window"},
				{"↑/↓, j/k", "Select"},
				{"Enter", "Activate"},
				{"n", "New window"},
			},
		},
	}
}
