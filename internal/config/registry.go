package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ActionDescriptions holds the human label of every bindable action.
var ActionDescriptions = map[string]string{
	"new_window":           "New window",
	"close_window":         "Close window",
	"minimize_window":      "Minimize window",
	"restore_all":          "Restore all windows",
	"toggle_maximize":      "Maximize / restore",
	"next_window":          "Next window",
	"prev_window":          "Previous window",
	"tile_window":          "Tile window",
	"float_window":         "Float window",
	"floating_front":       "Floating windows to front",
	"toggle_menu":          "Open menu",
	"toggle_debug_log":     "Toggle debug log",
	"toggle_mouse_capture": "Toggle mouse capture",
	"toggle_help":          "Toggle help",
	"quit":                 "Quit",
}

// KeybindRegistry resolves keys to actions and actions to keys.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry indexes the bindings of cfg. When two actions share a
// key the one in the earlier section wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, section := range cfg.Keybindings.sections() {
		actions := make([]string, 0, len(section.bindings))
		for action := range section.bindings {
			actions = append(actions, action)
		}
		slices.Sort(actions)
		for _, action := range actions {
			keys := section.bindings[action]
			r.actionToKeys[action] = slices.Clone(keys)
			for _, k := range keys {
				for _, variant := range r.normalizer.NormalizeKey(k) {
					if _, taken := r.keyToAction[variant]; !taken {
						r.keyToAction[variant] = action
					}
				}
			}
		}
	}
	return r
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyToAction[key]; ok {
		return action
	}
	for _, variant := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[variant]; ok {
			return action
		}
	}
	return ""
}

// GetKeys returns the keys bound to action as configured.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetKeysForDisplay returns the keys of action formatted for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionToKeys[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

func displayKey(k string) string {
	parts := splitKey(k)
	for i, p := range parts {
		if utf8.RuneCountInString(p) > 1 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer canonicalises key strings so that "Ctrl+A" and "ctrl+a"
// resolve to the same binding.
type KeyNormalizer struct {
	aliases map[string][]string
}

var modifierOrder = []string{"ctrl", "alt", "shift", "super"}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"opt":     "alt",
	"option":  "alt",
	"meta":    "alt",
	"shift":   "shift",
	"super":   "super",
	"cmd":     "super",
	"win":     "super",
}

// NewKeyNormalizer returns a normalizer with the usual key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string][]string{
		"return":   {"enter"},
		"enter":    {"return"},
		"escape":   {"esc"},
		"esc":      {"escape"},
		" ":        {"space"},
		"spacebar": {"space"},
		"del":      {"delete"},
		"pageup":   {"pgup"},
		"pagedown": {"pgdown"},
	}}
}

// splitKey splits on "+" keeping a trailing "+" as the key itself.
func splitKey(k string) []string {
	if k == "+" {
		return []string{"+"}
	}
	if strings.HasSuffix(k, "++") {
		return append(strings.Split(strings.TrimSuffix(k, "++"), "+"), "+")
	}
	return strings.Split(k, "+")
}

// NormalizeKey returns every canonical spelling of key, most specific
// first. Modifiers are lowercased and ordered ctrl, alt, shift, super. An
// uppercase letter also yields its explicit shift form, so "alt+M" matches
// "alt+shift+m".
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	parts := splitKey(key)
	base := parts[len(parts)-1]
	mods := make(map[string]bool)
	for _, p := range parts[:len(parts)-1] {
		if m, ok := modifierAliases[strings.ToLower(p)]; ok {
			mods[m] = true
		}
	}

	single := utf8.RuneCountInString(base) == 1
	if !single || mods["ctrl"] {
		base = strings.ToLower(base)
	}

	variants := []string{join(mods, base)}
	if single {
		r, _ := utf8.DecodeRuneInString(base)
		if unicode.IsUpper(r) {
			shifted := map[string]bool{"shift": true}
			for m := range mods {
				shifted[m] = true
			}
			variants = append(variants, join(shifted, strings.ToLower(base)))
		}
	}
	for _, alias := range n.aliases[base] {
		variants = append(variants, join(mods, alias))
	}
	return variants
}

func join(mods map[string]bool, base string) string {
	var sb strings.Builder
	for _, m := range modifierOrder {
		if mods[m] {
			sb.WriteString(m)
			sb.WriteByte('+')
		}
	}
	sb.WriteString(base)
	return sb.String()
}

// ValidateKey reports whether key is well formed, with a reason when not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	parts := splitKey(key)
	for _, p := range parts[:len(parts)-1] {
		if _, ok := modifierAliases[strings.ToLower(p)]; !ok {
			return false, fmt.Sprintf("unknown modifier %q in %q", p, key)
		}
	}
	if parts[len(parts)-1] == "" {
		return false, fmt.Sprintf("missing key in %q", key)
	}
	return true, ""
}
