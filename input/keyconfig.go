package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"colon":     ':',
	"dot":       '.',
}

// keyByName resolves lowercased tcell key names such as "enter", "pgup" or "ctrl-s"
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		if k == tcell.KeyRune {
			continue
		}
		m[strings.ToLower(name)] = k
	}
	m["esc"] = tcell.KeyEscape
	m["escape"] = tcell.KeyEscape
	return m
}()

// globalSection names the bindings that apply in every mode
const globalSection = "global"

// LoadKeyConfig parses section → key → action bindings into a sparse override KeyTable
// Sections are "global" or a mode name; only present keys are populated
// Returns error on unknown sections, key names or action names
func LoadKeyConfig(bindings map[string]map[string]string) (*KeyTable, error) {
	kt := &KeyTable{Global: map[tcell.Key]KeyEntry{}}

	for section, keys := range bindings {
		section = strings.ToLower(strings.TrimSpace(section))
		if section == globalSection {
			for keyStr, action := range keys {
				k, ok := keyByName[strings.ToLower(keyStr)]
				if !ok {
					return nil, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
				}
				entry, err := resolveAction(action)
				if err != nil {
					return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
				}
				kt.Global[k] = entry
			}
			continue
		}

		mode, ok := ParseMode(section)
		if !ok {
			return nil, fmt.Errorf("unknown keymap section: %q", section)
		}
		for keyStr, action := range keys {
			entry, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
			}
			if k, ok := keyByName[strings.ToLower(keyStr)]; ok && len([]rune(keyStr)) > 1 {
				if kt.Keys[mode] == nil {
					kt.Keys[mode] = map[tcell.Key]KeyEntry{}
				}
				kt.Keys[mode][k] = entry
				continue
			}
			r, err := resolveRune(keyStr)
			if err != nil {
				return nil, fmt.Errorf("[%s] %w", section, err)
			}
			if kt.Runes[mode] == nil {
				kt.Runes[mode] = map[rune]KeyEntry{}
			}
			kt.Runes[mode][r] = entry
		}
	}

	return kt, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid key: %q (expected key name, single character or alias)", s)
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := actionRegistry[name]
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}
