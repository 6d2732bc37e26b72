// Package input maps terminal key events to driver requests
package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/samber/lo"

	"github.com/lixenwraith/smart-road/config"
	"github.com/lixenwraith/smart-road/engine"
	"github.com/lixenwraith/smart-road/traffic"
)

// Rune aliases for keys that can't be written as a bare character
var runeAliases = map[string]rune{
	"space": ' ',
}

// keysByName resolves lowercase tcell key names ("up", "esc", "f1")
var keysByName = lo.MapEntries(tcell.KeyNames, func(k tcell.Key, name string) (string, tcell.Key) {
	return strings.ToLower(name), k
})

// KeyTable binds special keys and runes to requests
type KeyTable struct {
	Special map[tcell.Key]engine.Request
	Runes   map[rune]engine.Request
}

// LoadKeyTable builds a table from configured key names
// Returns error on unknown key names or two actions bound to one key
func LoadKeyTable(ks config.KeySettings) (*KeyTable, error) {
	kt := &KeyTable{
		Special: make(map[tcell.Key]engine.Request),
		Runes:   make(map[rune]engine.Request),
	}

	bindings := []struct {
		action string
		key    string
		req    engine.Request
	}{
		{"north", ks.North, engine.Spawn(traffic.North)},
		{"south", ks.South, engine.Spawn(traffic.South)},
		{"east", ks.East, engine.Spawn(traffic.East)},
		{"west", ks.West, engine.Spawn(traffic.West)},
		{"random", ks.Random, engine.Request{Kind: engine.RequestSpawnRandom}},
		{"quit", ks.Quit, engine.Request{Kind: engine.RequestQuit}},
	}

	for _, b := range bindings {
		if b.key == "" {
			continue
		}
		if err := kt.bind(b.key, b.req); err != nil {
			return nil, fmt.Errorf("[keys] %s: %w", b.action, err)
		}
	}

	// Ctrl-C always quits so a bad keymap cannot trap the terminal
	kt.Special[tcell.KeyCtrlC] = engine.Request{Kind: engine.RequestQuit}
	return kt, nil
}

func (kt *KeyTable) bind(name string, req engine.Request) error {
	if r, ok := resolveRune(name); ok {
		if _, dup := kt.Runes[r]; dup {
			return fmt.Errorf("key %q bound twice", name)
		}
		kt.Runes[r] = req
		return nil
	}

	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown key name: %q", name)
	}
	if _, dup := kt.Special[k]; dup {
		return fmt.Errorf("key %q bound twice", name)
	}
	kt.Special[k] = req
	return nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// Map translates a key event into a request
func (kt *KeyTable) Map(ev *tcell.EventKey) (engine.Request, bool) {
	if ev.Key() == tcell.KeyRune {
		req, ok := kt.Runes[ev.Rune()]
		return req, ok
	}
	req, ok := kt.Special[ev.Key()]
	return req, ok
}
