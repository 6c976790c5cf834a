// Package ui contains types for decoded input events.
package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Key represents a single decoded key press: the logical key and the
// modifiers held with it.
type Key struct {
	// Name is either a single character, like "a" or ":", or the name of a
	// special key, like "Enter" or "ArrowUp". The space bar is " ".
	Name string
	Mod  Mod
}

// K constructs a new Key.
func K(name string, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{name, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. Characters typed with shift, like "Z" or
	// ":", usually arrive already shifted, with or without this bit set.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Names of special keys.
const (
	Enter      = "Enter"
	Escape     = "Escape"
	Tab        = "Tab"
	Backspace  = "Backspace"
	Delete     = "Delete"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	Home       = "Home"
	End        = "End"
	Space      = " "
)

// Errors returned by ParseKey.
var (
	ErrBadModifier = errors.New("bad modifier")
	ErrBadKey      = errors.New("bad key")
)

// keyByName maps a lowercased key name to a key name. Aliases are accepted
// for parsing only.
var keyByName = map[string]string{
	"enter": Enter, "return": Enter,
	"escape": Escape, "esc": Escape,
	"tab":       Tab,
	"backspace": Backspace,
	"delete":    Delete, "del": Delete,
	"arrowup": ArrowUp, "up": ArrowUp,
	"arrowdown": ArrowDown, "down": ArrowDown,
	"arrowleft": ArrowLeft, "left": ArrowLeft,
	"arrowright": ArrowRight, "right": ArrowRight,
	"home":  Home,
	"end":   End,
	"space": Space,
}

// modifierByName maps a name to an modifier. It is used for parsing keys where
// the modifier string is first turned to lower case, so that all of C, c,
// CTRL, Ctrl and ctrl can represent the Ctrl modifier.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&Ctrl != 0 {
		sb.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		sb.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		sb.WriteString("Shift-")
	}
	if k.Name == Space {
		sb.WriteString("Space")
	} else {
		sb.WriteString(k.Name)
	}
	return sb.String()
}

// Lower returns the key with its name lowercased.
func (k Key) Lower() Key {
	if k.IsChar() {
		return Key{strings.ToLower(k.Name), k.Mod}
	}
	return k
}

// Bare returns the key without modifiers.
func (k Key) Bare() Key { return Key{k.Name, 0} }

// IsChar reports whether the key produces a single character.
func (k Key) IsChar() bool { return utf8.RuneCountInString(k.Name) == 1 }

// ParseKey parses a key. The syntax is:
//
//	Key = { Mod ('+' | '-') } BareKey
//
//	BareKey = KeyName | SingleRune
//
// Modifier and key names are case-insensitive; a single rune is taken
// literally, so "Ctrl--" is Ctrl with the minus key.
func ParseKey(s string) (Key, error) {
	var k Key
	for utf8.RuneCountInString(s) > 1 {
		i := strings.IndexAny(s[1:], "+-")
		if i == -1 {
			break
		}
		i++
		modname := strings.ToLower(s[:i])
		mod, ok := modifierByName[modname]
		if !ok {
			return Key{}, fmt.Errorf("%w: %s", ErrBadModifier, modname)
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	switch utf8.RuneCountInString(s) {
	case 0:
		return Key{}, fmt.Errorf("%w: missing key name", ErrBadKey)
	case 1:
		k.Name = s
		return k, nil
	}
	if name, ok := keyByName[strings.ToLower(s)]; ok {
		k.Name = name
		return k, nil
	}
	return Key{}, fmt.Errorf("%w: %s", ErrBadKey, s)
}

// Keys implements sort.Interface.
type Keys []Key

func (ks Keys) Len() int      { return len(ks) }
func (ks Keys) Swap(i, j int) { ks[i], ks[j] = ks[j], ks[i] }
func (ks Keys) Less(i, j int) bool {
	return ks[i].Mod < ks[j].Mod ||
		(ks[i].Mod == ks[j].Mod && ks[i].Name < ks[j].Name)
}

// Sort sorts the keys by modifiers, then by name.
func (ks Keys) Sort() { sort.Sort(ks) }
