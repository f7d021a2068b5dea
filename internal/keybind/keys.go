// Package keybind parses, formats and persists the recenter key.
package keybind

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownKey is returned for key names that cannot be parsed.
var ErrUnknownKey = errors.New("unknown key")

// Virtual-key codes not derivable from letters, digits or function keys.
const (
	vkF1      uint32 = 0x70
	vkNumpad0 uint32 = 0x60
	maxFKey          = 24
)

// mouseButtons are the VK_*BUTTON codes, rejected in hex form as well.
var mouseButtons = map[uint32]bool{0x01: true, 0x02: true, 0x04: true, 0x05: true, 0x06: true}

// named maps lowercase key names to virtual-key codes. Only keyboard keys are
// listed: the recenter binding is observed by a keyboard hook, which never sees
// mouse buttons.
var named = map[string]uint32{
	"backspace":  0x08,
	"tab":        0x09,
	"enter":      0x0D,
	"return":     0x0D,
	"shift":      0x10,
	"ctrl":       0x11,
	"control":    0x11,
	"alt":        0x12,
	"menu":       0x12,
	"pause":      0x13,
	"capslock":   0x14,
	"escape":     0x1B,
	"esc":        0x1B,
	"space":      0x20,
	"pageup":     0x21,
	"pagedown":   0x22,
	"end":        0x23,
	"home":       0x24,
	"left":       0x25,
	"up":         0x26,
	"right":      0x27,
	"down":       0x28,
	"insert":     0x2D,
	"delete":     0x2E,
	"del":        0x2E,
	"multiply":   0x6A,
	"add":        0x6B,
	"subtract":   0x6D,
	"decimal":    0x6E,
	"divide":     0x6F,
	"lshift":     0xA0,
	"rshift":     0xA1,
	"lctrl":      0xA2,
	"rctrl":      0xA3,
	"lalt":       0xA4,
	"ralt":       0xA5,
	"semicolon":  0xBA,
	"equals":     0xBB,
	"plus":       0xBB,
	"comma":      0xBC,
	"minus":      0xBD,
	"period":     0xBE,
	"slash":      0xBF,
	"tilde":      0xC0,
	"backquote":  0xC0,
	"lbracket":   0xDB,
	"backslash":  0xDC,
	"rbracket":   0xDD,
	"quote":      0xDE,
	"apostrophe": 0xDE,
}

// canonical lists the preferred name for each code in named.
var canonical = map[uint32]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0D: "Enter",
	0x10: "Shift",
	0x11: "Ctrl",
	0x12: "Alt",
	0x13: "Pause",
	0x14: "CapsLock",
	0x1B: "Escape",
	0x20: "Space",
	0x21: "PageUp",
	0x22: "PageDown",
	0x23: "End",
	0x24: "Home",
	0x25: "Left",
	0x26: "Up",
	0x27: "Right",
	0x28: "Down",
	0x2D: "Insert",
	0x2E: "Delete",
	0x6A: "Multiply",
	0x6B: "Add",
	0x6D: "Subtract",
	0x6E: "Decimal",
	0x6F: "Divide",
	0xA0: "LShift",
	0xA1: "RShift",
	0xA2: "LCtrl",
	0xA3: "RCtrl",
	0xA4: "LAlt",
	0xA5: "RAlt",
	0xBA: "Semicolon",
	0xBB: "Equals",
	0xBC: "Comma",
	0xBD: "Minus",
	0xBE: "Period",
	0xBF: "Slash",
	0xC0: "Tilde",
	0xDB: "LBracket",
	0xDC: "Backslash",
	0xDD: "RBracket",
	0xDE: "Quote",
}

// Parse converts a key name to a virtual-key code. Accepted forms: a single
// letter or digit, F1..F24, Numpad0..Numpad9, a named key, or a hex code (0x45).
// Mouse buttons are rejected in every form.
func Parse(s string) (uint32, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, errors.Wrap(ErrUnknownKey, "empty key name")
	}
	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return uint32(c), nil
		}
	}
	if vk, ok := named[key]; ok {
		return vk, nil
	}
	if rest, ok := strings.CutPrefix(key, "numpad"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n <= 9 && len(rest) == 1 {
			return vkNumpad0 + uint32(n), nil
		}
	}
	if rest, ok := strings.CutPrefix(key, "f"); ok && rest != "" {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= maxFKey {
			return vkF1 + uint32(n-1), nil
		}
	}
	if rest, ok := strings.CutPrefix(key, "0x"); ok {
		n, err := strconv.ParseUint(rest, 16, 8)
		if err == nil && n > 0 && !mouseButtons[uint32(n)] {
			return uint32(n), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKey, "%q", strings.TrimSpace(s))
}

// Name formats a virtual-key code so that Parse(Name(vk)) == vk.
func Name(vk uint32) string {
	switch {
	case vk >= 'A' && vk <= 'Z', vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= vkF1 && vk < vkF1+maxFKey:
		return fmt.Sprintf("F%d", vk-vkF1+1)
	case vk >= vkNumpad0 && vk <= vkNumpad0+9:
		return fmt.Sprintf("Numpad%d", vk-vkNumpad0)
	}
	if name, ok := canonical[vk]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", vk)
}

// Names returns every accepted key name, grouped for display.
func Names() []string {
	out := make([]string, 0, 26+10+maxFKey+10+len(named))
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		out = append(out, string(c))
	}
	for n := 1; n <= maxFKey; n++ {
		out = append(out, fmt.Sprintf("F%d", n))
	}
	for n := 0; n <= 9; n++ {
		out = append(out, fmt.Sprintf("Numpad%d", n))
	}
	rest := make([]string, 0, len(named))
	for name := range named {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
