package action

import (
	"strings"

	"golang.org/x/sys/windows"
)

const (
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procMouseEvent   = user32.NewProc("mouse_event")
	procGetAsyncKey  = user32.NewProc("GetAsyncKeyState")
)

// MoveCursor moves the OS mouse pointer to the absolute position (x, y).
// Windows implementation using SetCursorPos.
func MoveCursor(x, y int) error {
	r, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if r == 0 {
		return err
	}
	return nil
}

// PressLeft sends a left mouse button down event at the current position.
func PressLeft() error {
	_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
	return nil
}

// ReleaseLeft sends a left mouse button up event at the current position.
func ReleaseLeft() error {
	_, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0)
	return nil
}

// IsKeyPressed reports whether the given virtual key is currently held down.
// Uses the GetAsyncKeyState high bit, so it observes keys pressed while the
// window is unfocused — required for the global start/stop hotkeys.
func IsKeyPressed(vk byte) bool {
	status, _, _ := procGetAsyncKey.Call(uintptr(vk))
	return uint32(status)>>31 == 1
}

// ParseVK converts a key token (e.g. "F1", "R") into a Windows virtual-key
// code. Recognizes F1..F12 and single letters A..Z. Unknown tokens map to
// VK_F1 with ok=false so callers can surface the misconfiguration.
func ParseVK(key string) (vk byte, ok bool) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if len(k) == 2 && k[0] == 'F' { // F1-F9
		n := int(k[1] - '0')
		if n >= 1 && n <= 9 {
			return byte(0x70 + (n - 1)), true // VK_F1=0x70
		}
	}
	if len(k) == 3 && k[0] == 'F' { // F10-F12
		switch k {
		case "F10":
			return 0x79, true
		case "F11":
			return 0x7A, true
		case "F12":
			return 0x7B, true
		}
	}
	if len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z' {
		return k[0], true // 'A'..'Z' match VK codes
	}
	return 0x70, false
}
