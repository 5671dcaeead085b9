//go:build windows

package screen

import (
	"github.com/vova616/screenshot"
	"golang.org/x/sys/windows"
)

// resolve queries the primary display resolution. The screenshot library's
// device-caps query is preferred; GetSystemMetrics is the fallback when the
// display DC cannot be acquired.
func resolve() (Geometry, error) {
	if r, err := screenshot.ScreenRect(); err == nil && r.Dx() > 0 && r.Dy() > 0 {
		return Geometry{Width: r.Dx(), Height: r.Dy()}, nil
	}
	user32 := windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics := user32.NewProc("GetSystemMetrics")
	cx, _, _ := getSystemMetrics.Call(uintptr(0)) // SM_CXSCREEN
	cy, _, _ := getSystemMetrics.Call(uintptr(1)) // SM_CYSCREEN
	return Geometry{Width: int(cx), Height: int(cy)}, nil
}
