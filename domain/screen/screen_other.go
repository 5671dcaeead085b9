//go:build !windows

package screen

import "errors"

// resolve has no non-Windows implementation; the probe reports an error so
// the Provider surfaces it on first use.
func resolve() (Geometry, error) {
	return Geometry{}, errors.New("screen: display resolution probe not implemented on this platform")
}
