//go:build !windows

package syscfg

import "github.com/itchio/wharf/state"

// Only Windows has a registry: everywhere else the capability reports
// not-found instead of branching on platform name in the locator.
func queryRegistry(consumer *state.Consumer, keyPath string, valueName string) (string, bool) {
	return "", false
}
