//go:build windows

package syscfg

import (
	"github.com/itchio/wharf/state"
	"golang.org/x/sys/windows/registry"
)

func queryRegistry(consumer *state.Consumer, keyPath string, valueName string) (string, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if err != registry.ErrNotExist {
			consumer.Debugf("opening registry key %s: %s", keyPath, err.Error())
		}
		return "", false
	}
	defer key.Close()

	value, _, err := key.GetStringValue(valueName)
	if err != nil {
		if err != registry.ErrNotExist {
			consumer.Debugf("reading registry value %s\\%s: %s", keyPath, valueName, err.Error())
		}
		return "", false
	}

	return value, true
}
