package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryMappedStringHasBinding(t *testing.T) {
	for str, name := range GlobalKeyStringsMap {
		binding, ok := GlobalkeyBindings[name]
		assert.True(t, ok, "key %q maps to %d which has no binding", str, name)
		assert.NotEmpty(t, binding.Help().Key, "binding for %q has no help key", str)
	}
}

func TestBindingsIncludeMappedKeys(t *testing.T) {
	// Spot-check that the string map and binding definitions agree.
	cases := map[string]KeyName{
		"n":   KeyNew,
		"D":   KeyDelete,
		"s":   KeySignIn,
		"tab": KeyTab,
		"q":   KeyQuit,
	}
	for str, want := range cases {
		assert.Equal(t, want, GlobalKeyStringsMap[str])
		found := false
		for _, k := range GlobalkeyBindings[want].Keys() {
			if k == str {
				found = true
			}
		}
		assert.True(t, found, "binding for %v does not include %q", want, str)
	}
}
