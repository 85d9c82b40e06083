package radioitems_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildwithgo/radioitems"
)

func TestValuesWithIsCopyOnWrite(t *testing.T) {
	prev := radioitems.Values{"color": "r", "size": 1.0}

	next := prev.With("color", "b")

	require.Equal(t, radioitems.Values{"color": "r", "size": 1.0}, prev)
	require.Equal(t, radioitems.Values{"color": "b", "size": 1.0}, next)
}

func TestValuesWithOnNil(t *testing.T) {
	var v radioitems.Values
	require.Equal(t, radioitems.Values{"k": "v"}, v.With("k", "v"))
}

func TestStrictEqual(t *testing.T) {
	require.True(t, radioitems.StrictEqual("a", "a"))
	require.True(t, radioitems.StrictEqual(2.0, 2.0))
	require.True(t, radioitems.StrictEqual(nil, nil))
	require.False(t, radioitems.StrictEqual("2", 2.0))
	require.False(t, radioitems.StrictEqual(2, 2.0))
	require.False(t, radioitems.StrictEqual(nil, ""))
	require.False(t, radioitems.StrictEqual(map[string]any{}, map[string]any{}))
	require.False(t, radioitems.StrictEqual([]any{1}, []any{1}))
}

func TestStyleCSS(t *testing.T) {
	require.Equal(t, "", radioitems.Style{}.CSS())
	require.Equal(t, "color:red;font-size:12px", radioitems.Style{"fontSize": "12px", "color": "red"}.CSS())
	require.Equal(t, "-webkit-transition:none", radioitems.Style{"WebkitTransition": "none"}.CSS())
	require.Equal(t, "--accent:blue", radioitems.Style{"--accent": "blue"}.CSS())
}
