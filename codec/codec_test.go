package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	require.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	require.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	require.False(t, ok)
}

func TestCodecs_RoundTrip(t *testing.T) {
	value := map[string]any{
		"_id":    "doc-1",
		"name":   "flat white",
		"price":  4.5,
		"vegan":  false,
		"badges": []any{"hot", "small"},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(value)
			require.NoError(t, err)
			require.NotContains(t, string(data), "\n")

			var got map[string]any
			require.NoError(t, c.Unmarshal(data, &got))
			require.Equal(t, value, got)
		})
	}
}

func TestCodecs_Interchangeable(t *testing.T) {
	value := map[string]any{"_id": "x", "n": 1.25}

	data := MustMarshal(GoJSON{}, value)
	var got map[string]any
	require.NoError(t, JSON{}.Unmarshal(data, &got))
	require.Equal(t, value, got)
}
