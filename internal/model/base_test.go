package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueScan(t *testing.T) {
	in := StringList{"chat", "中文", `quote"d`}
	v, err := in.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan([]byte(`["a"]`)))
	assert.Equal(t, StringList{"a"}, out)
}

func TestStringListEmptyForms(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var out StringList
	for _, src := range []any{nil, "", []byte("null")} {
		require.NoError(t, out.Scan(src))
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}

	assert.Error(t, out.Scan(42))
	assert.Error(t, out.Scan("not json"))

	b, err := json.Marshal(struct {
		Tags StringList `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(b))
}
