package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriStateJSON(t *testing.T) {
	cases := []struct {
		state TriState
		json  string
	}{
		{TriTrue, "true"},
		{TriFalse, "false"},
		{TriUnknown, `"UNKNOWN"`},
	}
	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			b, err := json.Marshal(tc.state)
			require.NoError(t, err)
			assert.Equal(t, tc.json, string(b))

			var back TriState
			require.NoError(t, json.Unmarshal([]byte(tc.json), &back))
			assert.Equal(t, tc.state, back)
		})
	}
}

func TestTriStateRejectsOtherStrings(t *testing.T) {
	var ts TriState
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTriStateBool(t *testing.T) {
	v, known := TriTrue.Bool()
	assert.True(t, v)
	assert.True(t, known)

	v, known = TriFalse.Bool()
	assert.False(t, v)
	assert.True(t, known)

	_, known = TriUnknown.Bool()
	assert.False(t, known)
}

func TestTriStateZeroValueIsUnknown(t *testing.T) {
	var ts TriState
	assert.Equal(t, TriUnknown, ts)
	assert.Equal(t, "UNKNOWN", ts.String())
}
