package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberArgUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{`{"quantityChange": 15}`, 15, true},
		{`{"quantityChange": "15"}`, 15, true},
		{`{"quantityChange": " 7 "}`, 7, true},
		{`{"quantityChange": 0}`, 0, false},
		{`{"quantityChange": -3}`, 0, false},
		{`{"quantityChange": "abc"}`, 0, false},
		{`{"quantityChange": 2.5}`, 0, false},
		{`{"quantityChange": null}`, 0, false},
		{`{"quantityChange": 2147483647}`, 2147483647, true},
		{`{"quantityChange": 2147483648}`, 0, false},
		{`{"quantityChange": "99999999999"}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var req AdjustQuantityRequest
			require.NoError(t, json.Unmarshal([]byte(tc.in), &req))
			got, ok := req.QuantityChange.PositiveInt()
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNumberArgRejectsObjects(t *testing.T) {
	var req AdjustQuantityRequest
	require.Error(t, json.Unmarshal([]byte(`{"quantityChange": {"n": 1}}`), &req))
}

func TestNumberArgParam(t *testing.T) {
	var n NumberArg
	require.NoError(t, n.UnmarshalParam("4"))
	v, ok := n.PositiveInt()
	require.True(t, ok)
	require.Equal(t, 4, v)
}
