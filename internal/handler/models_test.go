package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body     string
		expected Amount
	}{
		{`{"amount": "0.10", "account": "0xA"}`, "0.10"},
		{`{"amount": 0.1, "account": "0xA"}`, "0.1"},
		{`{"amount": 2, "account": "0xA"}`, "2"},
		{`{"amount": 1e-3, "account": "0xA"}`, "0.001"},
		{`{"amount": -1, "account": "0xA"}`, "-1"},
		{`{"amount": null, "account": "0xA"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req ContributeRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.expected, req.Amount)
		})
	}
}

func TestAmount_UnmarshalJSON_Invalid(t *testing.T) {
	var req ContributeRequest
	assert.Error(t, json.Unmarshal([]byte(`{"amount": true}`), &req))
}
