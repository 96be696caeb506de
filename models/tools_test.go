package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Tools
		want Tools
	}{
		{name: "nil", in: nil, want: Tools{}},
		{name: "trims and drops empty", in: Tools{" SQL ", "", "  "}, want: Tools{"SQL"}},
		{name: "splits comma entries", in: Tools{"Power BI, DAX", "Excel"}, want: Tools{"Power BI", "DAX", "Excel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ParseTools(got.String()))
		})
	}
}

func TestToolsUnmarshalJSON(t *testing.T) {
	var fromString Tools
	require.NoError(t, json.Unmarshal([]byte(`"SQL, Excel ,"`), &fromString))
	assert.Equal(t, Tools{"SQL", "Excel"}, fromString)

	var fromList Tools
	require.NoError(t, json.Unmarshal([]byte(`["Power BI, DAX", " Excel "]`), &fromList))
	assert.Equal(t, Tools{"Power BI", "DAX", "Excel"}, fromList)

	var fromNull Tools
	require.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	assert.Equal(t, Tools{}, fromNull)
}
