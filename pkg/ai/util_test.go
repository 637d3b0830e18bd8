package ai

import (
	"testing"
)

func TestUnmarshalFlexible(t *testing.T) {
	type entity struct {
		EntityName string `json:"entity_name"`
		EntityType string `json:"entity_type,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  entity
	}{
		{
			name:  "valid json object",
			input: `{"entity_name":"TRANSFORMER"}`,
			want:  entity{EntityName: "TRANSFORMER"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{entity_name: 'TRANSFORMER'}`,
			want:  entity{EntityName: "TRANSFORMER"},
		},
		{
			name:  "trailing comma",
			input: `{"entity_name":"TRANSFORMER",}`,
			want:  entity{EntityName: "TRANSFORMER"},
		},
		{
			name:  "missing endbracket",
			input: `{"entity_name":"TRANSFORMER`,
			want:  entity{EntityName: "TRANSFORMER"},
		},
		{
			name:  "stringified json object",
			input: `"{\"entity_name\": \"TRANSFORMER\"}"`,
			want:  entity{EntityName: "TRANSFORMER"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"entity_name\": \"TRANSFORMER\"\n}\n",
			want:  entity{EntityName: "TRANSFORMER"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got entity
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	type response struct {
		Entities []string `json:"entities"`
	}

	schema := GenerateSchema(&response{})
	if schema == nil {
		t.Fatal("GenerateSchema returned nil")
	}
}
