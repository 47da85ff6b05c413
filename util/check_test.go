package util

import (
	"strings"
	"testing"
)

func TestCheckMessagesJSON(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantErr      bool
		wantEntries  int
		wantFlagged  int
		wantProblems []string
	}{
		{
			name:        "valid",
			data:        "{\n\"hello0\": {\n\t\"message\": \"hallo\"\n},\n\"_83_ave0\": {\n\t\"message\": \"# Save #\"\n}\n}",
			wantEntries: 2,
			wantFlagged: 1,
		},
		{
			name:        "empty object",
			data:        "{}",
			wantEntries: 0,
		},
		{
			name:    "invalid json",
			data:    `{"a0": {"message": "x"`,
			wantErr: true,
		},
		{
			name:    "array",
			data:    `[]`,
			wantErr: true,
		},
		{
			name:         "duplicate key",
			data:         `{"a0":{"message":"x"},"a0":{"message":"y"}}`,
			wantEntries:  2,
			wantProblems: []string{`duplicate key "a0"`},
		},
		{
			name:         "bad key",
			data:         `{"Hello0":{"message":"x"},"hello":{"message":"y"}}`,
			wantEntries:  2,
			wantProblems: []string{`bad key "Hello0"`, `bad key "hello"`},
		},
		{
			name:         "bad value",
			data:         `{"a0":"x","b0":{"message":1},"c0":{}}`,
			wantEntries:  3,
			wantProblems: []string{`key "a0"`, `key "b0"`, `key "c0"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckMessagesJSON([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckMessagesJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if result.Entries != tt.wantEntries {
				t.Errorf("Entries = %d, want %d", result.Entries, tt.wantEntries)
			}
			if result.Flagged != tt.wantFlagged {
				t.Errorf("Flagged = %d, want %d", result.Flagged, tt.wantFlagged)
			}
			if len(result.Problems) != len(tt.wantProblems) {
				t.Fatalf("Problems = %q, want %d problems", result.Problems, len(tt.wantProblems))
			}
			for i, want := range tt.wantProblems {
				if !strings.Contains(result.Problems[i], want) {
					t.Errorf("problem %d: %q does not contain %q", i, result.Problems[i], want)
				}
			}
		})
	}
}
