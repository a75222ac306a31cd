package moods

import (
	"strings"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("All() returned an empty catalog")
	}
	if all[0].ID != "happy" {
		t.Errorf("first mood = %q, want happy", all[0].ID)
	}

	happy, ok := Lookup("happy")
	if !ok {
		t.Fatal("Lookup(happy) not found")
	}
	if happy.Score != 8 || happy.ImageQuery != "happy joy sunshine" {
		t.Errorf("Lookup(happy) = %+v", happy)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Label = "changed"
	if m, _ := Lookup(all[0].ID); m.Label == "changed" {
		t.Error("mutating All() result changed the catalog")
	}
	if All()[0].Label == "changed" {
		t.Error("mutating All() result changed later results")
	}
}

func TestValidAndPrompt(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		valid  bool
		prompt string
	}{
		{name: "known mood", id: "calm", valid: true, prompt: "What's bringing you peace today?"},
		{name: "unknown mood", id: "meh", valid: false, prompt: DefaultPrompt},
		{name: "empty id", id: "", valid: false, prompt: DefaultPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.id); got != tt.valid {
				t.Errorf("Valid(%q) = %v, want %v", tt.id, got, tt.valid)
			}
			if got := PromptFor(tt.id); got != tt.prompt {
				t.Errorf("PromptFor(%q) = %q, want %q", tt.id, got, tt.prompt)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "valid",
			input: "- {id: a, label: A, score: 5}\n- {id: b, label: B, score: 10}\n",
		},
		{
			name:    "missing label",
			input:   "- {id: a, score: 5}\n",
			wantErr: "id and label are required",
		},
		{
			name:    "score out of range",
			input:   "- {id: a, label: A, score: 11}\n",
			wantErr: "out of range",
		},
		{
			name:    "duplicate id",
			input:   "- {id: a, label: A, score: 5}\n- {id: a, label: B, score: 6}\n",
			wantErr: "duplicate id",
		},
		{
			name:    "not a list",
			input:   "id: a\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
