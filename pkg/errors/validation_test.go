package errors

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "task-1", false},
		{"valid uuid", "a2f1c6de-9c1b-4d6f-8a6b-1f2e3d4c5b6a", false},
		{"valid with underscore", "my_node", false},
		{"valid with dot", "ns.node", false},
		{"valid with colon", "ws:42", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateViewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Sprint Board", false},
		{"valid with punctuation", "Q3 Roadmap (draft)", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "board\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "status", false},
		{"valid with underscore", "due_date", false},
		{"valid with hyphen", "story-points", false},
		{"valid leading underscore", "_internal", false},

		{"empty", "", true},
		{"leading digit", "1st", true},
		{"space", "due date", true},
		{"dot", "a.b", true},
		{"too long", string(make([]byte, 129)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "snapshots/sprint.json", false},
		{"valid absolute", "/tmp/board.json", false},

		{"empty", "", true},
		{"traversal", "foo/../bar", true},
		{"null byte", "foo\x00", true},
		{"too long", string(make([]byte, 501)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
