package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "mark"},
		{"DisplayName", DisplayName(), "Mark"},
		{"HomeDir", HomeDir(), ".mark"},
		{"ControlDir", ControlDir(), ".mark"},
		{"EnvPrefix", EnvPrefix(), "MARK"},
		{"GoModule", GoModule(), "github.com/mark-labs/mark"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("home"); got != "MARK_HOME" {
		t.Errorf("EnvVar(home) = %q, want %q", got, "MARK_HOME")
	}
}
