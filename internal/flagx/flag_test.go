package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "http://localhost"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-a", "x"},
			names: []string{"config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "names may be given with dashes",
			args:  []string{"-d", "en"},
			names: []string{"-d"},
			want:  []string{"-d", "en"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag at end without value kept",
			args:  []string{"-t"},
			names: []string{"t"},
			want:  []string{"-t"},
		},
		{
			name:  "next dash token is not a value",
			args:  []string{"-c", "-d", "en"},
			names: []string{"c", "d"},
			want:  []string{"-c", "-d", "en"},
		},
		{
			name:  "lone dash is not a flag",
			args:  []string{"-", "-a", "u"},
			names: []string{"a"},
			want:  []string{"-a", "u"},
		},
		{
			name:  "empty args",
			args:  nil,
			names: []string{"a"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", "http://x", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"--config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-d", "en"}))
	assert.Equal(t, "", ConfigPath(nil))
}
