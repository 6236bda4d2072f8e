package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/krehermann/bytevm/programs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Cleanup(func() {
		configPath, logLevel = "", ""
		runAll, runTrace, listVerbose = false, false, false
	})
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "add",
			args: []string{"run", "add", "--log-level", "error"},
			want: []string{"add", "returned 5", "steps: 4"},
		},
		{
			name: "loop",
			args: []string{"run", "count_to_ten", "--log-level", "error"},
			want: []string{"finished without a value", "i=10"},
		},
		{
			name: "value left on stack",
			args: []string{"run", "leftover", "--log-level", "error"},
			want: []string{"finished without a value, top of stack 7", "stack: [7]"},
		},
		{
			name:    "missing var",
			args:    []string{"run", "missing_var", "--log-level", "error"},
			want:    []string{"undefined variable 'x'"},
			wantErr: true,
		},
		{
			name:    "unknown program",
			args:    []string{"run", "nope", "--log-level", "error"},
			wantErr: true,
		},
		{
			name:    "no program",
			args:    []string{"run"},
			wantErr: true,
		},
		{
			name:    "all",
			args:    []string{"run", "--all", "--log-level", "error"},
			want:    []string{"arith", "returned 4", "sum_to_five", "returned 15"},
			wantErr: true, // missing_var is part of the catalog
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "-v")
	require.NoError(t, err)
	for _, name := range programs.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "JumpIfFalse(2)")
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(func() { configPath, logLevel = "", "" })

	path := filepath.Join(t.TempDir(), "bytevm.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nlistener_addr = \":4000\"\n"), 0o600))

	configPath, logLevel = path, "warn"
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.API.ListenerAddr)
	assert.Equal(t, "warn", cfg.Log.Level)

	logLevel = "nonsense"
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestRunProgram(t *testing.T) {
	e, err := programs.Get("arith")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	ok := runProgram(buf, e, zap.NewNop())
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "returned 4")
	assert.Contains(t, buf.String(), "x=1 y=2")
}
