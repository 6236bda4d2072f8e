package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name: "toml",
			file: "bytevm.toml",
			content: `
[log]
level = "debug"
development = true

[api]
listener_addr = "127.0.0.1:9000"
`,
			want: Config{
				Log: LogConfig{Level: "debug", Development: true},
				API: APIConfig{ListenerAddr: "127.0.0.1:9000"},
			},
		},
		{
			name: "yaml",
			file: "bytevm.yaml",
			content: `
log:
  level: warn
api:
  listener_addr: ":8080"
`,
			want: Config{
				Log: LogConfig{Level: "warn"},
				API: APIConfig{ListenerAddr: ":8080"},
			},
		},
		{
			name:    "partial keeps defaults",
			file:    "bytevm.yml",
			content: "log:\n  development: true\n",
			want: Config{
				Log: LogConfig{Level: "info", Development: true},
				API: APIConfig{ListenerAddr: DefaultListenerAddr},
			},
		},
		{
			name:    "bad level",
			file:    "bytevm.toml",
			content: "[log]\nlevel = \"loud\"\n",
			wantErr: true,
		},
		{
			name:    "bad toml",
			file:    "bytevm.toml",
			content: "[log\n",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "bytevm.json",
			content: "{}",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogConfig_NewLogger(t *testing.T) {
	l, err := LogConfig{Level: "debug", Development: true}.NewLogger()
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = LogConfig{Level: "error"}.NewLogger()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = LogConfig{Level: "loud"}.NewLogger()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
