package contract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gitbloat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr: ".",
		Limit:       DefaultResultLimit,
		Output:      "text",
		Color:       "yes",
		LogLevel:    "warn",
	}
}

func TestProcessAndValidate(t *testing.T) {
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
		needsMock   bool
	}{
		{
			name:      "valid minimal config",
			mutate:    func(*ConfigRawInput) {},
			needsMock: true,
		},
		{
			name:        "zero limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "negative limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = -5 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "yaml" },
			expectError: "invalid output format",
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: "--output-file is required",
		},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "objects.parquet"
			},
			needsMock: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: "invalid --color value",
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput) { in.LogLevel = "trace" },
			expectError: "invalid log level",
		},
		{
			name:        "negative width",
			mutate:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: "width cannot be negative",
		},
		{
			name:        "invalid history backend",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			expectError: "invalid history backend",
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			expectError: "history-db-connect is required",
		},
		{
			name: "sqlite history",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "SQLite"
			},
			needsMock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGitClient{}
			if tt.needsMock {
				client.On("GetRepoRoot", mock.Anything, workDir).Return("/mock/repo/root", nil)
			}

			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, client, input)

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
			client.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)

	client := &MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, workDir).Return("/repo", nil)

	input := &ConfigRawInput{Limit: 5, Color: "no"}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, client, input))

	assert.Equal(t, 5, cfg.ResultLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.WarnLevel, cfg.LogLevel)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.False(t, cfg.UseColors)
}

func TestProcessAndValidate_FilePathUsesDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	client := &MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, dir).Return(dir, nil)

	input := validInput()
	input.RepoPathStr = file
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, client, input))
	assert.Equal(t, dir, cfg.RepoPath)
	client.AssertExpectations(t)
}

func TestProcessAndValidate_NotARepository(t *testing.T) {
	client := &MockGitClient{}
	client.On("GetRepoRoot", mock.Anything, mock.Anything).Return("", errors.New("not a git repository"))

	err := ProcessAndValidate(context.Background(), &Config{}, client, validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/gitbloat", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/gitbloat", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=gitbloat", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=gitbloat", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDatabaseBackend(t *testing.T) {
	backend, err := ParseDatabaseBackend("")
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, backend)

	backend, err = ParseDatabaseBackend(" PostgreSQL ")
	require.NoError(t, err)
	assert.Equal(t, schema.PostgreSQLBackend, backend)

	_, err = ParseDatabaseBackend("oracle")
	assert.Error(t, err)
}

func TestConfigCloneAndParams(t *testing.T) {
	cfg := &Config{RepoPath: "/repo", ResultLimit: 7, Output: schema.JSONOut, HistoryDBConnect: "secret"}
	clone := cfg.Clone()
	clone.ResultLimit = 3

	assert.Equal(t, 7, cfg.ResultLimit)
	assert.Equal(t, map[string]any{"limit": 7, "output": "json"}, cfg.Params())
	assert.NotContains(t, cfg.Params(), "history-db-connect")
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "gitbloat"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "gitbloat", profile.Prefix)
}
