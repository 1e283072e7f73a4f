package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LocalGitClient implements the GitClient interface by executing the
// local git binary installed on the machine.
type LocalGitClient struct {
	logger *zap.Logger
}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client
// that traces through the global zap logger.
func NewLocalGitClient() *LocalGitClient {
	return NewLocalGitClientWithLogger(zap.L())
}

// NewLocalGitClientWithLogger creates a local Git client with an explicit logger.
func NewLocalGitClientWithLogger(logger *zap.Logger) *LocalGitClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalGitClient{logger: logger}
}

// Run executes a git command and returns its standard output.
// The context is forwarded to the child process so cancellation kills it.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, GitExecutable, fullArgs...)

	start := time.Now()
	out, err := cmd.Output()
	c.logger.Debug("git command finished",
		zap.String("repo", repoPath),
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", len(out)),
		zap.Error(err),
	)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git '%s' exit %d: %s: %w", strings.Join(args, " "), exitErr.ExitCode(), stderr, err)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ListObjects implements the ObjectSource interface.
func (c *LocalGitClient) ListObjects(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "rev-list", "--all", "--objects")
}

// ObjectSize implements the ObjectSource interface.
func (c *LocalGitClient) ObjectSize(ctx context.Context, repoPath string, hash string) ([]byte, error) {
	return c.Run(ctx, repoPath, "cat-file", "-s", hash)
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w. If this is not a Git repository, verify the path or run 'git init'", err)
	}
	return strings.TrimSpace(string(out)), nil
}
