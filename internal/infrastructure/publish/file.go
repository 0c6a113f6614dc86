// Package publish implements digest delivery channels.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
	"techdigest/internal/render"
)

// FilePublisher writes the JSON digest artifact and optionally commits and
// pushes it from a checkout so a static site picks it up.
type FilePublisher struct {
	path    string
	repoDir string
	branch  string
	log     *slog.Logger
}

var _ ports.Publisher = (*FilePublisher)(nil)

// NewFilePublisher configures the artifact path and, when repoDir is
// non-empty, the git checkout to publish from.
func NewFilePublisher(path, repoDir, branch string, logger *slog.Logger) *FilePublisher {
	return &FilePublisher{path: path, repoDir: repoDir, branch: branch, log: logger}
}

func (p *FilePublisher) Name() string {
	return "file"
}

// Publish renders the digest to JSON, writes the artifact and, if a repo is
// configured, commits and pushes it.
func (p *FilePublisher) Publish(ctx context.Context, digest domain.Digest) error {
	payload, err := render.JSON(digest)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	target := p.path
	if p.repoDir != "" && !filepath.IsAbs(target) {
		target = filepath.Join(p.repoDir, target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	p.logInfo("digest written", slog.String("path", target))

	if p.repoDir == "" {
		return nil
	}
	return p.commitAndPush(ctx, digest)
}

func (p *FilePublisher) commitAndPush(ctx context.Context, digest domain.Digest) error {
	message := "Update digest: " + render.Timestamp(digest.GeneratedAt)

	if out, err := p.git(ctx, "add", p.path); err != nil {
		return fmt.Errorf("git add: %w: %s", err, out)
	}

	out, err := p.git(ctx, "commit", "-m", message)
	if err != nil {
		// Nothing staged means the digest did not change since the last run.
		if strings.Contains(out, "nothing to commit") {
			p.logInfo("digest unchanged, skipping push")
			return nil
		}
		return fmt.Errorf("git commit: %w: %s", err, out)
	}

	if out, err := p.git(ctx, "push", "origin", p.branch); err != nil {
		return fmt.Errorf("git push: %w: %s", err, out)
	}
	p.logInfo("digest pushed", slog.String("branch", p.branch))

	return nil
}

func (p *FilePublisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.repoDir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (p *FilePublisher) logInfo(msg string, args ...any) {
	if p.log != nil {
		p.log.Info(msg, args...)
	}
}
