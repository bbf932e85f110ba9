// Package gitmeta collects git repository metadata for run reports.
package gitmeta

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Info identifies the source checkout a run was built from. Fields are
// empty when the directory is not a git repository or git is missing.
type Info struct {
	Remote string
	Branch string
	Commit string
}

// Collect gathers the origin remote, current branch, and short commit of
// the repository at dir. Collection is best effort: a failed lookup
// leaves its field empty rather than failing the run, since a report
// without git metadata is still a usable report.
func Collect(ctx context.Context, dir string) Info {
	return Info{
		Remote: gitOutput(ctx, dir, "config", "--get", "remote.origin.url"),
		Branch: gitOutput(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"),
		Commit: gitOutput(ctx, dir, "rev-parse", "--short", "HEAD"),
	}
}

func gitOutput(ctx context.Context, dir string, args ...string) string {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(out.String())
}
