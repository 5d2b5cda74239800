package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	log "github.com/sirupsen/logrus"
)

// isGitURL checks if the scan target looks like a Git repository URL
// rather than a local path.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones a repository into a temporary directory and
// returns its path. The caller removes the directory when done.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "ctxsweep-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	log.Infof("cloning %s into %s", url, tempDir)

	// Shallow, single-branch: the scan only needs the checkout, not
	// the history. Progress goes to stderr so report output stays
	// clean when piped.
	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stderr,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	return tempDir, nil
}
