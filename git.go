package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"
)

// isGitURL checks if the input string looks like a Git repository URL.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones url into a temporary directory and returns its path
// together with a function removing it.
func cloneGitRepo(url string, progress io.Writer, log logrus.FieldLogger) (string, func(), error) {
	tempDir, err := os.MkdirTemp("", "totalsize-git-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	cleanup := func() {
		log.WithField("dir", tempDir).Debug("removing clone")
		_ = os.RemoveAll(tempDir)
	}

	log.WithFields(logrus.Fields{"url": url, "dir": tempDir}).Info("cloning repository")

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	return tempDir, cleanup, nil
}
