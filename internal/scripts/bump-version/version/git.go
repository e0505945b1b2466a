package version

import (
	"fmt"
	"os/exec"
	"strings"
)

// Git represents an implementation of VersionControl interface using Git
type Git struct{}

// NewGit returns a new instance of Git
func NewGit() *Git {
	return &Git{}
}

// Add implements the Add method in the VersionControl interface for git
func (g *Git) Add(filePath string) error {
	return run("git", "add", filePath)
}

// Commit implements the Commit method in the VersionControl interface for git
func (g *Git) Commit(message string) error {
	return run("git", "commit", "-m", message)
}

// Tag implements the Tag method in the VersionControl interface for git
func (g *Git) Tag(version string) error {
	return run("git", "tag", "-m", version, version)
}

// run executes cmd, folding any git output into the returned error
func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()

	if err != nil {
		return fmt.Errorf("%s %s: %s", name, args[0], strings.TrimSpace(string(out)))
	}

	return nil
}
