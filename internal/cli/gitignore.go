package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntry appends dir, relative to repoRoot, to .gitignore unless an
// equivalent line is already present.
func addGitignoreEntry(repoRoot, dir string) (bool, error) {
	entry, err := normalizeGitignorePath(repoRoot, dir)
	if err != nil {
		return false, err
	}
	if entry == "" {
		return false, fmt.Errorf("gitignore entry is empty")
	}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(existing), "\n") {
		line = strings.TrimSpace(line)
		if line == entry || strings.TrimSuffix(line, "/") == strings.TrimSuffix(entry, "/") {
			return false, nil
		}
	}

	updated := string(existing)
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// normalizeGitignorePath renders dir as a repo-relative directory pattern.
func normalizeGitignorePath(repoRoot, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("directory is required")
	}
	clean := filepath.Clean(dir)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve directory: %w", err)
		}
		clean = rel
	}
	clean = strings.TrimPrefix(clean, "."+string(filepath.Separator))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("directory %q is outside the repo root", dir)
	}
	return filepath.ToSlash(clean) + "/", nil
}
