package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/vaultpress/internal/apperr"
	"github.com/starford/vaultpress/internal/models"
)

// KeepFile is never removed by Purge.
const KeepFile = ".gitkeep"

// Purge deletes every file below target except KeepFile markers, leaving the
// directory tree itself in place. target must be strictly inside projectRoot;
// otherwise nothing is touched and an error wrapping apperr.ErrUnsafePurge is
// returned. Deletion is best effort: a failure stops the walk and files
// already removed stay removed.
func Purge(projectRoot, target string) (*models.PurgeResult, error) {
	dir, err := purgeTarget(projectRoot, target)
	if err != nil {
		return nil, err
	}
	res := &models.PurgeResult{}
	if err := purgeDir(dir, res); err != nil {
		return res, err
	}
	return res, nil
}

// CheckPurge reports whether Purge would accept target without deleting
// anything.
func CheckPurge(projectRoot, target string) error {
	_, err := purgeTarget(projectRoot, target)
	return err
}

// purgeTarget resolves target and checks that it is a strict descendant of
// projectRoot.
func purgeTarget(projectRoot, target string) (string, error) {
	root, err := resolve(projectRoot)
	if err != nil {
		return "", fmt.Errorf("%w: resolve project root: %v", apperr.ErrUnsafePurge, err)
	}
	dir, err := resolve(target)
	if err != nil {
		return "", fmt.Errorf("%w: resolve target: %v", apperr.ErrUnsafePurge, err)
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) ||
		strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s is not inside project %s", apperr.ErrUnsafePurge, dir, root)
	}
	return dir, nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// purgeDir walks depth first. Symlinks are removed as files and never
// followed.
func purgeDir(dir string, res *models.PurgeResult) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("storage: purge %s: %w", dir, err)
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := purgeDir(full, res); err != nil {
				return err
			}
			res.DirectoriesProcessed = append(res.DirectoriesProcessed, full)
			continue
		}
		if e.Name() == KeepFile {
			continue
		}
		if err := os.Remove(full); err != nil {
			return fmt.Errorf("storage: purge %s: %w", full, err)
		}
		res.FilesDeleted++
	}
	return nil
}
