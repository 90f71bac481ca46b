package preflight

import "path/filepath"

func parentDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}
