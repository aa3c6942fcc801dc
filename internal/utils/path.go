package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates the chewing binary's config and dictionary files
// across platforms, falling back through a list of writable candidates
// when the preferred location is unavailable.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver determines the executable location and the
// platform-appropriate config directory.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	configDir := getConfigDir(homeDir)

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      configDir,
	}
	log.Debugf("path resolver initialized: exec=%s, execDir=%s, configDir=%s", execPath, execDir, configDir)
	return pr, nil
}

func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "chewing")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "chewing")
		}
		return filepath.Join(homeDir, ".config", "chewing")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "chewing")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "chewing")
	default:
		return filepath.Join(homeDir, ".chewing")
	}
}

// GetDictDir resolves the directory holding *.trie dictionary files,
// trying the user-specified path, then locations relative to the
// executable, then the working directory.
func (pr *PathResolver) GetDictDir(userSpecifiedPath string) (string, error) {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	execRelative := filepath.Join(pr.executableDir, userSpecifiedPath)
	candidates = append(candidates, execRelative)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(pr.configDir, "data"),
	)

	for _, path := range candidates {
		if pr.hasTrieFiles(path) {
			log.Debugf("found dictionary directory: %s", path)
			return path, nil
		}
	}
	return execRelative, nil
}

func (pr *PathResolver) hasTrieFiles(path string) bool {
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return false
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".trie" {
			return true
		}
	}
	return false
}

// GetConfigPath returns the full path for a config file, preferring the
// platform config directory and falling back to ~/.chewing, the system
// temp directory, and finally the executable's own directory.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureWritableDir(pr.configDir) {
		return configPath, nil
	}

	fallbacks := []string{
		filepath.Join(pr.homeDir, ".chewing"),
		filepath.Join(os.TempDir(), "chewing"),
		pr.executableDir,
	}
	for _, dir := range fallbacks {
		if pr.ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("using temporary config file: %s", tempPath)
	return tempPath, nil
}

func (pr *PathResolver) ensureWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Debugf("cannot create directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		log.Debugf("directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}

func (pr *PathResolver) GetExecutableDir() string { return pr.executableDir }
func (pr *PathResolver) GetExecutablePath() string { return pr.executablePath }
func (pr *PathResolver) GetConfigDir() string      { return pr.configDir }

// ResolveRelativePath resolves a path relative to the executable's own
// directory, leaving absolute paths untouched.
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}
