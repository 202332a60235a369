// Package secrets inspects a project's secrets file without retaining any
// secret value.
package secrets

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// TrackedChecker reports whether a project-relative path is in the git index.
type TrackedChecker interface {
	IsTracked(projectPath, relPath string) bool
}

// Prober implements domain.SecurityProbe.
type Prober struct {
	cfg     domain.SecurityConfig
	tracked TrackedChecker
	logger  *zap.Logger
}

func New(cfg domain.SecurityConfig, tracked TrackedChecker, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{cfg: cfg, tracked: tracked, logger: logger}
}

func (p *Prober) Security(_ context.Context, projectPath string) domain.SecurityFacts {
	rel := filepath.ToSlash(p.cfg.SecretsFile)
	f := domain.SecurityFacts{SecretsFile: rel}

	path := filepath.Join(projectPath, filepath.FromSlash(rel))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return f
	}
	f.SecretsFileExists = true
	f.SecretsFileIgnored = p.ignored(projectPath, rel)
	if p.tracked != nil {
		f.SecretsFileTracked = p.tracked.IsTracked(projectPath, rel)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		p.logger.Debug("secrets file unparsable, reading line by line", zap.String("path", path), zap.Error(err))
		vars, f.UnparsableLines = readLines(path)
	}
	f.DeclaredSecrets = len(vars)
	f.Violations = p.violations(vars)
	return f
}

// readLines parses each line on its own so one malformed line does not hide
// the rest of the file. It returns the variables and the skipped line count.
func readLines(path string) (map[string]string, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 1
	}

	vars := make(map[string]string)
	bad := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.ContainsAny(line, "=:") {
			bad++
			continue
		}
		parsed, err := godotenv.Unmarshal(line)
		if err != nil {
			bad++
			continue
		}
		for k, v := range parsed {
			if k != "" {
				vars[k] = v
			}
		}
	}
	// The file as a whole failed to parse even if every line parses alone.
	if bad == 0 {
		bad = 1
	}
	return vars, bad
}

// ignored evaluates the project's .gitignore files the way git would.
func (p *Prober) ignored(projectPath, rel string) bool {
	patterns, err := gitignore.ReadPatterns(osfs.New(projectPath), nil)
	if err != nil {
		p.logger.Debug("reading ignore rules", zap.String("project", projectPath), zap.Error(err))
		return false
	}
	return gitignore.NewMatcher(patterns).Match(strings.Split(rel, "/"), false)
}

// violations lists variables that are published to client bundles by their
// prefix while looking server-sensitive by name or value shape.
func (p *Prober) violations(vars map[string]string) []string {
	var out []string
	for name, value := range vars {
		if !hasAnyPrefix(name, p.cfg.PublicPrefixes) {
			continue
		}
		upper := strings.ToUpper(name)
		sensitive := hasAnyPrefix(value, p.cfg.SensitiveValuePrefixes)
		for _, marker := range p.cfg.SensitiveNameMarkers {
			if strings.Contains(upper, strings.ToUpper(marker)) {
				sensitive = true
				break
			}
		}
		if sensitive {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
