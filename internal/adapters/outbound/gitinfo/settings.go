package gitinfo

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-git/go-git/v5/config"
	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// SettingsProber implements domain.UserSettingsProbe from the global git
// config and the user's home directory.
type SettingsProber struct {
	home   string
	getenv func(string) string
	logger *zap.Logger
}

// NewSettingsProber creates a prober rooted at the current user's home.
// When the home directory is unknown only environment-derived settings are
// reported.
func NewSettingsProber(logger *zap.Logger) *SettingsProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Debug("home directory unknown", zap.Error(err))
		home = ""
	}
	return &SettingsProber{home: home, getenv: os.Getenv, logger: logger}
}

// WithHome overrides the home directory and environment, for tests.
func (p *SettingsProber) WithHome(home string, getenv func(string) string) *SettingsProber {
	p.home = home
	p.getenv = getenv
	return p
}

func (p *SettingsProber) UserSettings(_ context.Context) domain.UserSettingsFacts {
	f := domain.UserSettingsFacts{
		DefaultBranch:   domain.Absent,
		Editor:          domain.Absent,
		ShellConfigFile: domain.Absent,
		SSHKeys:         p.countSSHKeys(),
	}

	cfg, err := p.loadGlobal()
	if err != nil {
		p.logger.Debug("global git config unavailable", zap.Error(err))
	} else {
		f.GitName = cfg.User.Name != ""
		f.GitEmail = cfg.User.Email != ""
		if cfg.Init.DefaultBranch != "" {
			f.DefaultBranch = cfg.Init.DefaultBranch
		}
		f.CommitSigning = strings.EqualFold(cfg.Raw.Section("commit").Option("gpgsign"), "true") ||
			cfg.Raw.Section("user").Option("signingkey") != ""
		if ed := cfg.Raw.Section("core").Option("editor"); ed != "" {
			f.Editor = ed
		}
	}

	if ed := p.getenv("EDITOR"); ed != "" {
		f.Editor = ed
	}
	if name := p.shellConfigFile(); name != "" {
		f.ShellConfigFile = name
	}
	return f
}

// loadGlobal reads ~/.gitconfig (or the XDG location) relative to p.home.
func (p *SettingsProber) loadGlobal() (*config.Config, error) {
	var candidates []string
	if p.home != "" {
		candidates = append(candidates, filepath.Join(p.home, ".gitconfig"))
	}
	if xdg := p.getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "git", "config"))
	} else if p.home != "" {
		candidates = append(candidates, filepath.Join(p.home, ".config", "git", "config"))
	}

	var lastErr error = os.ErrNotExist
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		cfg := config.NewConfig()
		if err := cfg.Unmarshal(data); err != nil {
			lastErr = err
			continue
		}
		return cfg, nil
	}
	return nil, lastErr
}

func (p *SettingsProber) countSSHKeys() int {
	if p.home == "" {
		return 0
	}
	matches, err := filepath.Glob(filepath.Join(p.home, ".ssh", "*.pub"))
	if err != nil {
		return 0
	}
	return len(matches)
}

func (p *SettingsProber) shellConfigFile() string {
	if p.home == "" {
		return ""
	}
	var candidates []string
	switch filepath.Base(p.getenv("SHELL")) {
	case "zsh":
		candidates = []string{".zshrc", ".zprofile"}
	case "bash":
		candidates = []string{".bashrc", ".bash_profile"}
		if runtime.GOOS == "darwin" {
			candidates = []string{".bash_profile", ".bashrc"}
		}
	case "fish":
		candidates = []string{filepath.Join(".config", "fish", "config.fish")}
	default:
		candidates = []string{".profile"}
	}
	for _, c := range candidates {
		if _, err := os.Stat(filepath.Join(p.home, c)); err == nil {
			return filepath.Base(c)
		}
	}
	return ""
}
