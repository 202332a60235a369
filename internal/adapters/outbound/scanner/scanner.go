package scanner

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// Project-relative locations inspected for structure and freshness.
const (
	MigrationsGlob        = "supabase/migrations/*.sql"
	AssistantSettingsFile = ".claude/settings.local.json"
	ClaudeMDFile          = "CLAUDE.md"
	AgentsDir             = ".claude/agents"
	CommandsDir           = ".claude/commands"
)

// Lockfiles in the order they are preferred when several exist.
var Lockfiles = []string{
	"pnpm-lock.yaml",
	"package-lock.json",
	"yarn.lock",
	"go.sum",
}

// Repo is the subset of git repository access the scanner needs.
type Repo interface {
	TrackedFiles(projectPath string) ([]string, error)
	LastCommitTime(projectPath string) (time.Time, error)
}

// FileScanner implements domain.StructureProbe and domain.FreshnessProbe.
type FileScanner struct {
	repo   Repo
	now    func() time.Time
	logger *zap.Logger
}

func New(repo Repo, logger *zap.Logger) *FileScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileScanner{repo: repo, now: time.Now, logger: logger}
}

// WithClock replaces the wall clock used to compute ages.
func (s *FileScanner) WithClock(now func() time.Time) *FileScanner {
	s.now = now
	return s
}

func (s *FileScanner) Structure(_ context.Context, projectPath string) domain.StructureFacts {
	f := domain.StructureFacts{
		HasAssistantSettings: isFile(filepath.Join(projectPath, filepath.FromSlash(AssistantSettingsFile))),
		HasClaudeMD:          isFile(filepath.Join(projectPath, ClaudeMDFile)),
		HasAgentsDir:         isDir(filepath.Join(projectPath, filepath.FromSlash(AgentsDir))),
		HasCommandsDir:       isDir(filepath.Join(projectPath, filepath.FromSlash(CommandsDir))),
	}

	onDisk, _ := filepath.Glob(filepath.Join(projectPath, filepath.FromSlash(MigrationsGlob)))
	f.MigrationsOnDisk = len(onDisk)

	tracked, err := s.repo.TrackedFiles(projectPath)
	if err != nil {
		s.logger.Debug("no git index, counting migrations on disk", zap.Error(err))
		f.TrackedMigrations = f.MigrationsOnDisk
		return f
	}
	for _, name := range tracked {
		if ok, _ := path.Match(MigrationsGlob, name); ok {
			f.TrackedMigrations++
		}
	}
	return f
}

func (s *FileScanner) Freshness(_ context.Context, projectPath string) domain.FreshnessFacts {
	now := s.now()
	f := domain.FreshnessFacts{
		LastCommitDays: -1,
		ClaudeMDDays:   ageOfFile(now, filepath.Join(projectPath, ClaudeMDFile)),
		LockfileDays:   -1,
	}

	if when, err := s.repo.LastCommitTime(projectPath); err == nil {
		f.LastCommitDays = ageDays(now, when)
	} else {
		s.logger.Debug("no commit history", zap.Error(err))
	}

	for _, name := range Lockfiles {
		if d := ageOfFile(now, filepath.Join(projectPath, name)); d >= 0 {
			f.LockfileDays = d
			break
		}
	}
	return f
}

func ageOfFile(now time.Time, p string) int {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return -1
	}
	return ageDays(now, info.ModTime())
}

// ageDays returns whole days elapsed; times in the future count as today.
func ageDays(now, t time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
