package scoring

import (
	"fmt"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ScoreStructure rewards tracked migrations, the assistant local-settings
// file and a CLAUDE.md.
func ScoreStructure(cfg domain.HealthConfig, f domain.StructureFacts) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name:   domain.CategoryStructure,
		Weight: cfg.Weight(domain.CategoryStructure),
	}
	p := cfg.Structure

	migrations := passFail("tracked_migrations", p.MigrationsPoints, f.TrackedMigrations > 0,
		fmt.Sprintf("%d tracked migrations", f.TrackedMigrations), "no tracked migrations")
	if f.TrackedMigrations == 0 && f.MigrationsOnDisk > 0 {
		migrations.Detail = fmt.Sprintf("%d migrations on disk, none tracked", f.MigrationsOnDisk)
	}

	cat.SubMetrics = []domain.SubMetric{
		migrations,
		passFail("assistant_settings", p.AssistantSettingsPoints, f.HasAssistantSettings,
			".claude/settings.local.json present", ".claude/settings.local.json missing"),
		passFail("claude_md", p.ClaudeMDPoints, f.HasClaudeMD, "CLAUDE.md present", "CLAUDE.md missing"),
	}
	cat.Score = sumSubMetrics(cat.SubMetrics)
	return cat
}
