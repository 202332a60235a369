package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/gitinfo"
)

const preCommitHook = `#!/bin/sh
# Installed by seatbelt. Blocks the commit when the environment check is blocked.
exec seatbelt check --quick
`

func newHookCmd() *cobra.Command {
	var (
		install bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "hook [path]",
		Short: "Print or install a pre-commit hook",
		Long:  "Print a git pre-commit hook that runs 'seatbelt check --quick'. With --install, write it to .git/hooks/pre-commit of the repository at path.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !install {
				fmt.Fprint(cmd.OutOrStdout(), preCommitHook)
				return nil
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if !gitinfo.New().IsGitRepo(absPath) {
				return fmt.Errorf("%s is not a git repository", absPath)
			}

			hookPath := filepath.Join(absPath, ".git", "hooks", "pre-commit")
			if _, err := os.Stat(hookPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", hookPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking existing hook: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
				return fmt.Errorf("creating hooks directory: %w", err)
			}
			if err := os.WriteFile(hookPath, []byte(preCommitHook), 0o755); err != nil {
				return fmt.Errorf("writing hook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed pre-commit hook at %s\n", hookPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "Write the hook into .git/hooks/pre-commit")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing pre-commit hook")

	return cmd
}
