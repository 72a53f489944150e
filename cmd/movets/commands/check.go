package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/movets/typegen"
	"github.com/teranos/movets/version"
)

// CheckCmd checks if generated output is up to date
var CheckCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Check if generated output is up to date",
	Long: `Regenerate in memory and compare with the files in the output directory.

Metadata lines (// Generator: ...) are ignored, so upgrading movets alone
does not make the output stale. Paths matching check.ignore in movets.toml
are skipped.

Exit codes:
  0 - Output is up to date
  1 - Output is stale or generation failed

Examples:
  movets check                  # Check ./build/ts
  movets check --out-dir src/gen`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	result, err := p.generate(cmd.Context())
	if err != nil {
		return err
	}

	check, err := typegen.CompareResult(result, p.outputDir(), typegen.CheckOptions{
		Ignore:           p.cfg.Check.Ignore,
		GeneratorVersion: version.Get().Generator(),
	})
	if err != nil {
		return err
	}

	if check.UpToDate {
		pterm.Success.Printfln("%s is up to date", p.outputDir())
		return nil
	}

	pterm.Warning.Printfln("%s is stale", p.outputDir())
	pterm.Println(check.Summary())
	return check.Err()
}
