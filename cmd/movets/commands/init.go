package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/movets/config"
	"github.com/teranos/movets/errors"
)

var initForce bool

// InitCmd writes a movets.toml with default settings
var InitCmd = &cobra.Command{
	Use:   "init [root]",
	Short: "Write a default movets.toml",
	Long: `Write <root>/movets.toml with every setting at its default value,
including any overrides given as flags or MOVETS_* environment variables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	InitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing movets.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	path := filepath.Join(root, config.FileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it",
		)
	}

	// A broken existing file fails to load; start over from defaults
	cfg := config.Default()
	if p, err := loadProject(cmd, args); err == nil {
		cfg = p.cfg
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}
