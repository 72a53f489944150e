package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/movets/config"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/logger"
	"github.com/teranos/movets/typegen"
	"github.com/teranos/movets/typegen/watch"
)

// WatchCmd regenerates whenever the IDL or project files change
var WatchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Regenerate on IDL changes",
	Long: `Generate once, then regenerate whenever the package IDL, Move.toml or
movets.toml changes. Settings are reloaded on every change.

Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	if err := writeProject(ctx, p); err != nil {
		pterm.Error.Println(err.Error())
	}

	for {
		next, err := watchProject(ctx, cmd, args, p)
		if err != nil || next == nil {
			return err
		}
		pterm.Info.Printfln("IDL moved to %s", next.idlFile())
		p = next
	}
}

// watchProject watches p's inputs until ctx is done or a reloaded
// movets.toml points at another IDL file. In the latter case it returns
// the reloaded project so the caller can watch the new inputs.
func watchProject(ctx context.Context, cmd *cobra.Command, args []string, p *project) (*project, error) {
	wctx, restart := context.WithCancel(ctx)
	defer restart()

	var moved *project
	regenerate := func(ctx context.Context, changed []string) error {
		// Settings may have changed along with the IDL
		current, err := loadProject(cmd, args)
		if err != nil {
			return err
		}
		err = writeProject(ctx, current)
		if current.idlFile() != p.idlFile() {
			moved = current
			restart()
		}
		return err
	}

	w, err := watch.New(watchedFiles(p), p.cfg.Debounce(), regenerate, logger.ComponentLogger("watch"))
	if err != nil {
		return nil, err
	}

	pterm.Info.Printfln("Watching %s (Ctrl-C to stop)", p.idlFile())
	if err := w.Run(wctx); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, nil
	}
	return moved, nil
}

// watchedFiles are the inputs whose changes trigger regeneration.
func watchedFiles(p *project) []string {
	return []string{
		p.idlFile(),
		filepath.Join(p.root, idl.ManifestFile),
		filepath.Join(p.root, config.FileName),
	}
}

func writeProject(ctx context.Context, p *project) error {
	result, err := p.generate(ctx)
	if err != nil {
		return err
	}
	written, err := typegen.WriteResult(result, p.outputDir())
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Regenerated %d files for %s", len(written), result.PackageName)
	return nil
}
