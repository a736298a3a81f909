package system

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/utils"
)

// ExportCmd writes all tracker data as JSON or YAML.
type ExportCmd struct {
	Output string `short:"o" help:"Output file. Writes to stdout when empty or '-'."`
	Format string `short:"f" help:"json or yaml. Guessed from the output extension when empty."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	if c.Output == "" || c.Output == "-" {
		out := ctx.Out
		if out == nil {
			out = os.Stdout
		}
		return storage.Export(out, data.Snapshot(), format)
	}

	path, err := utils.ExpandPath(c.Output)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := storage.Export(f, data.Snapshot(), format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	ctx.Printf("Exported %d goal(s) and %d task(s) to %s\n", len(data.AllGoals()), len(data.AllTasks()), path)
	return nil
}

// ImportCmd replaces all tracker data with the contents of a file.
type ImportCmd struct {
	File   string `arg:"" help:"File to import. Reads stdin when '-'."`
	Format string `short:"f" help:"json or yaml. Guessed from the file extension when empty."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.File)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if c.File != "-" {
		path, err := utils.ExpandPath(c.File)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	snapshot, err := storage.Import(r, format)
	if err != nil {
		return err
	}
	imported, err := tracker.FromSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Replace all tracker data with %d goal(s) and %d task(s)?",
			len(imported.AllGoals()), len(imported.AllTasks())))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	imported.Recompute(ctx.Today())
	if err := ctx.SaveData(imported); err != nil {
		return err
	}
	ctx.Printf("Imported %d goal(s) and %d task(s)\n", len(imported.AllGoals()), len(imported.AllTasks()))
	return nil
}

func resolveFormat(flag, path string) (storage.Format, error) {
	if flag != "" {
		return storage.ParseFormat(flag)
	}
	return storage.FormatFromPath(path), nil
}
