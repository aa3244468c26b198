package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-view/internal/eval/script"
	"github.com/aescanero/dago-node-view/internal/eval/template"
	"github.com/aescanero/dago-node-view/internal/helper"
	"github.com/aescanero/dago-node-view/internal/view"
)

type checkOptions struct {
	*rootOptions
	dataFile string
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "check [NAME...]",
		Short: "check view templates for errors",
		Long: `Compiles view templates without rendering them and reports the engine each
name resolves to. Without arguments every template under the root is checked.

Raw scripts are checked against the standard helpers and the top-level keys of
--data; expressions referring to anything else are reported.`,
		RunE:          opts.run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().StringVarP(&opts.dataFile, "data", "d", "", "YAML or JSON file whose keys are declared for raw scripts")
	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command, args []string) error {
	data, err := loadData(o.dataFile)
	if err != nil {
		return err
	}
	vars := make([]string, 0, len(data))
	for key := range data {
		vars = append(vars, key)
	}

	names := args
	if len(names) == 0 {
		names, err = discover(o.root)
		if err != nil {
			return err
		}
	}

	logger := o.logger()
	defer func() { _ = logger.Sync() }()

	factory := view.NewFactory(o.root, view.WithLogger(logger))
	helpers := helper.NewRegistry(helper.Standard())

	var result *multierror.Error
	for _, name := range names {
		v := factory.Get(name, nil, nil)
		engine := v.Engine()

		var checkErr error
		switch engine {
		case view.EngineCompiled:
			checkErr = factory.Engine().ValidateTemplate(name)
		case view.EngineRaw:
			checkErr = checkScript(filepath.Join(o.root, filepath.FromSlash(name)+script.FileExt), vars, helpers)
		default:
			_, checkErr = v.Render(nil, nil)
		}

		if checkErr != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, checkErr))
			logger.Debug("template check failed", zap.String("template", name), zap.Error(checkErr))
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", name, checkErr)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%s)\n", name, engine)
	}

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			return fmt.Sprintf("%d of %d templates failed", len(errs), len(names))
		}
	}
	return result.ErrorOrNil()
}

func checkScript(path string, vars []string, helpers script.Helpers) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := script.Parse(path, src)
	if err != nil {
		return err
	}
	return s.Validate(vars, helpers)
}

// discover lists the view names under root, one per base name. A name backed
// by both engines is listed once.
func discover(root string) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != template.FileExt && ext != script.FileExt {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(strings.TrimSuffix(rel, ext))] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan template root: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
