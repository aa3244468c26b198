package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/dago-node-view/internal/eval/template"
	"github.com/aescanero/dago-node-view/internal/helper"
	"github.com/aescanero/dago-node-view/internal/i18n"
	"github.com/aescanero/dago-node-view/internal/view"
)

type renderOptions struct {
	*rootOptions
	dataFile      string
	set           []string
	locale        string
	localesDir    string
	defaultLocale string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "render a view template",
		Long: `Renders the named view and writes the output to stdout.

The name is resolved under the template root, trying NAME.hbs before NAME.rtpl.`,
		Args:          cobra.ExactArgs(1),
		RunE:          opts.run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().StringVarP(&opts.dataFile, "data", "d", "", "YAML or JSON file holding view data")
	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "set a data value (key=value), may be repeated")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", "", "locale used by translation helpers")
	cmd.Flags().StringVar(&opts.localesDir, "locales", "", "directory of <locale>.yaml message catalogs")
	cmd.Flags().StringVar(&opts.defaultLocale, "default-locale", "en", "locale used when none is set")
	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	data, err := loadData(o.dataFile)
	if err != nil {
		return err
	}
	for _, kv := range o.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --set value %q, expected key=value", kv)
		}
		data[key] = value
	}
	if o.locale != "" {
		data["locale"] = o.locale
	}

	logger := o.logger()
	defer func() { _ = logger.Sync() }()

	catalog, err := o.catalog()
	if err != nil {
		return err
	}

	factory := view.NewFactory(o.root,
		view.WithExtension(template.NewI18nExtension(catalog, o.defaultLocale)),
		view.WithLogger(logger),
	)
	v := factory.Get(args[0], data, helper.Standard())
	out, err := v.RenderContext(cmd.Context(), nil, nil)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// catalog loads --locales, or returns an empty catalog so trans passes text through
func (o *renderOptions) catalog() (*i18n.Catalog, error) {
	if o.localesDir == "" {
		catalog, err := i18n.NewCatalog(o.defaultLocale)
		if err != nil {
			return nil, fmt.Errorf("invalid default locale: %w", err)
		}
		return catalog, nil
	}

	catalog, err := i18n.LoadDir(o.localesDir, o.defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}
	return catalog, nil
}

// loadData reads a YAML (or JSON) mapping. An empty path yields an empty map.
func loadData(path string) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	if path == "" {
		return data, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	if data == nil {
		data = make(map[string]interface{})
	}
	return data, nil
}
