package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/relicta-tech/cursor-rules/internal/security"
	"github.com/relicta-tech/cursor-rules/internal/service/rules"
)

// RulesHomeEnv overrides the location of the rules tree.
const RulesHomeEnv = "CURSOR_RULES_HOME"

// DefaultRulesTarget is the project-local rules directory.
const DefaultRulesTarget = ".cursor/rules"

// ErrNoCategory is returned when no category was selected. The usage hint
// has already been printed.
var ErrNoCategory = errors.New("no rule category selected")

type rulesFlags struct {
	all        bool
	categories map[string]*bool
	list       bool
	force      bool
	dryRun     bool
	source     string
	target     string
}

// selected returns the chosen categories in install order.
func (f *rulesFlags) selected() []string {
	if f.all {
		return append([]string(nil), rules.Categories...)
	}
	var cats []string
	for _, c := range rules.Categories {
		if *f.categories[c] {
			cats = append(cats, c)
		}
	}
	return cats
}

// NewRulesCommand creates the cursor-rules command.
func NewRulesCommand(opts *Options) *cobra.Command {
	flags := &rulesFlags{categories: make(map[string]*bool)}

	cmd := &cobra.Command{
		Use:   "cursor-rules",
		Short: "Install Cursor rule files into the current project",
		Example: `  cursor-rules --all
  cursor-rules --react --typescript
  cursor-rules --list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.Context(), opts, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.all, "all", false, "Install all categories")
	for _, c := range rules.Categories {
		flags.categories[c] = f.Bool(c, false, fmt.Sprintf("Install %s rules", c))
	}
	f.BoolVar(&flags.force, "force", false, "Overwrite existing files")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Simulate installation without writing")
	f.BoolVar(&flags.list, "list", false, "Show available categories")
	f.StringVar(&flags.source, "source", "", "rules tree (default: $CURSOR_RULES_HOME or rules beside the executable)")
	f.StringVar(&flags.target, "target", DefaultRulesTarget, "directory the rules are installed into")

	cmd.AddCommand(newVersionCommand("cursor-rules", opts, new(bool)))
	return cmd
}

// rulesSource resolves the rules tree: flag, environment, then the
// directory beside the executable or its parent.
func rulesSource(opts *Options, flag string) string {
	if flag != "" {
		return flag
	}
	if home := opts.getenv(RulesHomeEnv); home != "" {
		return home
	}
	if opts.Executable == nil {
		return "rules"
	}
	exe, err := opts.Executable()
	if err != nil {
		return "rules"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	for _, candidate := range []string{filepath.Join(dir, "rules"), filepath.Join(dir, "..", "rules")} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(dir, "rules")
}

func runRules(ctx context.Context, opts *Options, flags *rulesFlags) error {
	if security.IsCI(opts.getenv) {
		opts.DisableColor()
	}
	svc := rules.NewService(rulesSource(opts, flags.source), flags.target)

	if flags.list {
		return listRules(ctx, opts, svc)
	}

	selected := flags.selected()
	if len(selected) == 0 {
		opts.println(opts.Stdout, "Choose a category: --all --frontend --backend --react --typescript --general")
		opts.println(opts.Stdout, "Or use --list to see available ones. Use --help to see help.")
		return ErrNoCategory
	}

	title := cases.Title(language.English)
	current := ""
	progress := func(o rules.FileOutcome) {
		if o.Category != current {
			current = o.Category
			opts.println(opts.Stdout, opts.Styles.Title.Render(title.String(o.Category)))
		}
		if o.Skipped {
			opts.println(opts.Stdout, opts.Styles.Warning.Render(
				fmt.Sprintf("⚠️  %s already exists. Use --force to overwrite", o.Destination)))
			return
		}
		prefix := "👉"
		if o.DryRun {
			prefix = "👉 (dry)"
		}
		opts.println(opts.Stdout, fmt.Sprintf("%s copying %s/%s -> %s", prefix, o.Category, o.File, o.Destination))
	}

	report, err := svc.Install(ctx, selected, rules.InstallOptions{
		Force:    flags.force,
		DryRun:   flags.dryRun,
		Progress: progress,
	})
	if err != nil {
		return err
	}

	opts.Logger.Debug("rules installed", "copied", report.Copied(), "skipped", report.Skipped(), "dry_run", flags.dryRun)
	opts.println(opts.Stdout, opts.Styles.Success.Render("✅ Done"))
	return nil
}

func listRules(ctx context.Context, opts *Options, svc *rules.ServiceImpl) error {
	summaries, err := svc.List(ctx)
	if err != nil {
		return err
	}

	opts.println(opts.Stdout, "Available categories:")
	for _, s := range summaries {
		opts.println(opts.Stdout, fmt.Sprintf("- %s: %d rule(s)", s.Name, s.Rules))
	}
	if len(summaries) == 0 {
		opts.println(opts.Stdout, opts.Styles.Subtle.Render("  (none in "+svc.Source()+")"))
	}
	return nil
}
