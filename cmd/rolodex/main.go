package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jsvensson/rolodex"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/engine"
	"github.com/jsvensson/rolodex/internal/format"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
	"github.com/jsvensson/rolodex/internal/style"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// prefsEnv names the variable holding the default preference file path.
const prefsEnv = "ROLODEX_PREFS"

var (
	flagPrefs         string
	flagVerbose       int
	flagColor         string
	flagScheme        string
	flagSameColorText bool
	flagMix           bool
	flagForce         bool
	flagOut           string
	flagTemplates     string
	flagApp           []string
	flagCheck         bool
	version           = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "rolodex",
	Short:   "Derive accessible UI palettes from a single base color",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage: true,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the palette and contrast verdict for a selection without saving it",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Save a selection to the preference file and record it in the history",
	Long: "Save a selection to the preference file and record it in the history.\n" +
		"Selections that fail WCAG AA contrast are refused unless --force is given.",
	Args: cobra.NoArgs,
	RunE: runApply,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously applied selections, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Browse the history interactively and apply the chosen entry",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render theme templates for the current selection",
	Long: "Render theme templates for the current selection. Without --templates the\n" +
		"built-in CSS template is written to stdout, or to --out if given.",
	Args: cobra.NoArgs,
	RunE: runRender,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format preference files",
	Long:  "Format one or more preference files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPrefs, "prefs", "", "path to preferences file (default $"+prefsEnv+" or the user config dir)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")

	for _, cmd := range []*cobra.Command{previewCmd, applyCmd, renderCmd} {
		cmd.Flags().StringVar(&flagColor, "color", "", "base color as hex, e.g. #f59e0b")
		cmd.Flags().StringVar(&flagScheme, "scheme", "", "harmony scheme ("+strings.Join(palette.SchemeNames(), ", ")+")")
		cmd.Flags().BoolVar(&flagSameColorText, "same-color-text", false, "tint text with the palette's own hues")
		cmd.Flags().BoolVar(&flagMix, "mix", false, "tint text with the second scheme color")
	}
	for _, cmd := range []*cobra.Command{applyCmd, pickCmd} {
		cmd.Flags().BoolVarP(&flagForce, "force", "f", false, "apply even if the palette fails WCAG AA")
	}
	renderCmd.Flags().StringVar(&flagOut, "out", "", "output directory")
	renderCmd.Flags().StringVar(&flagTemplates, "templates", "", "templates directory (default: built-in CSS template)")
	renderCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only specific templates (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// prefsPath resolves the preference file from --prefs, the environment,
// then the user config directory.
func prefsPath() (string, error) {
	if flagPrefs != "" {
		return flagPrefs, nil
	}
	if p := os.Getenv(prefsEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "rolodex", "prefs.hcl"), nil
}

func loadPrefs() (*prefs.File, error) {
	path, err := prefsPath()
	if err != nil {
		return nil, err
	}
	return rolodex.Load(path)
}

// selectionFlagsChanged reports whether any selection flag was given.
func selectionFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"color", "scheme", "same-color-text", "mix"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// selection starts from the stored preferences and overrides whatever
// flags were given.
func selection(cmd *cobra.Command, store prefs.Store) (palette.Selection, error) {
	sel := rolodex.Current(store)
	flags := cmd.Flags()

	if flags.Changed("color") {
		c, err := color.ParseHex(flagColor)
		if err != nil {
			return sel, fmt.Errorf("--color: %w", err)
		}
		sel.Color = c
	}
	if flags.Changed("scheme") {
		s, err := palette.ParseScheme(flagScheme)
		if err != nil {
			return sel, fmt.Errorf("--scheme: %w", err)
		}
		sel.Scheme = s
	}
	if flags.Changed("same-color-text") {
		sel.SameColorText = flagSameColorText
	}
	if flags.Changed("mix") {
		sel.MixItUp = flagMix
	}
	return sel, nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	f, err := loadPrefs()
	if err != nil {
		return err
	}
	sel, err := selection(cmd, f)
	if err != nil {
		return err
	}

	printPreview(cmd.OutOrStdout(), rolodex.Preview(sel))
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	f, err := loadPrefs()
	if err != nil {
		return err
	}
	sel, err := selection(cmd, f)
	if err != nil {
		return err
	}

	data, err := rolodex.Commit(f, style.NewTheme(), sel, flagForce)
	printPreview(cmd.OutOrStdout(), data)
	if errors.Is(err, rolodex.ErrInaccessible) {
		return fmt.Errorf("%w (use --force to apply anyway)", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", f.Path())
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	f, err := loadPrefs()
	if err != nil {
		return err
	}

	history := f.History()
	if len(history) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history")
		return nil
	}
	for i, entry := range history {
		printHistoryEntry(cmd.OutOrStdout(), i+1, entry)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	f, err := loadPrefs()
	if err != nil {
		return err
	}

	var data *engine.Data
	if selectionFlagsChanged(cmd) {
		sel, err := selection(cmd, f)
		if err != nil {
			return err
		}
		data = rolodex.Preview(sel)
	} else {
		data = rolodex.Restore(f, style.NewTheme())
	}

	if flagTemplates == "" && flagOut == "" {
		return engine.RenderCSS(cmd.OutOrStdout(), data)
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Apps:         flagApp,
	}
	if e.OutputDir == "" {
		e.OutputDir = "."
	}
	if err := e.Run(data); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered theme files in %s\n", e.OutputDir)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		formatted, unchanged, err := format.Check(string(data))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if unchanged {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
