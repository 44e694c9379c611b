package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsvensson/colorpicker"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/format"
	"github.com/jsvensson/colorpicker/internal/interaction"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagVerbose   int
	flagConfig    string
	flagFrom      string
	flagColor     string
	flagEvents    string
	flagScale     int
	flagOut       string
	flagTemplates string
	flagPicker    string
	flagOutDir    string
	flagApp       []string
	flagCheck     bool
	flagWatch     bool
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "colorpicker",
	Short:   "Convert, render and export colors with a headless color picker",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Print a color in every supported format",
	Long: "Parse a color and print it as hex, rgb(a), hsl(a), hsv and cmyk. Without --from the " +
		"format is detected; with it the input is read as a bare tuple, e.g. --from hsv \"210, 75, 80\".",
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the picker to a PNG image",
	Long: "Build a picker, optionally set its color and replay pointer events such as " +
		"\"down 100,50; move 300,60; up\", then write the canvas as PNG.",
	RunE: runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render picker swatches through templates",
	RunE:  runExport,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format picker files",
	Long:  "Format one or more picker files in-place. Prints the name of each file that was modified.",
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
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (repeatable)")

	convertCmd.Flags().StringVar(&flagFrom, "from", "", "input format: hex, rgba, hsv, hsla or cmyk")
	convertCmd.Flags().StringVar(&flagConfig, "config", "", "picker file whose swatch names may be used")

	renderCmd.Flags().StringVar(&flagConfig, "config", "", "picker file (default geometry when empty)")
	renderCmd.Flags().StringVar(&flagColor, "color", "", "color to set before replaying events")
	renderCmd.Flags().StringVar(&flagEvents, "events", "", "pointer events to replay")
	renderCmd.Flags().IntVar(&flagScale, "scale", 1, "integer zoom factor")
	renderCmd.Flags().StringVar(&flagOut, "out", "", "output PNG path")
	_ = renderCmd.MarkFlagRequired("out")

	exportCmd.Flags().StringVar(&flagPicker, "config", "picker.hcl", "path to picker HCL file")
	exportCmd.Flags().StringVar(&flagOutDir, "out", "output", "output directory")
	exportCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	exportCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only specific templates (can be repeated)")
	exportCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "re-export when the picker file or a template changes")

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadPicker() (*colorpicker.Picker, error) {
	if flagConfig == "" {
		return colorpicker.Default()
	}
	return colorpicker.Load(flagConfig)
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, err := loadPicker()
	if err != nil {
		return err
	}

	if flagFrom == "" {
		err = p.Controller.SetText(args[0])
	} else {
		var f parser.Format
		f, err = parser.ParseFormat(flagFrom)
		if err != nil {
			return err
		}
		err = p.Controller.SetTuple(f, args[0])
	}
	if err != nil {
		return err
	}

	printFormats(cmd, p.Controller.Formats())
	return nil
}

func printFormats(cmd *cobra.Command, f color.Formats) {
	out := termenv.NewOutput(cmd.OutOrStdout())
	if out.Profile != termenv.Ascii {
		fmt.Fprintln(out, out.String("        ").Background(out.Color(f.Hex[:7])))
	}
	for _, row := range [][2]string{
		{"hex", f.Hex},
		{"rgb", f.RGB},
		{"rgba", f.RGBA},
		{"hsl", f.HSL},
		{"hsla", f.HSLA},
		{"hsv", f.HSV},
		{"cmyk", f.CMYK},
	} {
		fmt.Fprintf(out, "%-5s %s\n", row[0], row[1])
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := loadPicker()
	if err != nil {
		return err
	}

	if flagColor != "" {
		if err := p.Controller.SetText(flagColor); err != nil {
			return err
		}
	}
	if flagEvents != "" {
		events, err := interaction.ParseEvents(flagEvents)
		if err != nil {
			return fmt.Errorf("parsing events: %w", err)
		}
		p.Controller.Replay(events)
	}

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := p.WritePNG(f, flagScale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", flagOut, p.Controller.Formats().Hex)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if flagWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, exporting to %s\n", flagPicker, flagOutDir)
		return colorpicker.Watch(ctx, flagPicker, flagTemplates, flagOutDir, flagApp)
	}

	p, err := colorpicker.Load(flagPicker)
	if err != nil {
		return err
	}

	if err := p.Export(flagTemplates, flagOutDir, flagApp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported swatches to %s\n", flagOutDir)
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

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
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
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
