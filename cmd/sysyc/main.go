package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/raymyers/sysyc/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

// Output mode flags
var (
	emitKoopa bool
	emitRiscv bool
	emitPerf  bool
)

// Driver options
var (
	outputFile string
	dumpAST    bool
	colorMode  string
	configFile string
	verbose    bool
)

// modeFlagInfo holds metadata for an output mode flag
type modeFlagInfo struct {
	flag *bool
	desc string
}

// unimplementedModes maps mode flags that are accepted but not supported yet
var unimplementedModes = map[string]modeFlagInfo{
	"riscv": {&emitRiscv, "emit RISC-V assembly"},
	"perf":  {&emitPerf, "emit optimized RISC-V assembly"},
}

// ErrNotImplemented indicates a feature is not yet implemented
var ErrNotImplemented = errors.New("not yet implemented")

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)

	// autoNoColor is the terminal detection result fatih/color made at startup.
	autoNoColor = color.NoColor
)

// checkModeConflict rejects more than one output mode on a command line
func checkModeConflict() error {
	var set []string
	for _, m := range []struct {
		name string
		flag *bool
	}{{"koopa", &emitKoopa}, {"riscv", &emitRiscv}, {"perf", &emitPerf}} {
		if *m.flag {
			set = append(set, "-"+m.name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("only one output mode may be given, got %s", strings.Join(set, " "))
	}
	return nil
}

// checkModeFlags reports the first unimplemented mode flag that is set
func checkModeFlags(w io.Writer) error {
	for name, info := range unimplementedModes {
		if *info.flag {
			fmt.Fprintf(w, "sysyc: %s -%s (%s) is not yet implemented\n", warningColor.Sprint("warning:"), name, info.desc)
			return ErrNotImplemented
		}
	}
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept the course-style single-dash long flags (-koopa, -riscv, -perf)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

// longFlagNames lists flags that may be written with a single dash
var longFlagNames = []string{"koopa", "riscv", "perf", "dump-ast", "dump_ast"}

// normalizeFlags converts single-dash long flags like -koopa to --koopa
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range longFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

// dashedNames lets --dump_ast and --dump-ast name the same flag
func dashedNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysyc [flags] file...",
		Short: "sysyc compiles SysY programs to Koopa IR",
		Long: `sysyc compiles a single-function SysY program to Koopa IR,
a register-numbered three-address intermediate representation.

  sysyc -koopa hello.c -o hello.koopa`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkModeConflict(); err != nil {
				reportError(errOut, err)
				return err
			}
			if err := checkModeFlags(errOut); err != nil {
				return err
			}

			if len(args) == 0 {
				return cmd.Help()
			}

			if err := compileCommand(cmd, args, out, errOut); err != nil {
				reportError(errOut, err)
				return err
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetGlobalNormalizationFunc(dashedNames)

	// Output modes
	rootCmd.Flags().BoolVar(&emitKoopa, "koopa", false, "Emit Koopa IR (default)")
	rootCmd.Flags().BoolVar(&emitRiscv, "riscv", false, "Emit RISC-V assembly")
	rootCmd.Flags().BoolVar(&emitPerf, "perf", false, "Emit optimized RISC-V assembly")

	// Driver options
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write output to file (single input only)")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "Print the parsed AST to stdout")
	rootCmd.Flags().StringVar(&colorMode, "color", "", "Colorize diagnostics: auto, always or never")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to "+config.FileName+" (default: search upward from the first input)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Report each file as it is compiled")

	return rootCmd
}

// compileCommand resolves settings, compiles every input and writes the results
func compileCommand(cmd *cobra.Command, args []string, out, errOut io.Writer) error {
	if cmd.Flags().Changed("color") {
		// config errors below are reported with this setting too
		applyColor(colorMode)
	}
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("color") {
		cfg.Diagnostics.Color = colorMode
	}
	if cmd.Flags().Changed("dump-ast") {
		cfg.Diagnostics.DumpAST = dumpAST
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	applyColor(cfg.Diagnostics.Color)

	if outputFile != "" && len(args) > 1 {
		return errors.New("-o cannot be used with multiple input files")
	}

	units, err := compileFiles(cmd.Context(), args, errOut)
	if err != nil {
		return err
	}
	return emitUnits(units, cfg, out)
}

// loadConfig loads --config if given, otherwise the nearest sysyc.toml
func loadConfig(firstInput string) (config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.Discover(filepath.Dir(firstInput))
}

func applyColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = autoNoColor
	}
}

// reportError prints a failure to errOut. Parse errors are listed one per
// line in "file: line L, col C: message" form before the summary.
func reportError(w io.Writer, err error) {
	var serr *sourceError
	if errors.As(err, &serr) && serr.parse != nil {
		for _, msg := range serr.parse.Errors {
			fmt.Fprintf(w, "%s: %s\n", serr.filename, msg)
		}
	}
	fmt.Fprintf(w, "sysyc: %s %v\n", errorColor.Sprint("error:"), err)
}
