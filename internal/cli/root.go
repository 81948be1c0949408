package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"uyagen/pkg/uyagen"
)

const (
	appName    = "uyagen"
	appVersion = "0.1.0"
)

// reporter prints the human-readable progress and summary lines.
type reporter struct {
	w io.Writer
	p *message.Printer
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, p: message.NewPrinter(language.English)}
}

func (r *reporter) start(opts uyagen.Options) {
	fmt.Fprintf(r.w, "Generating fixture: %s\n", opts.OutputPath)
	fmt.Fprintf(r.w, "  - functions: %d\n", opts.FunctionCount)
	fmt.Fprintf(r.w, "  - structs: %d\n", opts.StructCount)
	fmt.Fprintln(r.w, "  working...")
}

func (r *reporter) Report(stage uyagen.Stage, done, total int) {
	fmt.Fprintf(r.w, "  generated %d/%d %s...\n", done, total, stage)
}

func (r *reporter) done(opts uyagen.Options, st uyagen.Stats) {
	fmt.Fprintf(r.w, "\nGenerated fixture: %s\n", opts.OutputPath)
	fmt.Fprintf(r.w, "  - functions: %d\n", st.Functions)
	fmt.Fprintf(r.w, "  - structs: %d\n", st.Structs)
	r.p.Fprintf(r.w, "  - size: %.2f MiB (%d bytes)\n", st.MiB(), st.Bytes)
}

// optionsFromArgs fills opts from the positional
// [functionCount] [structCount] [outputPath] arguments.
func optionsFromArgs(args []string) (uyagen.Options, error) {
	opts := uyagen.Defaults()
	var err error
	if len(args) > 0 {
		if opts.FunctionCount, err = uyagen.ParseCount("function count", args[0]); err != nil {
			return opts, err
		}
	}
	if len(args) > 1 {
		if opts.StructCount, err = uyagen.ParseCount("struct count", args[1]); err != nil {
			return opts, err
		}
	}
	if len(args) > 2 {
		opts.OutputPath = args[2]
	}
	return opts, opts.Validate()
}

func NewRootCmd() *cobra.Command {
	showVersion := false
	quiet := false

	cmd := &cobra.Command{
		Use:           appName + " [flags] [--] [functionCount] [structCount] [outputPath]",
		Short:         "Generate a large Uya program for compiler performance tests",
		Long:          "Generate a large Uya program for compiler performance tests.\nArguments starting with '-' are read as flags; put them after --.",
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, appVersion)
				return err
			}
			opts, err := optionsFromArgs(args)
			if err != nil {
				return err
			}

			// The fixture owns stdout when written there.
			out := cmd.OutOrStdout()
			if opts.ToStdout() {
				out = cmd.ErrOrStderr()
			}
			if quiet {
				out = io.Discard
			}
			rep := newReporter(out)

			rep.start(opts)
			var st uyagen.Stats
			if opts.ToStdout() {
				st, err = uyagen.Generate(cmd.OutOrStdout(), opts, rep)
			} else {
				st, err = uyagen.GenerateFile(opts, rep)
			}
			if err != nil {
				return errors.WithMessagef(err, "generate %s", opts.OutputPath)
			}
			rep.done(opts, st)
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and summary output")

	return cmd
}

// Run executes the root command with args and returns the process exit code.
// Failures are logged to stderr as a single slog line.
func Run(args []string, stdout, stderr io.Writer) int {
	log := slog.New(slog.NewTextHandler(stderr, nil))

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		// err.Error() keeps pkg/errors stack traces out of the log line.
		log.Error("fixture generation failed", "error", err.Error())
		return 1
	}
	return 0
}
