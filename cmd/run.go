package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/krehermann/bytevm/programs"
	"github.com/krehermann/bytevm/vm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runAll   bool
	runTrace bool
)

// errRunFailed is returned when at least one program stopped with an error
var errRunFailed = errors.New("one or more programs failed")

var runCmd = &cobra.Command{
	Use:   "run [program...]",
	Short: "Run catalog programs and print their results",
	Long: `Run one or more catalog programs, each on a fresh interpreter, and print
the returned value or the execution error together with the final stack and
variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runAll {
			args = programs.Names()
		}
		if len(args) == 0 {
			return fmt.Errorf("run: no program given, use --all or see 'bytevm list'")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runTrace {
			cfg.Log.Level = "debug"
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		var failed bool
		for _, name := range args {
			e, err := programs.Get(name)
			if err != nil {
				return err
			}
			if !runProgram(cmd.OutOrStdout(), e, logger) {
				failed = true
			}
		}
		if failed {
			return errRunFailed
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "Run every program in the catalog")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Log every executed instruction")
	rootCmd.AddCommand(runCmd)
}

// runProgram prints the outcome of e and reports whether it succeeded
func runProgram(out io.Writer, e programs.Entry, logger *zap.Logger) bool {
	in := vm.NewInterpreter(vm.LoggerOpt(logger))
	res, err := in.Execute(e.Program)

	fmt.Fprintf(out, "%s ", nameStyle.Render(e.Name))
	switch {
	case err != nil:
		fmt.Fprintln(out, errStyle.Render("error: "+err.Error()))
	case res.Returned:
		fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("returned %d", res.Value)))
	default:
		msg := "finished without a value"
		if top, perr := in.Stack().Peek(); perr == nil {
			msg += fmt.Sprintf(", top of stack %d", top)
		}
		fmt.Fprintln(out, okStyle.Render(msg))
	}

	detail := fmt.Sprintf("steps: %d\nstack: %v\nvariables: %s",
		res.Steps,
		in.Stack().Values(),
		formatVars(in.Variables()),
	)
	fmt.Fprintln(out, blockStyle.Render(dimStyle.Render(detail)))
	return err == nil
}

func formatVars(vs *vm.Variables) string {
	snap := vs.Snapshot()
	s := "{"
	for i, name := range vs.Names() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", name, snap[name])
	}
	return s + "}"
}
