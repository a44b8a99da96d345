// Command planc compiles planning problems into restricted fragments.
// Its only transformation today removes disjunctive conditions: the compiled
// problem is semantically equivalent but no action condition and no goal has
// an "or" as its top-level form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"planc/compiler"
	"planc/problemio"
)

var (
	verbose bool
	output  string
)

var rootCmd = &cobra.Command{
	Use:           "planc",
	Short:         "Compile planning problems into restricted fragments",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile <problem.yaml>",
	Short: "Remove disjunctive conditions from a problem",
	Long: `Compile reads a planning problem from a YAML document, removes every
disjunctive action condition and goal, and writes the equivalent compiled
problem back as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	compileCmd.Flags().StringVarP(&output, "output", "o", "", "write the compiled problem to this file instead of stdout")
	rootCmd.AddCommand(compileCmd)
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runCompile(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	p, err := problemio.Read(f)
	if err != nil {
		return fmt.Errorf("could not read problem from %q: %w", path, err)
	}
	logger.Debug("problem loaded",
		zap.String("problem", p.Name()),
		zap.Int("fluents", len(p.Fluents())),
		zap.Int("actions", len(p.Actions())))

	c := compiler.NewDisjunctiveConditionsRemover()
	res, err := c.Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		return fmt.Errorf("could not compile %q: %w", p.Name(), err)
	}
	logger.Info("problem compiled",
		zap.String("engine", res.EngineName),
		zap.String("problem", res.Problem.Name()),
		zap.Int("actions_in", len(p.Actions())),
		zap.Int("actions_out", len(res.Problem.Actions())),
		zap.Int("fluents_added", len(res.Problem.Fluents())-len(p.Fluents())))

	out := os.Stdout
	if output != "" {
		out, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("could not create %q: %w", output, err)
		}
		defer out.Close()
	}
	if err := problemio.Write(out, res.Problem); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "planc:", err)
		os.Exit(1)
	}
}
