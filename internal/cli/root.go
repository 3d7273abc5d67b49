package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chem "github.com/pengfeili1/Molmodsummer"
	"github.com/pengfeili1/Molmodsummer/blobio"
)

// Input contains the values of the persistent flags and the loaded configuration.
type Input struct {
	configFile string
	verbose    bool
	input      string
	v          *viper.Viper
	cfg        *Config
}

// Execute is the entry point to running the CLI
func Execute(ctx context.Context, version string) {
	input := new(Input)
	rootCmd := createRootCommand(ctx, input, version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCommand(ctx context.Context, input *Input, version string) *cobra.Command {
	input.v = newViper()
	rootCmd := &cobra.Command{
		Use:               "molgraph",
		Short:             "Work with molecular graphs: search patterns, add hydrogens and split molecules.",
		Args:              cobra.NoArgs,
		PersistentPreRunE: setup(input),
		Version:           version,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().BoolVarP(&input.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&input.configFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&input.input, "input", "i", "", "blob archive to read the graphs from (plain, .gz or .zst)")
	rootCmd.AddCommand(
		newInspectCommand(input),
		newSearchCommand(input),
		newHydrogensCommand(input),
		newHalvesCommand(input),
		newArchiveCommand(input),
		newPerceiveCommand(input),
	)
	rootCmd.SetContext(ctx)
	return rootCmd
}

func setup(input *Input) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(input.v, input.configFile)
		if err != nil {
			return err
		}
		input.cfg = cfg
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(err, "invalid log_level")
		}
		if input.verbose {
			level = log.DebugLevel
		}
		log.SetLevel(level)
		log.SetOutput(cmd.ErrOrStderr())
		return nil
	}
}

// graphs returns the molecular graphs given as blob arguments, or, if there are none, read
// from the archive given with --input, or from the standard input, one blob per line.
func (i *Input) graphs(cmd *cobra.Command, args []string) ([]*chem.MolecularGraph, error) {
	if len(args) > 0 {
		ret := make([]*chem.MolecularGraph, 0, len(args))
		for n, a := range args {
			M, err := chem.FromBlob(a)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", n+1)
			}
			ret = append(ret, M)
		}
		return ret, nil
	}
	if i.input != "" {
		R, header, err := blobio.New(i.input)
		if err != nil {
			return nil, err
		}
		defer R.Close()
		log.WithFields(log.Fields{"file": i.input, "header": header}).Debug("reading archive")
		return R.ReadAll()
	}
	return readBlobs(cmd.InOrStdin())
}

func readBlobs(r io.Reader) ([]*chem.MolecularGraph, error) {
	ret := make([]*chem.MolecularGraph, 0)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for s.Scan() {
		line++
		str := strings.TrimSpace(s.Text())
		if str == "" || strings.HasPrefix(str, "#") {
			continue
		}
		M, err := chem.FromBlob(str)
		if err != nil {
			return nil, errors.Wrapf(err, "standard input, line %d", line)
		}
		ret = append(ret, M)
	}
	return ret, errors.Wrap(s.Err(), "reading standard input")
}

func newInspectCommand(input *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [blob...]",
		Short: "Print a summary of each molecular graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs, err := input.graphs(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for n, M := range graphs {
				fmt.Fprintf(out, "graph %d: %s, %d atoms, %d bonds, %d components\n", n, formula(M), M.Len(), M.NumBonds(), len(M.Components()))
				fmt.Fprintf(out, "  %s\n", M.Blob())
			}
			return nil
		},
	}
}

// formula returns the Hill formula of M: C and H first, the rest in alphabetical order.
func formula(M *chem.MolecularGraph) string {
	counts := make(map[string]int)
	for _, n := range M.Numbers() {
		s := chem.Symbol(n)
		if s == "" {
			s = fmt.Sprintf("[%d]", n)
		}
		counts[s]++
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		if (s == "C" || s == "H") && counts["C"] > 0 {
			continue
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	if counts["C"] > 0 {
		symbols = append([]string{"C", "H"}, symbols...)
	}
	var b strings.Builder
	for _, s := range symbols {
		c := counts[s]
		if c == 0 {
			continue
		}
		b.WriteString(s)
		if c > 1 {
			fmt.Fprintf(&b, "%d", c)
		}
	}
	return b.String()
}
