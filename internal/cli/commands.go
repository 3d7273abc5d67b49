package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	chem "github.com/pengfeili1/Molmodsummer"
	"github.com/pengfeili1/Molmodsummer/blobio"
	v3 "github.com/pengfeili1/Molmodsummer/v3"
)

type searchOptions struct {
	pattern string
	size    int
	strong  bool
	atoms   string
	first   bool
}

// bindFlags binds the named flags of cmd to configuration keys, so a flag given on the
// command line overrides the configuration file and the environment.
func bindFlags(input *Input, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := input.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func newSearchCommand(input *Input) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search [blob...]",
		Short: "Search a pattern in each molecular graph",
		Long: `Search a pattern in each molecular graph and print the matches, one per line.
The pattern is one of bond, angle, dihedral, oop, tetra or ring. --atoms restricts
the atoms of the template, in order: a comma-separated list of element symbols or
atomic numbers, where an empty entry matches any atom (e.g. "C,,O").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.size = input.cfg.Search.RingSize
			opts.strong = input.cfg.Search.Strong
			P, err := buildPattern(opts)
			if err != nil {
				return err
			}
			graphs, err := input.graphs(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			total := 0
			for n, M := range graphs {
				var matches []chem.Match
				if opts.first {
					if m, ok := chem.SearchFirst(P, M); ok {
						matches = append(matches, m)
					}
				} else {
					matches = chem.Search(P, M)
				}
				for _, m := range matches {
					fmt.Fprintf(out, "graph %d: %s\n", n, m)
				}
				total += len(matches)
			}
			log.WithFields(log.Fields{"pattern": P.Kind, "graphs": len(graphs), "matches": total}).Info("search done")
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "bond", "pattern to search: bond, angle, dihedral, oop, tetra or ring")
	cmd.Flags().Int("size", 6, "ring size (ring pattern only)")
	cmd.Flags().Bool("strong", false, "only report strong rings (ring pattern only)")
	cmd.Flags().StringVarP(&opts.atoms, "atoms", "a", "", "comma-separated element symbols or atomic numbers for the template atoms")
	cmd.Flags().BoolVar(&opts.first, "first", false, "only report the first match of each graph")
	bindFlags(input, cmd, map[string]string{"search.ring_size": "size", "search.strong": "strong"})
	return cmd
}

func buildPattern(opts *searchOptions) (*chem.Pattern, error) {
	var sets []chem.CriteriaSet
	if opts.atoms != "" {
		params, err := parseAtoms(opts.atoms)
		if err != nil {
			return nil, err
		}
		sets = append(sets, chem.AtomCriteria(params...))
	}
	switch strings.ToLower(opts.pattern) {
	case "bond":
		return chem.NewBondPattern(sets...), nil
	case "angle", "bend":
		return chem.NewBendingAnglePattern(sets...), nil
	case "dihedral":
		return chem.NewDihedralPattern(sets...), nil
	case "oop", "outofplane":
		return chem.NewOutOfPlanePattern(sets...), nil
	case "tetra":
		return chem.NewTetraPattern(sets...), nil
	case "ring":
		if opts.size < 3 {
			return nil, errors.Errorf("ring size must be at least 3, got %d", opts.size)
		}
		return chem.NewRingPattern(opts.size, opts.strong, sets...), nil
	}
	return nil, errors.Errorf("unknown pattern %q", opts.pattern)
}

// parseAtoms turns "C,,8" into the parameters for chem.AtomCriteria.
func parseAtoms(s string) ([]interface{}, error) {
	fields := strings.Split(s, ",")
	ret := make([]interface{}, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if n, err := strconv.Atoi(f); err == nil {
			ret[i] = n
			continue
		}
		n, ok := chem.AtomicNumber(f)
		if !ok {
			return nil, errors.Errorf("unknown element %q in --atoms", f)
		}
		ret[i] = n
	}
	return ret, nil
}

func newHydrogensCommand(input *Input) *cobra.Command {
	var charges string
	cmd := &cobra.Command{
		Use:   "hydrogens [blob...]",
		Short: "Saturate each molecular graph with hydrogens and print the new blobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs, err := input.graphs(cmd, args)
			if err != nil {
				return err
			}
			var q []int
			if charges != "" {
				q, err = parseInts(charges)
				if err != nil {
					return errors.Wrap(err, "--charges")
				}
			}
			for n, M := range graphs {
				H, err := M.AddHydrogens(q)
				if err != nil {
					return errors.Wrapf(err, "graph %d", n)
				}
				fmt.Fprintln(cmd.OutOrStdout(), H.Blob())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&charges, "charges", "", "comma-separated formal charges, one per atom (applied to every graph)")
	return cmd
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ret := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i+1)
		}
		ret[i] = n
	}
	return ret, nil
}

func newHalvesCommand(input *Input) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "halves [blob...]",
		Short: "Print the ways each molecular graph can be split in two by cutting bonds",
		Long: `Print the ways each molecular graph can be split in two. With --kind bond, every bond
that splits the graph; with bend, one split per bending angle; with double, every pair
of bonds that split the graph together.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs, err := input.graphs(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for n, M := range graphs {
				switch kind {
				case "bond":
					for _, s := range chem.BondHalves(M) {
						fmt.Fprintf(out, "graph %d: %d-%d %v %v\n", n, s.Hinge[0], s.Hinge[1], s.Part1, s.Part2)
					}
				case "bend":
					for _, s := range chem.BendHalves(M) {
						fmt.Fprintf(out, "graph %d: %d-%d-%d %v\n", n, s.Hinge[0], s.Hinge[1], s.Hinge[2], s.Part)
					}
				case "double":
					for _, s := range chem.DoubleHalves(M) {
						fmt.Fprintf(out, "graph %d: %d-%d %d-%d %v %v\n", n, s.Hinge[0], s.Hinge[1], s.Hinge[2], s.Hinge[3], s.Part1, s.Part2)
					}
				default:
					return errors.Errorf("unknown split kind %q", kind)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "bond", "bond, bend or double")
	return cmd
}

func newArchiveCommand(input *Input) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "archive [blob...]",
		Short: "Write molecular graphs to a blob archive, compressed according to its extension",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			graphs, err := input.graphs(cmd, args)
			if err != nil {
				return err
			}
			W, err := blobio.NewWriter(output, map[string]string{"count": strconv.Itoa(len(graphs))})
			if err != nil {
				return err
			}
			for n, M := range graphs {
				if err := W.Write(M); err != nil {
					W.Close()
					return errors.Wrapf(err, "graph %d", n)
				}
			}
			if err := W.Close(); err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": output, "graphs": len(graphs)}).Info("archive written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive to write (.gz and .zst are compressed)")
	return cmd
}

type perceiveOptions struct {
	cell float64
}

func newPerceiveCommand(input *Input) *cobra.Command {
	opts := &perceiveOptions{}
	cmd := &cobra.Command{
		Use:   "perceive SYMBOL,X,Y,Z...",
		Short: "Build a molecular graph from atomic positions and print its blob",
		Long: `Build a molecular graph from atomic positions, given one atom per argument as
"symbol,x,y,z" in angstrom, and print its blob. With --cell, the positions are taken
to be in a periodic cubic box of that side.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, coords, err := parsePositions(args)
			if err != nil {
				return err
			}
			gopts := chem.GeometryOptions{DoOrders: input.cfg.Geometry.DoOrders}
			if opts.cell > 0 {
				gopts.Cell, err = v3.Cubic(opts.cell)
				if err != nil {
					return errors.Wrap(err, "--cell")
				}
			}
			M, err := chem.FromGeometry(coords, numbers, gopts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), M.Blob())
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.cell, "cell", 0, "side of the periodic cubic box, 0 for no periodicity")
	cmd.Flags().Bool("orders", true, "assign bond orders")
	bindFlags(input, cmd, map[string]string{"geometry.do_orders": "orders"})
	return cmd
}

func parsePositions(args []string) ([]int, *v3.Matrix, error) {
	numbers := make([]int, len(args))
	data := make([]float64, 0, 3*len(args))
	for i, a := range args {
		f := strings.Split(a, ",")
		if len(f) != 4 {
			return nil, nil, errors.Errorf("atom %d: expected symbol,x,y,z, got %q", i+1, a)
		}
		n, ok := chem.AtomicNumber(strings.TrimSpace(f[0]))
		if !ok {
			return nil, nil, errors.Errorf("atom %d: unknown element %q", i+1, f[0])
		}
		numbers[i] = n
		for _, s := range f[1:] {
			x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "atom %d", i+1)
			}
			data = append(data, x)
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "positions")
	}
	return numbers, coords, nil
}
