package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/points"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

var generateOpts struct {
	count int
	seed  int64
	max   int
	out   string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write random unique points in the points file format",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&generateOpts.count, "count", 0, "Number of points, 0 draws 1 to 50")
	f.Int64Var(&generateOpts.seed, "seed", 0, "Random seed, 0 uses the clock")
	f.IntVar(&generateOpts.max, "max", tour.DefaultMaxCoordinate, "Upper bound of coordinates")
	f.StringVar(&generateOpts.out, "out", "", "Output file, standard output when empty")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	seed := generateOpts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := tour.NewGenerator(rand.New(rand.NewSource(seed)), generateOpts.max)
	if err != nil {
		return err
	}
	pts, err := g.Generate(generateOpts.count)
	if err != nil {
		return err
	}

	if generateOpts.out == "" {
		return points.Write(cmd.OutOrStdout(), pts)
	}
	if err := points.Save(generateOpts.out, pts); err != nil {
		return err
	}
	logger.Log("msg", "points written", "file", generateOpts.out, "count", len(pts), "seed", seed)
	return nil
}
