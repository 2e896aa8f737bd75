package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/gregjones/httpcache"
	"github.com/spf13/cobra"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/archive"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/points"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
	"github.com/radekwlsk/go-tsp/gotsp/gotsptransport"
)

var solveOpts struct {
	points    string
	count     int
	max       int
	seed      int64
	algorithm string
	maxTime   time.Duration
	workers   int
	params    string
	remote    string
	archive   string
	json      bool
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Plan a tour over loaded or generated points",
	Long: `Plans a tour over points read from a points file or URL, or over randomly
generated points when no source is given. Interrupting a run stops the colony
at the next iteration and reports the best tour found so far.`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveOpts.points, "points", "", "Points file path or http(s) URL")
	f.IntVar(&solveOpts.count, "count", 0, "Number of points to generate without --points, 0 draws 1 to 50")
	f.IntVar(&solveOpts.max, "max", tour.DefaultMaxCoordinate, "Upper bound of generated coordinates")
	f.Int64Var(&solveOpts.seed, "seed", 0, "Random seed for generated points and the colony, 0 uses the clock")
	f.StringVar(&solveOpts.algorithm, "algorithm", planner.Default, "Algorithm (greedy, ant-colony)")
	f.DurationVar(&solveOpts.maxTime, "max-time", 0, "Colony time budget, overrides the default")
	f.IntVar(&solveOpts.workers, "workers", 0, "Colony worker count, overrides the default")
	f.StringVar(&solveOpts.params, "params", "", "Colony params as a JSON object")
	f.StringVar(&solveOpts.remote, "remote", "", "Plan on a running gotsp server instead of locally")
	f.StringVar(&solveOpts.archive, "archive", "", "Archive the plan in this SQLite file")
	f.BoolVar(&solveOpts.json, "json", false, "Print the plan as JSON")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pts, err := loadPoints(ctx, httpcache.NewMemoryCacheTransport().Client())
	if err != nil {
		return err
	}

	params, err := solveParams(cmd)
	if err != nil {
		return err
	}
	tc := tour.Configuration{
		Algorithm: solveOpts.algorithm,
		Points:    pts,
		Params:    params,
	}

	s, closeService, err := solveService()
	if err != nil {
		return err
	}
	defer closeService()

	plan, err := s.TourPlan(ctx, tc)
	if err != nil {
		return err
	}
	return printPlan(cmd, plan, solveOpts.json)
}

func loadPoints(ctx context.Context, client *http.Client) ([]tour.Point, error) {
	if solveOpts.points != "" {
		return points.NewSource(solveOpts.points, client).Points(ctx)
	}
	seed := solveOpts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := tour.NewGenerator(rand.New(rand.NewSource(seed)), solveOpts.max)
	if err != nil {
		return nil, err
	}
	return g.Generate(solveOpts.count)
}

// solveParams merges --params with the colony flags that were set explicitly.
func solveParams(cmd *cobra.Command) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if solveOpts.params != "" {
		if err := json.Unmarshal([]byte(solveOpts.params), &params); err != nil {
			return nil, fmt.Errorf("failed to parse --params: %w", err)
		}
	}
	if solveOpts.algorithm != planner.AntColony {
		return params, nil
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		params["seed"] = solveOpts.seed
	}
	if flags.Changed("max-time") {
		params["maxTime"] = solveOpts.maxTime.String()
	}
	if flags.Changed("workers") {
		params["workers"] = solveOpts.workers
	}
	return params, nil
}

func solveService() (gotspservice.Service, func(), error) {
	if solveOpts.remote != "" {
		s, err := gotsptransport.MakeHTTPClient(solveOpts.remote, nil)
		return s, func() {}, err
	}

	var options []gotspservice.Option
	closer := func() {}
	if solveOpts.archive != "" {
		store, err := archive.Open(solveOpts.archive)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, gotspservice.WithArchive(store))
		closer = func() { store.Close() }
	}
	return gotspservice.New(log.With(logger, "component", "solve"), options...), closer, nil
}

func printPlan(cmd *cobra.Command, plan tour.Plan, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	fmt.Fprintln(out, plan.Tour)
	fmt.Fprintf(out, "id: %s\nalgorithm: %s\n", plan.ID, plan.Algorithm)
	if plan.StopReason != "" {
		fmt.Fprintf(out, "iterations: %d (%s)\nseed: %d\n", plan.Iterations, plan.StopReason, plan.Seed)
	}
	fmt.Fprintf(out, "took: %s\n", plan.Elapsed)
	return nil
}
