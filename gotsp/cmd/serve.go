package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/radekwlsk/go-tsp/gotsp/gotspendpoint"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/archive"
	"github.com/radekwlsk/go-tsp/gotsp/gotsptransport"
)

var serveOpts struct {
	httpAddr string
	archive  string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP planning service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.httpAddr, "http-addr", ":8080", "HTTP address to listen on")
	serveCmd.Flags().StringVar(&serveOpts.archive, "archive", "", "Archive plans in this SQLite file and serve them under /api/runs/")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger.Log("msg", "gotsp service started")
	defer logger.Log("msg", "finished")

	var options []gotspservice.Option
	if serveOpts.archive != "" {
		store, err := archive.Open(serveOpts.archive)
		if err != nil {
			return err
		}
		defer store.Close()
		options = append(options, gotspservice.WithArchive(store))
		logger.Log("archive", store.Path())
	}

	var s gotspservice.Service
	{
		s = gotspservice.New(logger, options...)
	}

	var h http.Handler
	{
		endpoints := gotspendpoint.New(s, logger)
		h = gotsptransport.MakeHTTPHandler(endpoints, log.With(logger, "component", "HTTP"))
	}

	errs := make(chan error, 2)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	go func() {
		logger.Log("transport", "HTTP", "addr", serveOpts.httpAddr)
		errs <- http.ListenAndServe(serveOpts.httpAddr, h)
	}()

	logger.Log("exit", <-errs)
	return nil
}
