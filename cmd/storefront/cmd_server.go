package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/publisher"
)

// storefront serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		store := cache.Connect(ctx)
		if c, ok := store.(io.Closer); ok {
			defer c.Close()
		}

		pub := publisher.New(config.KafkaBrokers(), config.KafkaTopic())
		defer func() {
			if err := pub.Close(); err != nil {
				logger.Warn("publisher: close failed", "error", err)
			}
		}()

		k := kernel.NewHTTPKernel(kernel.Deps{DB: db, Cache: store, Publisher: pub})
		return server.Start(ctx, k.Handler(), config.AppPort())
	},
}

// storefront route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout(), kernel.NewHTTPKernel(kernel.Deps{}))
	},
}

func printRoutes(out io.Writer, k *kernel.HTTPKernel) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range k.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
