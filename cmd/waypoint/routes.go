package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/router"
)

func routesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long:  `Load the routes manifest and print every registration in match order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				cfg, err := waypoint.LoadConfig()
				if err != nil {
					return err
				}
				file = cfg.RoutesFile
			}

			rt, err := buildRouter(file, newMemStore(), logger.NewNope())
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), rt.Routes())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Routes manifest (defaults to WAYPOINT_ROUTES_FILE or the built-in one)")

	return cmd
}

func printRoutes(w io.Writer, routes []router.RouteInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tHANDLER")
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, r.Definition, r.Handler)
	}
	return tw.Flush()
}
