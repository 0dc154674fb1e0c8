package main

import (
	"github.com/spf13/cobra"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/client"
	"SIPPlanner/internal/console"
	"SIPPlanner/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive SIP calculator",
	RunE:  runTUI,
}

var (
	projectAmount string
	projectHTML   string
	projectPDF    string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print the plan and the future value projection for one monthly amount",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVar(&projectAmount, "amount", "", "monthly investment amount (minimum 1000)")
	projectCmd.Flags().StringVar(&projectHTML, "html", "", "also write the chart as an HTML page")
	projectCmd.Flags().StringVar(&projectPDF, "pdf", "", "also write the chart as a PDF")
	_ = projectCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(tuiCmd, projectCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(true)
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	c := client.NewBackendClient(cfg.Backend.BaseURL, cfg.Proxy, log)
	return tui.Run(ctx, c, log)
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var drawers []chart.Drawer
	if projectHTML != "" {
		drawers = append(drawers, chart.NewHTMLFile(projectHTML))
	}
	if projectPDF != "" {
		drawers = append(drawers, chart.NewPDFFile(projectPDF))
	}

	ctx, stop := signalContext()
	defer stop()

	c := client.NewBackendClient(cfg.Backend.BaseURL, cfg.Proxy, log)
	return console.Project(ctx, c, cmd.OutOrStdout(), projectAmount, log, drawers...)
}
