package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwardwell7077/charlie-reporting-sub002/api"
	"github.com/jwardwell7077/charlie-reporting-sub002/sim"
)

var (
	configPath string
	logLevel   string

	// Per-command overrides; zero values defer to the config file.
	seed      int64
	outputDir string
	roster    string
	datasets  []string
	rowCount  int
	addr      string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "callsim",
	Short: "Synthetic call-center CSV dataset generator",
}

// loadConfig resolves configuration: file (if any), then env, then the
// explicit CLI flag overrides.
func loadConfig() (*sim.Config, error) {
	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if rootCmd.PersistentFlags().Changed("seed") {
		cfg.Seed = seed
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if roster != "" {
		cfg.RosterPath = roster
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService wires a Service from resolved configuration, fatal on
// configuration errors.
func newService() *sim.Service {
	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	svc, err := sim.NewService(cfg)
	if err != nil {
		logrus.Fatalf("Failed to construct service: %v", err)
	}
	return svc
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one CSV file per requested dataset",
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		rows := sim.DefaultRows()
		if rowCount > 0 {
			rows = sim.AllSame(rowCount)
		}
		files, err := svc.GenerateMany(datasets, rows)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		for _, f := range files {
			fmt.Printf("%s\t%d bytes\n", f.Name, f.Size)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		svc, err := sim.NewService(cfg)
		if err != nil {
			logrus.Fatalf("Failed to construct service: %v", err)
		}
		server := api.NewServer(svc)
		logrus.Infof("Listening on %s, output dir %s, seed %d", cfg.ListenAddr, cfg.OutputDir, cfg.Seed)
		if err := http.ListenAndServe(cfg.ListenAddr, server.Handler()); err != nil {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated CSV files",
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		files, err := svc.ListFiles()
		if err != nil {
			logrus.Fatalf("List failed: %v", err)
		}
		for _, f := range files {
			fmt.Printf("%s\t%d bytes\n", f.Name, f.Size)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all generated CSV files",
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		if err := svc.Reset(); err != nil {
			logrus.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("storage cleared")
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for random dataset generation")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "", "Output directory for generated CSVs")
	rootCmd.PersistentFlags().StringVar(&roster, "roster", "", "Path to roster CSV (default: embedded roster)")

	generateCmd.Flags().StringSliceVar(&datasets, "datasets", datasetNames(), "Comma-separated dataset names")
	generateCmd.Flags().IntVar(&rowCount, "rows", 0, "Rows per dataset (0 = generator default)")

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	rootCmd.AddCommand(generateCmd, serveCmd, listCmd, resetCmd)
}

// datasetNames returns every dataset name in canonical order, used as
// the generate command's default.
func datasetNames() []string {
	names := make([]string, 0, len(sim.Datasets))
	for _, d := range sim.Datasets {
		names = append(names, string(d))
	}
	return names
}
