package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/endpoint"
	"github.com/hamed0406/healthprobe/internal/probe"
)

func newCheckCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check [url...]",
		Short: "Run the configured checks once and exit 0/1 by verdict",
		Long: `Evaluates either the endpoints from the config file or the URLs given
as arguments (with default settings). Exits 0 when healthy, 1 otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := buildCheckSet(args)
			if err != nil {
				return err
			}
			if timeout > 0 {
				set.UseTimeout(timeout)
			}

			ev := probe.NewEvaluator(zap.NewNop(), nil)
			verdict := ev.Evaluate(cmd.Context(), set)

			if rootFlags.jsonOutput {
				_ = json.NewEncoder(os.Stdout).Encode(verdict)
			} else if verdict.Healthy {
				fmt.Println("healthy")
			} else {
				fmt.Println("unhealthy:", verdict.Description)
			}
			if !verdict.Healthy {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-endpoint timeout override")
	return cmd
}

func buildCheckSet(urls []string) (*endpoint.CheckSet, error) {
	if len(urls) > 0 {
		return endpoint.FromURLs(urls...), nil
	}
	if rootFlags.configFile == "" {
		return nil, fmt.Errorf("either URLs or --config is required")
	}
	cfg, err := config.Load(rootFlags.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.CheckSet(), nil
}
