package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"smartcart/internal/plan"
	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/store"
	"smartcart/internal/travel"
	"smartcart/internal/trip"
)

// requestFile is the YAML document read by "planner optimize".
type requestFile struct {
	trip.Request `yaml:",inline"`

	Rates  *travel.Rates `yaml:"rates"`
	Stores []store.Store `yaml:"stores"`
}

func loadRequestFile(path string) (*requestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f requestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Stores) == 0 {
		return nil, fmt.Errorf("%s: no stores listed", path)
	}
	return &f, nil
}

func newOptimizeCmd(c *cli) *cobra.Command {
	var (
		file        string
		pricesFile  string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the cheapest plan for a request file",
		Example: `  planner optimize -f request.yaml
  planner optimize -f request.yaml --prices prices.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequestFile(file)
			if err != nil {
				return err
			}

			ref := pricing.DefaultReference()
			if pricesFile != "" {
				if ref, err = pricing.LoadReferenceFile(pricesFile); err != nil {
					return err
				}
			}

			rates := travel.DefaultRates()
			if req.Rates != nil {
				rates = *req.Rates
			}

			searcher := plan.NewSearcher(
				plan.NewEvaluator(route.NewHaversineRouter(), rates, c.log),
				concurrency,
				c.log,
			)
			svc := trip.NewService(
				trip.NewInMemoryRepository(),
				store.NewStaticLocator(req.Stores),
				pricing.NewService(nil, ref, c.log),
				searcher,
				c.log,
			)

			res, err := svc.Optimize(cmd.Context(), "cli", req.Request)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request YAML file")
	cmd.Flags().StringVar(&pricesFile, "prices", "", "reference price YAML file replacing the built-in table")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "subsets evaluated in parallel")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
