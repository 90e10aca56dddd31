package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cris-labs/cris/internal/intake"
	"github.com/cris-labs/cris/internal/mapspec"
)

var (
	addFile string
	addLat  float64
	addLon  float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new customer and score churn risk",
	Long:  "Reads the intake fields from a JSON or YAML file, scores the new customer against the prediction server, and appends the record to the roster. Nothing is written when scoring fails.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fields, err := readFields(addFile)
		if err != nil {
			return err
		}

		var location *mapspec.Coordinate
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			location = &mapspec.Coordinate{Lat: addLat, Lon: addLon}
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}

		svc := intake.NewService(e.Store, e.Predictor, time.Duration(cfg.Predictor.TimeoutSecs)*time.Second)
		c, err := svc.Register(ctx, *fields, location)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "registered %s: predicted %s (probability %.2f)\n",
			c.ID, c.PredictedLabel, *c.PredictionProbability)
		return nil
	},
}

func readFields(path string) (*intake.FieldSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read fields file")
	}

	var fields intake.FieldSet
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return nil, eris.Wrap(err, "parse fields yaml")
		}
	default:
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, eris.Wrap(err, "parse fields json")
		}
	}
	return &fields, nil
}

func init() {
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "JSON or YAML file with the intake fields")
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "customer latitude")
	addCmd.Flags().Float64Var(&addLon, "lon", 0, "customer longitude")
	addCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(addCmd)
}
