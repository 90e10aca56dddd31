package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cris-labs/cris/internal/filter"
	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/internal/scorecache"
)

var (
	mapProbability bool
	mapCluster     bool
	mapFocus       string
	mapStatuses    []string
	mapFormat      string
	mapOut         string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Build a map description of the roster",
	Long:  "Filters the roster by status, assigns marker colors and popups, and writes the result as JSON, YAML, or a self-contained Leaflet HTML page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}

		statuses, err := parseStatuses(mapStatuses)
		if err != nil {
			return err
		}
		records := filter.ByStatus(e.Store.All(), statuses)

		if mapProbability {
			cache, err := e.openCache(ctx)
			if err != nil {
				return eris.Wrap(err, "open score cache")
			}
			e.Cache = cache
			defer e.Close()

			scorer := scorecache.NewScorer(
				e.Predictor,
				cache,
				time.Duration(cfg.ScoreCache.TTLHours)*time.Hour,
				cfg.ScoreCache.Concurrency,
			)
			records, err = scorer.ScoreAll(ctx, records)
			if err != nil {
				return eris.Wrap(err, "score roster")
			}
		}

		opts := mapspec.Options{
			ShowProbability: mapProbability,
			Cluster:         mapCluster,
			Avatars:         e.Avatars,
		}
		if mapFocus != "" {
			focus, err := parseFocus(mapFocus)
			if err != nil {
				return err
			}
			opts.Focus = focus
		}

		spec := mapspec.Build(records, opts)

		out := cmd.OutOrStdout()
		if mapOut != "" {
			f, err := os.Create(mapOut)
			if err != nil {
				return eris.Wrap(err, "create output file")
			}
			defer f.Close()
			out = f
		}

		return writeSpec(out, spec, mapFormat)
	},
}

func parseStatuses(names []string) (filter.StatusSet, error) {
	if len(names) == 0 {
		return filter.NewStatusSet(model.StatusStayed, model.StatusJoined), nil
	}
	var statuses []model.Status
	for _, n := range names {
		s := model.Status(n)
		if !s.Valid() {
			return nil, eris.Errorf("unknown status %q", n)
		}
		statuses = append(statuses, s)
	}
	return filter.NewStatusSet(statuses...), nil
}

// parseFocus accepts "lat,lon".
func parseFocus(s string) (*mapspec.Coordinate, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, eris.Errorf("invalid focus %q, expected lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid focus latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid focus longitude %q", parts[1])
	}
	return &mapspec.Coordinate{Lat: lat, Lon: lon}, nil
}

func writeSpec(w io.Writer, spec mapspec.MapSpec, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(spec), "encode map spec")
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return eris.Wrap(enc.Encode(spec), "encode map spec")
	case "html":
		return mapspec.WriteHTML(w, "Customer Map", spec)
	default:
		return eris.Errorf("unknown format %q, expected json, yaml, or html", format)
	}
}

func init() {
	mapCmd.Flags().BoolVar(&mapProbability, "probability", false, "color markers by churn prediction instead of status")
	mapCmd.Flags().BoolVar(&mapCluster, "cluster", false, "group nearby markers into clusters")
	mapCmd.Flags().StringVar(&mapFocus, "focus", "", "center the map on lat,lon")
	mapCmd.Flags().StringSliceVar(&mapStatuses, "status", nil, "statuses to include (default Stayed,Joined)")
	mapCmd.Flags().StringVar(&mapFormat, "format", "json", "output format: json, yaml, or html")
	mapCmd.Flags().StringVarP(&mapOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(mapCmd)
}
