package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/destination-intel/internal/aggregator"
	"github.com/i474232898/destination-intel/internal/geo"
	"github.com/i474232898/destination-intel/internal/obs"
)

type lookupOptions struct {
	name   string
	lat    float64
	lon    float64
	origin *geo.Coordinates
	mode   string
	format formatValue
}

func newLookupCommand(deps Dependencies) *cobra.Command {
	opts := lookupOptions{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Aggregate destination data once and print it.",
		Example: "  destination-intel lookup --name Boston --origin 40.7128,-74.0060\n" +
			"  destination-intel lookup --lat 48.8566 --lon 2.3522 --mode train --format yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Aggregator == nil {
				return errors.New("aggregator is not configured")
			}

			req, err := opts.request(cmd)
			if err != nil {
				return err
			}

			ctx := obs.WithRequestID(cmd.Context(), uuid.NewString())
			res, err := deps.Aggregator.Resolve(ctx, req)
			if err != nil {
				if errors.Is(err, aggregator.ErrInvalidInput) {
					return &exitError{code: 2, err: err}
				}
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "Destination name to geocode.")
	flags.Float64Var(&opts.lat, "lat", 0, "Destination latitude; requires --lon.")
	flags.Float64Var(&opts.lon, "lon", 0, "Destination longitude; requires --lat.")
	flags.Var(coordinatesValue{target: &opts.origin}, "origin", "Travel origin as lat,lon.")
	flags.StringVar(&opts.mode, "mode", string(geo.ModeCar), "Travel mode: car, train or flight.")
	flags.VarP(&opts.format, "format", "f", "Output format: json or yaml.")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}

func (o lookupOptions) request(cmd *cobra.Command) (aggregator.Request, error) {
	flags := cmd.Flags()
	var query aggregator.PlaceQuery
	if flags.Changed("name") {
		name := o.name
		query.RawName = &name
	}
	if flags.Changed("lat") {
		query.Coordinates = &geo.Coordinates{Latitude: o.lat, Longitude: o.lon}
	}
	if query.RawName == nil && query.Coordinates == nil {
		return aggregator.Request{}, usageError("either --name or --lat/--lon is required")
	}

	return aggregator.Request{
		Query:  query,
		Origin: o.origin,
		Mode:   geo.Mode(o.mode),
	}, nil
}

func render(out io.Writer, format formatValue, res aggregator.Result) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
