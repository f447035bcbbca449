package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/i474232898/destination-intel/internal/geo"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// formatValue restricts --format to the supported encodings.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Type() string { return "format" }

func (f *formatValue) Set(s string) error {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case formatJSON, formatYAML:
		*f = formatValue(v)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use %s or %s)", s, formatJSON, formatYAML)
	}
}

// coordinatesValue parses "lat,lon". A nil target means the flag was never set.
type coordinatesValue struct {
	target **geo.Coordinates
}

var _ pflag.Value = coordinatesValue{}

func (c coordinatesValue) String() string {
	if c.target == nil || *c.target == nil {
		return ""
	}
	return (*c.target).String()
}

func (c coordinatesValue) Type() string { return "lat,lon" }

func (c coordinatesValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("invalid longitude %q", parts[1])
	}
	*c.target = &geo.Coordinates{Latitude: lat, Longitude: lon}
	return nil
}
