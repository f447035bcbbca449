package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the geocode warm-up scheduler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Server == nil {
				return errors.New("server is not configured")
			}
			return deps.Server.Run(cmd.Context())
		},
	}
}
