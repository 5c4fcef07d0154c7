package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-filler/app"
)

var (
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run filler",
		Long:  "Poll the transaction cache and fill pending orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
)
