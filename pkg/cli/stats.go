package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearwave-security/clearscan-agent/internal/audit"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate security statistics from the audit logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := audit.New(viper.GetString("audit-dir"))
			if err != nil {
				return err
			}
			fmt.Print(logger.Statistics().Summary())
			return nil
		},
	}
}
