package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version = "0.1.0"
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "clearscan",
		Short: "File threat scanner and penetration test agent",
		Long:  "Clearwave security assessment agent: scan uploaded files for threats, run payload-driven penetration tests, and keep an append-only security audit trail.",
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "./reports", "Output directory for result files")
	rootCmd.PersistentFlags().String("audit-dir", "security_logs", "Directory for the append-only audit logs")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("audit-dir", rootCmd.PersistentFlags().Lookup("audit-dir"))

	// Environment variable support (CLEARSCAN_OUTPUT, etc.)
	viper.SetEnvPrefix("CLEARSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newPentestCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
