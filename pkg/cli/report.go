package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearwave-security/clearscan-agent/internal/audit"
	reportpkg "github.com/clearwave-security/clearscan-agent/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Generate the security audit report from the audit logs",
		Example: "clearscan report --format text,file",
		RunE:    runReport,
	}

	cmd.Flags().String("format", "text", "Output formats: text (print), file (write report.txt to output dir)")
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	formats := strings.Split(viper.GetString("report.format"), ",")
	for i := range formats {
		formats[i] = strings.TrimSpace(strings.ToLower(formats[i]))
	}

	logger, err := audit.New(viper.GetString("audit-dir"))
	if err != nil {
		return err
	}
	stats := logger.Statistics()

	if contains(formats, "text") {
		text, err := reportpkg.Generate(stats)
		if err != nil {
			return err
		}
		fmt.Print(text)
	}

	if contains(formats, "file") {
		path, err := reportpkg.WriteFile(stats, viper.GetString("output"))
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
	}

	return nil
}

func contains(arr []string, v string) bool {
	for _, x := range arr {
		if x == v {
			return true
		}
	}
	return false
}
