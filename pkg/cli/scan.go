package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearwave-security/clearscan-agent/internal/audit"
	"github.com/clearwave-security/clearscan-agent/internal/scanners"
	"github.com/clearwave-security/clearscan-agent/internal/schema"
	"github.com/clearwave-security/clearscan-agent/pkg/utils"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a file for security threats",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("file")
			if path == "" {
				return errors.New("please provide --file")
			}

			logger, err := audit.New(viper.GetString("audit-dir"))
			if err != nil {
				return err
			}

			sessionID := uuid.NewString()
			fmt.Printf("Scanning %s\n", path)

			scanner := scanners.NewFileScanner()
			res := scanner.ScanFile(path)
			res.AddMetadata("session_id", sessionID)

			// Every threat goes to the detection log with the file as
			// context, then the scan itself is recorded.
			for _, threat := range res.Threats {
				logger.LogThreat(threat, res.FileName)
			}
			logger.LogScan(res)

			if res.IsSafe() {
				event := schema.NewEvent("FILE_UPLOAD",
					"File scanned and cleared: "+res.FileName, "INFO")
				event.SessionID = sessionID
				logger.LogEvent(event)
			} else {
				fmt.Printf("File blocked: %s (%s)\n", res.FileName, res.Status)
			}

			file, err := utils.SaveScanResult(res, viper.GetString("output"))
			if err != nil {
				return err
			}

			fmt.Printf("Scan complete. Results saved to %s\n", file)
			fmt.Print(res.Summary())
			return nil
		},
	}

	cmd.Flags().String("file", "", "Path of the file to scan")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))

	return cmd
}
