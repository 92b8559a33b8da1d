package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearwave-security/clearscan-agent/internal/audit"
	"github.com/clearwave-security/clearscan-agent/internal/pentest"
	"github.com/clearwave-security/clearscan-agent/internal/schema"
	"github.com/clearwave-security/clearscan-agent/pkg/utils"
)

func newPentestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pentest",
		Short:   "Run a payload-driven penetration test against a target string",
		Example: `clearscan pentest --target "admin' OR '1'='1'--" --type comprehensive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := viper.GetString("pentest.target")
			if target == "" {
				return errors.New("please provide --target")
			}

			testType, err := schema.ParseTestType(viper.GetString("pentest.type"))
			if err != nil {
				return err
			}

			logger, err := audit.New(viper.GetString("audit-dir"))
			if err != nil {
				return err
			}

			event := schema.NewEvent("SECURITY_SCAN",
				"Penetration test initiated: "+testType.String(), "INFO")
			logger.LogEvent(event)

			fmt.Printf("Running %s test\n", testType.DisplayName())

			engine := pentest.NewEngine()
			res := engine.Run(target, testType)
			logger.LogTest(res)

			file, err := utils.SavePentestResult(res, viper.GetString("output"))
			if err != nil {
				return err
			}

			fmt.Printf("Test complete. Results saved to %s\n", file)
			fmt.Print(res.Summary())
			return nil
		},
	}

	cmd.Flags().String("target", "", "Target string to test (field value, URL, or file path)")
	cmd.Flags().String("type", "comprehensive", "Test type: sql_injection, xss, command_injection, file_upload, authentication, comprehensive")
	_ = viper.BindPFlag("pentest.target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("pentest.type", cmd.Flags().Lookup("type"))

	return cmd
}
