package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <template-id>",
	Short: "Write a template as a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStores(); err != nil {
			return err
		}
		text, _, err := services.ExportPromptTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if exportOut == "" || exportOut == "-" {
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		}
		return os.WriteFile(exportOut, []byte(text), 0o644)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create a template from a YAML document (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		if err := openStores(); err != nil {
			return err
		}
		t, err := services.ImportPromptTemplate(cmd.Context(), string(data))
		if err != nil {
			return err
		}
		logger.Log.Info("Template imported", zap.String("id", t.ID), zap.String("name", t.Name))
		fmt.Fprintln(cmd.OutOrStdout(), t.ID)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "file to write (default: stdout)")

	rootCmd.AddCommand(exportCmd, importCmd)
}
