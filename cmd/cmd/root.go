package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "nwfsread"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read-only forensic reader for NetWare NWFS-286/386 volumes",
	}
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineInspectCommand())
	rootCmd.AddCommand(DefineShellCommand())
	rootCmd.AddCommand(DefineMountCommand())
	rootCmd.AddCommand(DefineExportCommand())

	return rootCmd.Execute()
}
