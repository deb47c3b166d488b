package command

import (
	commandHandler "orgchart/internal/command/handler"
	mongoRepo "orgchart/internal/database/mongodb/repository"

	"github.com/google/wire"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewImportHandler,
	wire.Bind(new(commandHandler.ProfileWriter), new(*mongoRepo.ProfileRepository)),
)

type Command struct {
	importCommandHandler *commandHandler.ImportHandler
}

// NewCommand .
func NewCommand(
	importCommandHandler *commandHandler.ImportHandler,
) *Command {
	return &Command{
		importCommandHandler: importCommandHandler,
	}
}

// Register 掛上子命令；chart 為離線命令，不經過 wire 建立資料庫連線
func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error), newLogger func() *zap.Logger) {
	importCmd := &cobra.Command{
		Use:          "import",
		Short:        "upsert a JSON roster of raw profiles into MongoDB",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.importCommandHandler.Import(cmd, args)
		},
	}
	importCmd.Flags().StringP("file", "f", "", "roster JSON file")

	removeCmd := &cobra.Command{
		Use:          "remove",
		Short:        "delete one profile from MongoDB by user id",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.importCommandHandler.Remove(cmd, args)
		},
	}
	removeCmd.Flags().StringP("user", "u", "", "user id to delete")

	rootCmd.AddCommand(importCmd, removeCmd, NewChartCommand(newLogger))
}

// NewChartCommand 離線建樹並以 JSON 輸出查詢結果
func NewChartCommand(newLogger func() *zap.Logger) *cobra.Command {
	chartCmd := &cobra.Command{
		Use:          "chart",
		Short:        "build the org chart from a roster file and print a view as JSON",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commandHandler.NewChartHandler(newLogger()).Chart(cmd, args)
		},
	}
	chartCmd.Flags().StringP("file", "f", "", "roster JSON file")
	chartCmd.Flags().StringP("user", "u", "", "user id to query")
	chartCmd.Flags().String("view", "full", "full | related | directs | expanded | trace")
	return chartCmd
}
