// poolctl считает вероятности пула без сервера и проверяет записи аудита спинов.
package main

import (
	"os"

	"prize_pool/pkg/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "poolctl",
		Short:         "Prize pool probability tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("engine-config", "", "path to engine YAML (default: $ENGINE_CONFIG or config.yaml)")

	root.AddCommand(
		newAllocateCmd(),
		newSelectCmd(),
		newAnalyzeCmd(),
		newReplayCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("poolctl failed", "error", err)
		os.Exit(1)
	}
}
