// Simplify CLI — инструмент командной строки для каталога flows,
// подбора flow по анкете и прогресса через HTTP API.
//
// Использование:
//
//	simplify [--api-url URL] [--json] <command> [subcommand] [flags]
//
// Команды:
//
//	flow         Каталог flows
//	recommend    Подбор flow по анкете
//	eligibility  Вопросы анкеты
//	progress     Прогресс по flow
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Simplify/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "simplify",
		Short:         "Simplify CLI — relocation checklists for Slovakia",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultURL := os.Getenv("SIMPLIFY_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewFlowCmd(clientFn, outputFn),
		cli.NewRecommendCmd(clientFn, outputFn),
		cli.NewEligibilityCmd(clientFn, outputFn),
		cli.NewProgressCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
