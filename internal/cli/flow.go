package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewFlowCmd создаёт группу команд для каталога flows.
func NewFlowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Browse flows",
	}

	cmd.AddCommand(
		newFlowListCmd(clientFn, outputFn),
		newFlowShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newFlowListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all flows",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			flows, err := client.ListFlows()
			if err != nil {
				return err
			}

			headers := []string{"FLOW_ID", "TITLE", "COUNTRY", "VERSION", "STEPS"}
			rows := make([][]string, len(flows))
			for i, f := range flows {
				rows[i] = []string{f.FlowID, f.Title, f.Country, f.Version, strconv.Itoa(f.StepCount)}
			}

			out.Print(headers, rows, flows)
			return nil
		},
	}
}

func newFlowShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show FLOW_ID",
		Short: "Show flow with resolved steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			flow, err := client.GetFlow(args[0])
			if err != nil {
				return err
			}

			if !out.jsonMode {
				out.Success(fmt.Sprintf("%s (%s, v%s)", flow.Flow.FlowID, flow.Flow.Country, flow.Flow.Version))
			}

			headers := []string{"ORDER", "STEP_ID", "TITLE"}
			rows := make([][]string, len(flow.Steps))
			for i, s := range flow.Steps {
				rows[i] = []string{stepField(s, "order"), stepField(s, "step_id"), stepField(s, "title")}
			}

			out.Print(headers, rows, flow)
			return nil
		},
	}
}

// stepField достаёт поле шага в виде строки. Числа из JSON приходят как float64.
func stepField(step map[string]any, key string) string {
	switch v := step[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
