package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewProgressCmd создаёт группу команд для прогресса по flow.
func NewProgressCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Manage progress",
	}

	cmd.AddCommand(
		newProgressShowCmd(clientFn, outputFn),
		newProgressSaveCmd(clientFn, outputFn),
		newProgressClearCmd(clientFn, outputFn),
	)

	return cmd
}

func newProgressShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show FLOW_ID",
		Short: "Show completed steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			p, err := client.GetProgress(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(p.CompletedSteps))
			for i, s := range p.CompletedSteps {
				rows[i] = []string{p.FlowID, s}
			}

			out.Print([]string{"FLOW_ID", "COMPLETED_STEP"}, rows, p)
			return nil
		},
	}
}

func newProgressSaveCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var steps []string
	var documents []string

	cmd := &cobra.Command{
		Use:   "save FLOW_ID",
		Short: "Overwrite completed steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			p := Progress{
				FlowID:         args[0],
				CompletedSteps: steps,
			}
			if p.CompletedSteps == nil {
				p.CompletedSteps = []string{}
			}

			if len(documents) > 0 {
				docs, err := parseDocuments(documents)
				if err != nil {
					return err
				}
				p.Documents = docs
			}

			status, err := client.SaveProgress(p)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Progress %s: %s", status.Status, status.FlowID))
			if out.jsonMode {
				out.JSON(status)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&steps, "step", nil, "Completed step_id (repeatable)")
	cmd.Flags().StringSliceVar(&documents, "doc", nil, "Document checklist entry NAME=true|false (repeatable)")

	return cmd
}

func newProgressClearCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "clear FLOW_ID",
		Short: "Reset progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			status, err := client.DeleteProgress(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Progress %s: %s", status.Status, status.FlowID))
			if out.jsonMode {
				out.JSON(status)
			}
			return nil
		},
	}
}

// parseDocuments разбирает записи вида "passport=true".
// Запись без "=" считается собранным документом.
func parseDocuments(entries []string) (map[string]bool, error) {
	docs := make(map[string]bool, len(entries))
	for _, e := range entries {
		name, value, found := strings.Cut(e, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid document entry: %q", e)
		}
		if !found {
			docs[name] = true
			continue
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1":
			docs[name] = true
		case "false", "no", "0":
			docs[name] = false
		default:
			return nil, fmt.Errorf("invalid value for document %q: %s", name, value)
		}
	}
	return docs, nil
}
