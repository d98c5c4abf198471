package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewRecommendCmd создаёт команду подбора flow по анкете.
func NewRecommendCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var req IntakeRequest

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a flow for intake answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			rec, err := client.Recommend(req)
			if err != nil {
				return err
			}

			flowID := rec.FlowID
			if flowID == "" {
				flowID = "-"
			}

			out.Print(
				[]string{"FLOW_ID", "CONFIDENCE", "STEPS", "REASON"},
				[][]string{{flowID, rec.Confidence, strconv.Itoa(rec.StepCount), rec.Reason}},
				rec,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Nationality, "nationality", "", "EU or NON_EU")
	cmd.Flags().StringVar(&req.EntryContext, "entry", "", "FIRST_ENTRY or IN_COUNTRY")
	cmd.Flags().StringVar(&req.Purpose, "purpose", "", "EMPLOYMENT, BUSINESS, STUDY or FAMILY")
	cmd.Flags().StringVar(&req.City, "city", "BRATISLAVA", "BRATISLAVA or OTHER")

	return cmd
}

// NewEligibilityCmd создаёт команду вывода вопросов анкеты.
func NewEligibilityCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility",
		Short: "Show intake questions and allowed answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			e, err := client.Eligibility()
			if err != nil {
				return err
			}

			headers := []string{"DIMENSION", "VALUE", "LABEL"}
			var rows [][]string
			for _, d := range e.Dimensions {
				for _, opt := range d.Options {
					rows = append(rows, []string{d.ID, opt.Value, opt.Label})
				}
			}

			out.Print(headers, rows, e)
			return nil
		},
	}
}
