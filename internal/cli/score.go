package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"triage-backend/internal/analyses"
	"triage-backend/internal/triage"
)

func newScoreCommand(v *viper.Viper) *cobra.Command {
	var (
		age         int
		pulse       float64
		temperature float64
		symptoms    []string
	)

	cmd := &cobra.Command{
		Use:   "score [complaint...]",
		Short: "Score a chief complaint",
		Example: `  triage score "severe chest pain and shortness of breath" --age 72
  triage score feeling tired --pulse 130 --output json
  triage score "cough for three days" --symptom fever --symptom cough`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, v)
			if err != nil {
				return err
			}

			in := triage.Input{
				Complaint:        strings.Join(args, " "),
				SelectedSymptoms: symptoms,
			}
			if cmd.Flags().Changed("age") {
				in.Age = &age
			}
			vitals := &triage.Vitals{}
			if cmd.Flags().Changed("pulse") {
				vitals.Pulse = &pulse
			}
			if cmd.Flags().Changed("temperature") {
				vitals.Temperature = &temperature
			}
			if vitals.Pulse != nil || vitals.Temperature != nil {
				in.Vitals = vitals
			}

			res, err := analyses.NewService().Assess(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("score complaint: %w", err)
			}

			report := newScoreReport(res)
			if format == outputText {
				return writeReportText(cmd.OutOrStdout(), report)
			}
			return writeStructured(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "patient age in years")
	cmd.Flags().Float64Var(&pulse, "pulse", 0, "pulse in beats per minute")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "body temperature in °F")
	cmd.Flags().StringArrayVar(&symptoms, "symptom", nil, "selected symptom tag (repeatable)")
	cmd.Flags().StringP("output", "o", outputText, "output format: text, json, yaml")
	return cmd
}
