package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pathnottaken-go/internal/model"
)

type simulateFlags struct {
	context  string
	chosen   string
	notTaken string
	horizon  string
	pdf      string
}

func newSimulateCmd(app *App) *cobra.Command {
	var f simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a counterfactual analysis and print the JSON result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, app, f)
		},
	}

	cmd.Flags().StringVar(&f.context, "context", "", "What decision did you make")
	cmd.Flags().StringVar(&f.chosen, "chosen", "", "The path you took")
	cmd.Flags().StringVar(&f.notTaken, "not-taken", "", "The paths you did not take")
	cmd.Flags().StringVar(&f.horizon, "horizon", string(model.HorizonOneYear), "Time horizon: "+horizonList())
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "Also write the report as PDF to this path")
	_ = cmd.MarkFlagRequired("context")
	_ = cmd.MarkFlagRequired("chosen")
	_ = cmd.MarkFlagRequired("not-taken")

	return cmd
}

func runSimulate(cmd *cobra.Command, app *App, f simulateFlags) error {
	horizon := model.TimeHorizon(f.horizon)
	if !horizon.Valid() {
		return fmt.Errorf("unknown horizon %q, expected one of %s", f.horizon, horizonList())
	}

	req := &model.SimulationRequest{
		DecisionContext: f.context,
		ChosenPath:      f.chosen,
		PathsNotTaken:   f.notTaken,
		TimeHorizon:     horizon,
	}

	payload, err := app.Simulator.Simulate(cmd.Context(), req)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	if _, err := cmd.OutOrStdout().Write(pretty.Bytes()); err != nil {
		return err
	}

	if f.pdf == "" {
		return nil
	}

	result, err := model.ValidateResult(payload)
	if err != nil {
		return fmt.Errorf("result cannot be exported: %w", err)
	}
	if err := writePDF(f.pdf, result, app.now()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "PDF written to %s\n", f.pdf)
	return nil
}

func horizonList() string {
	names := make([]string, len(model.AllTimeHorizons))
	for i, h := range model.AllTimeHorizons {
		names[i] = fmt.Sprintf("%q", string(h))
	}
	return strings.Join(names, ", ")
}
