package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/spf13/cobra"
)

// NewProgressCmd creates the progress command.
func NewProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or set the completion of each stage",
		Long: `Progress shows the lead, quote and design stages and the overall
completion percentage. A complete stage counts fully, a stage in progress
counts half.`,
		Args: cobra.NoArgs,
		RunE: runProgressCmd,
	}
	cmd.AddCommand(newProgressSetCmd())
	return cmd
}

func newProgressSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <stage> <state>",
		Short: "Set the state of a stage",
		Long: `Set marks a stage as incomplete, in-progress or complete.

Stages: lead, quote, design

Example:
  salesqueen progress set design complete`,
		Args: cobra.ExactArgs(2),
		RunE: runProgressSetCmd,
	}
}

// runProgressCmd executes the progress command.
func runProgressCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		printProgress(cmd.OutOrStdout(), a.session.Snapshot().Progress, a.session.Percentage())
		return nil
	})
}

// runProgressSetCmd executes the progress set command.
func runProgressSetCmd(cmd *cobra.Command, args []string) error {
	stage, state := model.Stage(args[0]), model.StageState(args[1])
	if !stage.Valid() {
		return fmt.Errorf("unknown stage %q (expected lead, quote or design)", args[0])
	}
	if !state.Valid() {
		return fmt.Errorf("unknown state %q (expected incomplete, in-progress or complete)", args[1])
	}

	return runWithApp(cmd, func(a *app) error {
		if _, err := a.session.Dispatch(cmd.Context(), project.SetStage{Stage: stage, State: state}); err != nil {
			return err
		}
		printProgress(cmd.OutOrStdout(), a.session.Snapshot().Progress, a.session.Percentage())
		return nil
	})
}

// printProgress writes one line per stage followed by the percentage.
func printProgress(out io.Writer, p model.Progress, percentage int) {
	for _, stage := range model.Stages() {
		state := p[stage]
		if state == "" {
			state = model.StateIncomplete
		}
		fmt.Fprintf(out, "%s %-7s %s\n", stageMarker(state), stage, state)
	}
	fmt.Fprintf(out, "Overall: %d%%\n", percentage)
}

func stageMarker(s model.StageState) string {
	switch s {
	case model.StateComplete:
		return color.GreenString("[x]")
	case model.StateInProgress:
		return color.YellowString("[~]")
	default:
		return "[ ]"
	}
}
