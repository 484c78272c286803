package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/wellness"
)

var checkCmd = &cobra.Command{
	Use:   "check <symptom>[, <symptom>...]",
	Short: "Answer follow-up questions about your symptoms and get a likely diagnosis",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if _, err := d.requireSession(contextOf(cmd)); err != nil {
			return err
		}
		p, err := d.requireProvider()
		if err != nil {
			return err
		}

		symptoms := wellness.ParseSymptoms(strings.Join(args, ","))
		return runFlow(cmd, d, wellness.SymptomFlow(d.flowDeps(p)), symptoms, renderDiagnosis)
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the mental-health screening quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if _, err := d.requireSession(contextOf(cmd)); err != nil {
			return err
		}
		// The score is computed locally; the model only adds an
		// interpretation when one is configured.
		p, err := d.requireProvider()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Your score will be shown without an interpretation.")
		}
		return runFlow(cmd, d, wellness.QuizFlow(d.flowDeps(p)), struct{}{}, renderScreening)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <objective>",
	Short: "Build a diet, sleep and exercise plan for a health objective",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if _, err := d.requireSession(contextOf(cmd)); err != nil {
			return err
		}
		p, err := d.requireProvider()
		if err != nil {
			return err
		}
		return runFlow(cmd, d, wellness.PlannerFlow(d.flowDeps(p)), strings.Join(args, " "), renderPlan)
	},
}

// runFlow drives one flow on the terminal and prints its outcome. A
// failed flow prints whatever result it has and returns the failure.
func runFlow[S any, R flow.Outcome](cmd *cobra.Command, d *deps, f flow.Flow[S, R], seed S, render func(io.Writer, R)) error {
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append(d.flowOptions(), flow.WithFeedbackDelay(0))
	c := flow.New(f, seed, opts...)
	defer c.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Preparing your questions...")
	s := wellness.Run(ctx, c, newPrompter(cmd, cancel).choose)

	switch s.Phase {
	case flow.PhaseComplete:
		fmt.Fprintln(out)
		render(out, s.Result)
		return nil
	case flow.PhaseFailed:
		if s.HasResult {
			fmt.Fprintln(out)
			render(out, s.Result)
		}
		return errors.New(s.FailureMessage())
	default:
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}
}

func init() {
	for _, c := range []*cobra.Command{checkCmd, quizCmd, planCmd} {
		c.Flags().Int("answer", -1, "Answer every question with this option index (0-based) instead of prompting")
	}
}
