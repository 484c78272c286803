package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/assistant"
	"github.com/abhisek/wellnest/internal/environment"
	"github.com/abhisek/wellnest/internal/exercise"
	"github.com/abhisek/wellnest/internal/nutrition"
)

var foodCmd = &cobra.Command{
	Use:   "food <food item>",
	Short: "Analyze the nutrition of a food item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.requireProvider()
		if err != nil {
			return err
		}
		a, err := nutrition.NewAnalyzer(p, d.profiles, d.logger.Named("nutrition")).
			Analyze(contextOf(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if a.Error {
			return errors.New(a.Message)
		}
		renderAnalysis(cmd.OutOrStdout(), a)
		return nil
	},
}

var environmentCmd = &cobra.Command{
	Use:     "environment",
	Aliases: []string{"env"},
	Short:   "Show current weather and air quality with health guidelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.requireProvider()
		if err != nil {
			return err
		}

		loc := d.cfg.Environment
		if cmd.Flags().Changed("lat") {
			loc.Latitude, _ = cmd.Flags().GetFloat64("lat")
		}
		if cmd.Flags().Changed("lon") {
			loc.Longitude, _ = cmd.Flags().GetFloat64("lon")
		}
		if l, _ := cmd.Flags().GetString("label"); l != "" {
			loc.Label = l
		}

		svc := environment.NewService(environment.NewClient(), p, d.profiles, d.logger.Named("environment"))
		adv := svc.Assess(contextOf(cmd), loc)
		if adv.Error {
			if adv.Conditions != (environment.Conditions{}) {
				heading(cmd.OutOrStdout(), loc.Label)
				renderConditions(cmd.OutOrStdout(), adv.Conditions)
			}
			return errors.New(adv.Message)
		}
		renderAdvisory(cmd.OutOrStdout(), adv)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the wellness assistant",
	Long:  "With a message, prints one reply. Without one, starts a conversation that ends on an empty line or end of input.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.requireProvider()
		if err != nil {
			return err
		}
		a := assistant.New(p, d.store.ChatRepo(), d.logger.Named("assistant"))
		ctx := contextOf(cmd)
		out := cmd.OutOrStdout()

		if n, _ := cmd.Flags().GetInt("history"); n > 0 {
			msgs, err := a.History(ctx, n)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Sender, m.Body)
			}
			if len(args) == 0 {
				return nil
			}
		}

		if len(args) > 0 {
			fmt.Fprintln(out, a.Reply(ctx, strings.Join(args, " ")))
			return nil
		}

		pr := newPrompter(cmd, func() {})
		for {
			msg, err := pr.line("you> ")
			if errors.Is(err, io.EOF) || (err == nil && msg == "") {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wellnest> %s\n", a.Reply(ctx, msg))
		}
	},
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises [beginner|intermediate|advanced]",
	Short: "List exercises by difficulty",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		cat := exercise.NewCatalog(d.store.ExerciseRepo())
		ctx := contextOf(cmd)
		levels := exercise.Levels
		if len(args) == 1 {
			levels = args
		}

		out := cmd.OutOrStdout()
		for _, level := range levels {
			c, list, err := cat.List(ctx, level)
			if err != nil {
				return err
			}
			heading(out, fmt.Sprintf("%s: %s", strings.ToUpper(c.Name[:1])+c.Name[1:], c.Description))
			for _, e := range list {
				fmt.Fprintf(out, "%s (%d min)\n  %s\n", e.Title, e.DurationMinutes, e.Description)
				if len(e.Benefits) > 0 {
					fmt.Fprintf(out, "  Benefits: %s\n", strings.Join(e.Benefits, ", "))
				}
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	environmentCmd.Flags().Float64("lat", 0, "Latitude (defaults to the configured location)")
	environmentCmd.Flags().Float64("lon", 0, "Longitude (defaults to the configured location)")
	environmentCmd.Flags().String("label", "", "Location name shown to the model")

	chatCmd.Flags().IntP("history", "n", 0, "Print the last n stored messages first")
}
