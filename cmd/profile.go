package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect the stored wellness profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [domain]",
	Short: "Print the profile, or one section of it, as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		snap, err := d.profiles.Snapshot(contextOf(cmd))
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}

		var v any = snap
		if len(args) == 1 {
			dom := profile.Domain(args[0])
			if !dom.Valid() {
				return fmt.Errorf("unknown profile section %q (want one of %v)", args[0], profile.Domains)
			}
			sec, ok := snap[dom]
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s recorded yet.\n", dom)
				return nil
			}
			v = sec
		}

		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
}
