package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/config"
	"github.com/abhisek/wellnest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wellnest",
	Short: "Personal wellness assistant for the terminal",
	Long: "Wellnest is an AI-assisted wellness companion: symptom follow-up, a mental-health\n" +
		"screening quiz, a health planner, food analysis, environment guidelines and a chat assistant.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or postgres:// URL (overrides WELLNEST_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (overrides WELLNEST_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(foodCmd)
	rootCmd.AddCommand(environmentCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(llmCmd)
}

// loadConfig reads the config file named by --config or the default
// location, then applies the --db and --log-level flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.DSN = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, nil
}

// resolveDBPath returns the configured DSN, falling back to the default
// XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Database.DSN; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
