package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellnest/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, false)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, true)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.auth.Logout(contextOf(cmd)); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func authenticate(cmd *cobra.Command, signUp bool) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	pr := newPrompter(cmd, func() {})
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		if email, err = pr.line("Email: "); err != nil {
			return fmt.Errorf("read email: %w", err)
		}
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = pr.line("Password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	ctx := contextOf(cmd)
	var s auth.Session
	if signUp {
		s, err = d.auth.SignUp(ctx, email, password)
	} else {
		s, err = d.auth.SignIn(ctx, email, password)
	}
	if errors.Is(err, auth.ErrConfirmationPending) {
		fmt.Fprintln(cmd.OutOrStdout(), "Account created. Confirm your email, then run `wellnest login`.")
		return nil
	}
	if err != nil {
		return err
	}

	mode := ""
	if s.Offline {
		mode = " (offline)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s%s.\n", s.Email, mode)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().String("email", "", "Account email")
		c.Flags().String("password", "", "Account password (prompted when omitted)")
	}
}
