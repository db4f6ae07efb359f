package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/model"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the service and store the session",
		RunE:  runLogin,
	}
	f := cmd.Flags()
	f.StringP("username", "u", "", "Username (required)")
	f.StringP("password", "p", "", "Password (or set AUTOQ_PASSWORD)")
	clientFlags(f)
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	token, err := client.Login(cmd.Context(), v.GetString("username"), v.GetString("password"))
	if err != nil {
		return err
	}
	if err := sess.Login(token.AccessToken, nil); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	user, err := client.CurrentUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	if err := sess.SetUser(&user); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}
	fmt.Println(appI18n.Td(cmd.Context(), "WelcomeBack", map[string]any{"Name": name}))
	return nil
}

func logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, _, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.Logout(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Println(appI18n.T(cmd.Context(), "LoggedOut"))
			return nil
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE:  runRegister,
	}
	f := cmd.Flags()
	f.String("email", "", "Email address (required)")
	f.StringP("username", "u", "", "Username (required)")
	f.StringP("password", "p", "", "Password (required)")
	f.String("full-name", "", "Full name")
	clientFlags(f)
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	user, err := client.Register(cmd.Context(), model.RegisterRequest{
		Email:    v.GetString("email"),
		Username: v.GetString("username"),
		Password: v.GetString("password"),
		FullName: v.GetString("full-name"),
	})
	if err != nil {
		return err
	}
	return printJSON(user)
}

func whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			user, err := client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.SetUser(&user); err != nil {
				return fmt.Errorf("persist profile: %w", err)
			}
			return printJSON(user)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}
