package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

type LoginOptions struct {
	*RootOptions
	Username string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign the operator in and store the session",
		Long: `Exchange the operator's credentials for an access/refresh token pair.

The pair is stored in the configured session store and reused by later
commands until it can no longer be refreshed.

The password may be given with --password or the POS_PASSWORD variable.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "operator username")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "operator password")
	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout())

	password := opts.Password
	if password == "" {
		password = os.Getenv("POS_PASSWORD")
	}
	if opts.Username == "" || password == "" {
		return f.Error(ErrCodeInput, errors.New("username and password are required"))
	}

	ctx := cmd.Context()
	client, cleanup, err := openClient(ctx, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return f.Error(ErrCodeGeneric, err)
	}
	defer cleanup()

	if err := client.Login(ctx, opts.Username, password); err != nil {
		return f.Error(errorCode(err), fmt.Errorf("login failed: %w", err))
	}

	user, err := client.Me(ctx)
	if err != nil {
		return f.Error(errorCode(err), err)
	}

	return f.Success(user, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Logged in as %s\n", displayName(user))
		return err
	})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Forget the stored session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout())

			client, cleanup, err := openClient(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return f.Error(ErrCodeGeneric, err)
			}
			defer cleanup()

			if err := client.Logout(cmd.Context()); err != nil {
				return f.Error(ErrCodeGeneric, err)
			}

			return f.Success(map[string]string{"state": string(client.Session().State())}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Logged out")
				return err
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in operator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout())

			client, cleanup, err := openClient(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return f.Error(ErrCodeGeneric, err)
			}
			defer cleanup()

			user, err := client.Me(cmd.Context())
			if err != nil {
				return f.Error(errorCode(err), err)
			}

			return f.Success(user, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (%s)\n", displayName(user), user.Role)
				return err
			})
		},
	}
}

func displayName(u *models.User) string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
