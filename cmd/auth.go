package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate a Google account",
		Long: `Authenticate a Google account for use with the MCP server.

Prints the Google OAuth authorization URL, waits for the authorization
code on stdin and saves the resulting token. Tokens are stored per
account, so multiple Google accounts can be authenticated by running
this command with different --account values.

Requires the GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET
environment variables to be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := google.MigrateDefaultToken(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to migrate legacy token: %v\n", err)
			}

			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q is already authenticated.\n", account)
				fmt.Println("Delete its token file to re-authenticate.")
				return nil
			}

			fmt.Println("Visit the following URL to authorize access:")
			fmt.Println()
			fmt.Println("  " + google.GetAuthURLForAccount(account))
			fmt.Println()
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("authorization code cannot be empty")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Token saved for account %q. All Google Workspace tools are now available.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to authenticate (e.g. 'work', 'personal')")

	return cmd
}
