package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var showTerms bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Obtain an OAuth access token via email",
	Long: `Request a security code by email and exchange it for an OAuth access
token. The token grants access to endpoints that an API key cannot use,
such as subscriptions and file uploads. Store it as api.token in the
config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().BoolVar(&showTerms, "terms", false, "print the Terms of Use before requesting a code")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]
	ctx := context.Background()

	if showTerms {
		terms, err := client.GetTerms(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch terms: %w", err)
		}
		fmt.Println(terms.Plaintext)
		fmt.Println()
	}

	msg, err := client.RequestEmailCode(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to request security code: %w", err)
	}
	logger.Info().Str("email", email).Msg(msg.Message)

	fmt.Printf("Enter the 5-character code sent to %s: ", email)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return fmt.Errorf("no code entered")
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return fmt.Errorf("no code entered")
	}

	token, err := client.ExchangeEmailCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange security code: %w", err)
	}

	fmt.Println("\n✓ Login successful!")
	fmt.Println("Add the following to your config file:")
	fmt.Printf("\napi:\n  token: %s\n", token.Value)
	return nil
}
