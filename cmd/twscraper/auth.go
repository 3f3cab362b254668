package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"twscraper/pkg/auth"
	"twscraper/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage X session cookies",
	Long: `Manage stored X session cookies securely.

Cookies are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (TWSCRAPER_AUTH_TOKEN / TWSCRAPER_CT0)

Never share your cookies or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [handle]",
	Short: "Store X session cookies securely",
	Long: `Store X session cookies securely in the system keychain or an
encrypted file.

You will be prompted for:
  - X handle (if not provided)
  - auth_token cookie value
  - ct0 cookie value
  - User Agent (optional, press Enter to use the browser default)

To get these values:
1. Log into x.com in your browser
2. Open Developer Tools (F12)
3. Go to Application/Storage > Cookies > https://x.com
4. Find and copy the auth_token and ct0 values`,
	Example: `  # Interactive login
  twscraper auth login

  # Login with handle
  twscraper auth login myhandle`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout <handle>",
	Short: "Remove stored cookies",
	Long:  `Remove stored X session cookies for the given handle.`,
	Example: `  # Remove cookies for one handle
  twscraper auth logout myhandle`,
	Args: cobra.ExactArgs(1),
	Run:  runLogout,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List stored accounts",
	Long:  `List all stored X accounts with sanitized cookie information.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	var handle string
	if len(args) > 0 {
		handle = args[0]
	}

	reader := bufio.NewReader(os.Stdin)

	if handle == "" {
		fmt.Print("X handle: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			ui.PrintError("Failed to read handle", err.Error())
			os.Exit(1)
		}
		handle = strings.TrimSpace(input)
	}
	handle = strings.TrimPrefix(handle, "@")

	if handle == "" {
		ui.PrintError("Handle is required")
		os.Exit(1)
	}

	if existing, _ := manager.Retrieve(handle); existing != nil {
		fmt.Printf("Cookies for @%s already exist. Overwrite? (y/N): ", handle)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Keeping existing cookies.")
			return
		}
	}

	authToken, err := readSecret("auth_token cookie: ")
	if err != nil {
		ui.PrintError("Failed to read auth_token", err.Error())
		os.Exit(1)
	}
	if authToken == "" {
		ui.PrintError("auth_token is required")
		os.Exit(1)
	}

	csrfToken, err := readSecret("ct0 cookie: ")
	if err != nil {
		ui.PrintError("Failed to read ct0", err.Error())
		os.Exit(1)
	}
	if csrfToken == "" {
		ui.PrintError("ct0 is required")
		os.Exit(1)
	}

	fmt.Print("User Agent (optional): ")
	userAgent, _ := reader.ReadString('\n')
	userAgent = strings.TrimSpace(userAgent)

	account := &auth.Account{
		Handle:       handle,
		AuthToken:    authToken,
		CSRFToken:    csrfToken,
		UserAgent:    userAgent,
		LastModified: time.Now(),
	}

	if err := manager.Store(account); err != nil {
		ui.PrintError("Failed to store cookies", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("Cookies stored for @%s", handle))
	fmt.Println("\nRun 'twscraper scrape' to start collecting.")
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	handle := strings.TrimPrefix(strings.TrimSpace(args[0]), "@")
	if err := manager.Delete(handle); err != nil {
		ui.PrintError("Failed to remove cookies", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess(fmt.Sprintf("Removed cookies for @%s", handle))
}

func runStatus(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	accounts, err := manager.List()
	if err != nil || len(accounts) == 0 {
		fmt.Println("No stored accounts.")
		fmt.Println("\nRun 'twscraper auth login' to store session cookies.")
		return
	}

	fmt.Printf("Stored accounts (%d):\n\n", len(accounts))
	for _, account := range accounts {
		fmt.Printf("  @%s\n", account.Handle)
		fmt.Printf("    auth_token: %s\n", maskToken(account.AuthToken))
		fmt.Printf("    ct0:        %s\n", maskToken(account.CSRFToken))
		if !account.LastModified.IsZero() {
			fmt.Printf("    updated:    %s\n", account.LastModified.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
}

// readSecret prompts for a value without echoing it
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	value, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(value)), nil
}

// maskToken shows only the first and last few characters of a token
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}
