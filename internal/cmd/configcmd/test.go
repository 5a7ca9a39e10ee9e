package configcmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured backend",
		Long: `Test that twk can reach the configured backend.

For the sqlite backend the database is opened and migrated; for the api
backend the default column endpoint is requested with the configured
credentials.`,
		Example: `  # Test connection
  twk config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(noColor, nil)
		},
	}

	return cmd
}

func runTest(noColor bool, httpClient *http.Client, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = cmdutil.LoadConfig()
		if err != nil {
			return err
		}
	}

	if cfg.Backend == config.BackendAPI {
		return testAPI(cfg, httpClient)
	}
	return testSQLite(cfg)
}

func testSQLite(cfg *config.Config) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Printf("Opening database %s...\n", cfg.Database)

	b, err := cmdutil.OpenBackend(context.Background(), cfg)
	if err != nil {
		red.Println("✗ Database unavailable:", err)
		return fmt.Errorf("database unavailable: %w", err)
	}
	defer func() { _ = b.Close() }()

	col, err := b.DefaultColumn(context.Background())
	if err != nil {
		red.Println("✗ Schema check failed:", err)
		return fmt.Errorf("schema check failed: %w", err)
	}

	green.Println("✓ Database opened")
	green.Printf("✓ Default column: %s\n", col.Name)
	return nil
}

func testAPI(cfg *config.Config, httpClient *http.Client) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Printf("Testing connection to %s...\n", cfg.URL)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, cfg.URL+"/api/columns/default", nil)
	if err != nil {
		return err
	}

	req.SetBasicAuth(cfg.Email, cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		red.Println("✗ Connection failed:", err)
		fmt.Println("\nCheck your URL with: twk config show")
		fmt.Println("Reconfigure with: twk init")
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		red.Println("✗ Authentication failed: 401 Unauthorized")
		fmt.Println("\nCheck your credentials with: twk config show")
		fmt.Println("Reconfigure with: twk init")
		return fmt.Errorf("authentication failed")
	case resp.StatusCode == http.StatusForbidden:
		red.Println("✗ Access denied: 403 Forbidden")
		fmt.Println("\nCheck your permissions.")
		return fmt.Errorf("access denied")
	case resp.StatusCode != http.StatusOK:
		red.Printf("✗ Unexpected response: %d\n", resp.StatusCode)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	green.Println("✓ Authentication successful")
	green.Println("✓ API access verified")
	fmt.Printf("\nAuthenticated as: %s\n", cfg.Email)

	return nil
}
