package configcmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/taskwiki-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/taskwiki-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current twk configuration with value source indicators.`,
		Example: `  # Show current config
  twk config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(noColor)
		},
	}

	return cmd
}

func runShow(noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	configPath := cmdutil.ConfigPath()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Printf("%-12s", label+":")
		if value == "" {
			_, _ = dim.Println("-")
			return
		}

		fmt.Print(maskSecret(label, value))

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "default"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "default"
		}

		_, _ = dim.Printf("  (source: %s)\n", source)
	}

	printField("Backend", cfg.Backend, fileCfg.Backend, "TWK_BACKEND", "TASKWIKI_BACKEND")
	if cfg.Backend == config.BackendAPI {
		printField("URL", cfg.URL, fileCfg.URL, "TWK_URL", "TASKWIKI_URL")
		printField("Email", cfg.Email, fileCfg.Email, "TWK_EMAIL", "TASKWIKI_EMAIL")
		printField("API Token", cfg.APIToken, fileCfg.APIToken, "TWK_API_TOKEN", "TASKWIKI_API_TOKEN")
	} else {
		printField("Database", cfg.Database, fileCfg.Database, "TWK_DATABASE", "TASKWIKI_DATABASE")
	}
	printField("Actor", idString(cfg.ActorID), idString(fileCfg.ActorID), "TWK_ACTOR_ID")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, "TWK_LOG_LEVEL")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "TWK_OUTPUT_FORMAT")

	fmt.Println()
	_, _ = dim.Printf("Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Println("(file not found)")
	}

	return nil
}

// maskSecret hides the middle of token values.
func maskSecret(label, value string) string {
	if !strings.Contains(strings.ToLower(label), "token") {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
