package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "cfi2017/modio-go"

var (
	appVersion = "dev"
	buildTime  = "unknown"

	checkOnly bool
)

// SetVersion records the build information stamped in by the linker.
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, built)
}

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade modget to the latest release",
	// No API client needed to self-update
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)

	upgradeCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepo)
	}

	if appVersion != "dev" && latest.LessOrEqual(appVersion) {
		fmt.Printf("✓ Already up to date (version %s)\n", appVersion)
		return nil
	}

	fmt.Printf("Latest release: %s\n", latest.Version())
	if checkOnly {
		fmt.Printf("Current version: %s\nRun 'modget upgrade' to install.\n", appVersion)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	fmt.Printf("Updating %s to %s...\n", exe, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("✓ Updated to version %s\n", latest.Version())
	return nil
}
