package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cfi2017/modio-go/config"
	"github.com/cfi2017/modio-go/filter"
	"github.com/cfi2017/modio-go/modio"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *modio.Client

	// Command flags
	gameID     int64
	filterExpr string
	preset     string
	query      string
	limit      uint
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "modget",
	Short: "A tool to search and download mods from mod.io",
	Long: `modget is a CLI tool for browsing game mods on mod.io, filtering
them by tags, popularity, version and other criteria, and downloading
mod files to disk.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Int64VarP(&gameID, "game", "g", 0, "game ID to operate on")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []modio.Option{
		modio.WithHost(cfg.API.Host),
		modio.WithLogger(logger),
	}
	if cfg.API.Timeout > 0 {
		opts = append(opts, modio.WithTimeout(time.Duration(cfg.API.Timeout)*time.Second))
	}

	client, err = modio.NewClient(cfg.API.UserAgent, cfg.Credentials(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create mod.io client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Color only helps on a real terminal
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search mods of a game",
	Long: `Search the mods of a game, optionally narrowing the results with a
full-text query and a local filter expression.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&query, "query", "q", "", "full-text search query")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().UintVarP(&limit, "limit", "l", 0, "stop after this many results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if gameID == 0 {
		return fmt.Errorf("a game ID is required, use --game")
	}

	var matcher *filter.Filter
	if expression, err := filterExpression(); err != nil {
		return err
	} else if expression != "" {
		matcher, err = filter.NewCompiler().Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Info().Str("filter", expression).Msg("Searching mods")
	}

	opts := modio.NewListOptions()
	if query != "" {
		opts.FullTextSearch(query)
	}

	ctx := context.Background()
	it := client.IterMods(gameID, opts)

	var shown uint
	for it.Next(ctx) {
		mod := it.Item()
		if matcher != nil && !matcher.Match(mod) {
			continue
		}
		printMod(mod)
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	if shown == 0 {
		fmt.Println("No mods found matching the criteria.")
		return nil
	}
	fmt.Printf("\n%d mods shown.\n", shown)
	return nil
}

func printMod(mod modio.Mod) {
	fmt.Printf("• %s (%d)", mod.Name, mod.ID)
	if mod.Modfile != nil && mod.Modfile.Version != "" {
		fmt.Printf(" v%s", mod.Modfile.Version)
	}
	fmt.Println()
	if len(mod.Tags) > 0 {
		names := make([]string, len(mod.Tags))
		for i, tag := range mod.Tags {
			names[i] = tag.Name
		}
		fmt.Printf("  Tags: %s\n", strings.Join(names, ", "))
	}
	if mod.Stats != nil {
		fmt.Printf("  Downloads: %d  Subscribers: %d\n",
			mod.Stats.DownloadsTotal, mod.Stats.SubscribersTotal)
	}
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [mod-id]",
	Short: "Show details of a single mod",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	if gameID == 0 {
		return fmt.Errorf("a game ID is required, use --game")
	}
	modID, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	mod, err := client.GetMod(ctx, gameID, modID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d)\n", mod.Name, mod.ID)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Profile:  %s\n", mod.ProfileURL)
	fmt.Printf("Added:    %s\n", time.Unix(mod.DateAdded, 0).Format("2006-01-02"))
	fmt.Printf("Updated:  %s\n", time.Unix(mod.DateUpdated, 0).Format("2006-01-02"))
	if mod.SubmittedBy != nil {
		fmt.Printf("Author:   %s\n", mod.SubmittedBy.Username)
	}
	if mod.Summary != "" {
		fmt.Printf("Summary:  %s\n", mod.Summary)
	}
	if file := mod.Modfile; file != nil {
		fmt.Printf("\nPrimary file:\n")
		fmt.Printf("  %s (version %s, %d bytes)\n", file.Filename, file.Version, file.Filesize)
	} else {
		fmt.Println("\nNo primary file.")
	}
	if mod.Stats != nil {
		fmt.Printf("\nStatistics:\n")
		fmt.Printf("  Downloads:   %d\n", mod.Stats.DownloadsTotal)
		fmt.Printf("  Subscribers: %d\n", mod.Stats.SubscribersTotal)
		fmt.Printf("  Rating:      %.1f (%d up / %d down)\n",
			mod.Stats.RatingsWeighted, mod.Stats.RatingsPositive, mod.Stats.RatingsNegative)
	}
	return nil
}

// gamesCmd represents the games command
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List game profiles",
	RunE:  runGames,
}

func init() {
	gamesCmd.Flags().StringVarP(&query, "query", "q", "", "full-text search query")
	gamesCmd.Flags().UintVarP(&limit, "limit", "l", 20, "stop after this many results")
}

func runGames(cmd *cobra.Command, args []string) error {
	opts := modio.NewListOptions()
	if query != "" {
		opts.FullTextSearch(query)
	}

	ctx := context.Background()
	it := client.IterGames(opts)

	var shown uint
	for it.Next(ctx) {
		game := it.Item()
		fmt.Printf("• %s (ID: %d)\n", game.Name, game.ID)
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}
	return it.Err()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to mod.io",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", client.Host())

	ctx := context.Background()
	games, err := client.ListGames(ctx, modio.NewListOptions().Limit(1))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Games available: %d\n", games.Total)

	if cfg.API.Token != "" {
		user, err := client.AuthenticatedUser(ctx)
		if err != nil {
			return fmt.Errorf("token check failed: %w", err)
		}
		fmt.Printf("- Authenticated as: %s\n", user.Username)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID '%s': must be a positive integer", arg)
	}
	return id, nil
}

// filterExpression determines the filter expression to use, preferring
// the command line over config presets.
func filterExpression() (string, error) {
	if filterExpr != "" {
		return filterExpr, nil
	}
	if preset != "" {
		if expression, ok := cfg.Filter[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}
	return "", nil
}
