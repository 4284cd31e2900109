package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cfi2017/modio-go/modio"
)

var (
	fileID      int64
	fileVersion string
	onMultiple  string
	rawURL      string
	outputDir   string
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download [mod-id...]",
	Short: "Download mod files",
	Long: `Download the files of one or more mods. By default the primary file
of each mod is fetched; a specific file ID or version can be selected
when downloading a single mod.`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().Int64Var(&fileID, "file-id", 0, "download a specific file ID")
	downloadCmd.Flags().StringVar(&fileVersion, "version", "", "download the file matching a version")
	downloadCmd.Flags().StringVar(&onMultiple, "on-multiple", "latest", "when a version matches several files: latest or fail")
	downloadCmd.Flags().StringVar(&rawURL, "url", "", "download directly from a binary URL")
	downloadCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	policy, err := resolvePolicy(onMultiple)
	if err != nil {
		return err
	}

	dir := outputDir
	if dir == "" {
		dir = cfg.Download.Dir
	}

	ctx := context.Background()

	if rawURL != "" {
		if len(args) > 0 || fileID != 0 || fileVersion != "" {
			return fmt.Errorf("--url cannot be combined with mod IDs, --file-id or --version")
		}
		name := filepath.Base(strings.TrimRight(rawURL, "/"))
		if name == "" || name == "." || name == "/" {
			name = "download.bin"
		}
		return reportResults(downloadAll(ctx, []modio.DownloadRequest{{
			Action: modio.DownloadURL{URL: rawURL},
			Path:   filepath.Join(dir, name),
		}}))
	}

	if gameID == 0 {
		return fmt.Errorf("a game ID is required, use --game")
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one mod ID is required")
	}
	if (fileID != 0 || fileVersion != "") && len(args) > 1 {
		return fmt.Errorf("--file-id and --version apply to a single mod")
	}
	if fileID != 0 && fileVersion != "" {
		return fmt.Errorf("--file-id and --version are mutually exclusive")
	}

	var reqs []modio.DownloadRequest
	for _, arg := range args {
		modID, err := parseID(arg)
		if err != nil {
			return err
		}

		var action modio.DownloadAction
		switch {
		case fileID != 0:
			action = modio.DownloadFile{GameID: gameID, ModID: modID, FileID: fileID}
		case fileVersion != "":
			action = modio.DownloadVersion{
				GameID:  gameID,
				ModID:   modID,
				Version: fileVersion,
				Policy:  policy,
			}
		default:
			action = modio.DownloadPrimary{GameID: gameID, ModID: modID}
		}

		path, err := destinationPath(ctx, dir, modID)
		if err != nil {
			return err
		}
		reqs = append(reqs, modio.DownloadRequest{Action: action, Path: path})
	}

	return reportResults(downloadAll(ctx, reqs))
}

// destinationPath picks a file name from the mod's primary file, falling
// back to the mod ID when no file metadata is available.
func destinationPath(ctx context.Context, dir string, modID int64) (string, error) {
	mod, err := client.GetMod(ctx, gameID, modID)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("mod-%d.zip", modID)
	if mod.Modfile != nil && mod.Modfile.Filename != "" {
		name = mod.Modfile.Filename
	}
	return filepath.Join(dir, name), nil
}

func downloadAll(ctx context.Context, reqs []modio.DownloadRequest) []modio.DownloadResult {
	fmt.Printf("Downloading %d file(s)...\n", len(reqs))
	return client.DownloadEach(ctx, reqs, cfg.Download.Concurrency)
}

func reportResults(results []modio.DownloadResult) error {
	var failed int
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Printf("✗ %s: %v\n", res.Path, res.Err)
			continue
		}
		fmt.Printf("✓ %s (%d bytes)\n", res.Path, res.Written)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(results))
	}
	return nil
}

func resolvePolicy(mode string) (modio.ResolvePolicy, error) {
	switch strings.ToLower(mode) {
	case "latest":
		return modio.Latest, nil
	case "fail":
		return modio.Fail, nil
	}
	return 0, fmt.Errorf("invalid --on-multiple value: %s (must be 'latest' or 'fail')", mode)
}
