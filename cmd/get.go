package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runwaydl/internal/log"
	"runwaydl/pkg/browser"
	"runwaydl/pkg/download"
	"runwaydl/pkg/runwaydl"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get [url...]",
	Short: "Download one or more show galleries",
	Example: heredoc.Doc(`
		# Download a single show
		runwaydl get "https://www.firstview.com/collection_images.php?id=12345"

		# Download every show listed in a file, one URL per line
		runwaydl get --file shows.txt
	`),
	Run: func(cmd *cobra.Command, args []string) {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			log.Fatal(err)
		}

		listFile, err := cmd.Flags().GetString("file")
		if err != nil {
			log.Fatal(err)
		}

		urls, err := collectURLs(args, listFile)
		if err != nil {
			log.Fatal(err)
		}

		root, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatal(err)
		}
		if root == "" {
			root = viper.GetString("out")
		}
		if root == "" {
			home, err := homedir.Dir()
			if err != nil {
				log.Fatalf("Unable to determine home directory: %v", err)
			}
			root = filepath.Join(home, "Downloads", "FirstView")
		}

		skipExisting, err := cmd.Flags().GetBool("skip-existing")
		if err != nil {
			log.Fatal(err)
		}

		machine, err := cmd.Flags().GetBool("machine")
		if err != nil {
			log.Fatal(err)
		}

		showBrowser, err := cmd.Flags().GetBool("show-browser")
		if err != nil {
			log.Fatal(err)
		}

		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		// Ctrl-C stops the run between galleries; the gallery in progress
		// finishes its in-flight images first.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		chrome, err := browser.NewChrome(ctx, !showBrowser, download.UserAgent)
		if err != nil {
			log.Fatal(err)
		}
		defer chrome.Close()

		client := download.NewClient(download.WithReferer(runwaydl.BaseURL))
		session := runwaydl.NewSession(chrome, client, runwaydl.SessionOptions{
			Root:         root,
			SkipExisting: skipExisting,
		}, logger)

		session.Run(ctx, urls, getReporter(verbose, machine))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("out", "o", "", "Root directory to download galleries into")
	getCmd.Flags().StringP("file", "f", "", "File containing gallery URLs, one per line")
	getCmd.Flags().Bool("skip-existing", false, "Skip galleries whose album directory already exists")
	getCmd.Flags().Bool("machine", false, "Emit the machine-readable progress protocol on stdout")
	getCmd.Flags().Bool("show-browser", false, "Run the browser with a visible window")
}
