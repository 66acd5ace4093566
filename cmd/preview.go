package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"runwaydl/internal/log"
	"runwaydl/pkg/download"
	"runwaydl/pkg/preview"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [url...]",
	Short: "Validate gallery URLs and show their metadata without downloading",
	Example: heredoc.Doc(`
		# Check a list of shows before committing to the download
		runwaydl preview --file shows.txt
	`),
	Run: func(cmd *cobra.Command, args []string) {
		listFile, err := cmd.Flags().GetString("file")
		if err != nil {
			log.Fatal(err)
		}

		urls, err := collectURLs(args, listFile)
		if err != nil {
			log.Fatal(err)
		}

		previewer := preview.New(download.NewClient())
		invalid := 0

		for _, url := range urls {
			gallery, err := previewer.Preview(context.Background(), url)
			if err != nil {
				invalid++
				fmt.Printf("%s %s: %v\n", gchalk.BrightRed("invalid:"), url, err)
				continue
			}
			fmt.Printf("%s %s\n", gchalk.BrightGreen("ok:"), gallery.Label())
		}

		if invalid > 0 {
			log.Fatalf("%d of %d URLs are not downloadable", invalid, len(urls))
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("file", "f", "", "File containing gallery URLs, one per line")
}
