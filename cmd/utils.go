package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"runwaydl/cmd/reporters"
	"runwaydl/pkg/runwaydl"
)

func getReporter(verbose bool, machine bool) runwaydl.ProgressReporter {
	if machine {
		return reporters.NewMachineReporter(os.Stdout)
	}

	if verbose || !supportscolor.Stdout().SupportsColor {
		return reporters.NewVerboseReporter()
	}

	return reporters.NewProgressBarReporter()
}

// collectURLs merges URLs given as arguments with URLs read from a list file,
// one per line.
func collectURLs(args []string, listFile string) ([]string, error) {
	urls := append([]string{}, args...)

	if listFile != "" {
		data, err := os.ReadFile(listFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", listFile, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				urls = append(urls, line)
			}
		}
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("requires at least one gallery URL")
	}

	return urls, nil
}
