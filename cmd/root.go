// Package cmd contains code for the `runwaydl` CLI tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"runwaydl/internal/log"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "runwaydl",
	Short: "Downloads runway show galleries from firstview.com",
	Long: heredoc.Doc(`
		runwaydl downloads full-resolution runway show images into a
		designer/gender/season/album folder tree.

		Examples:

		  # Download one show's gallery
		  runwaydl get "https://www.firstview.com/collection_images.php?id=12345"

		  # Preview metadata for a list of shows before downloading
		  runwaydl preview --file shows.txt
	`),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.runwaydl.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "d", false, "Use verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Fatal(err)
		}

		// Search config in home directory with name ".runwaydl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".runwaydl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
