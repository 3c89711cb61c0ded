package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsWrite bool

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings [file]",
	Short: "Show the active game rules, or write a starter settings file",
	Long: `Prints the active game rules as YAML. With --write, saves them to the
given file (settings.yaml by default) so board size, timer, quotas and
spawn odds can be tweaked, then picked up via --settings or the
settings_file config key.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings()
		if err != nil {
			fmt.Printf("Error loading settings: %v\n", err)
			os.Exit(1)
		}

		data, err := yaml.Marshal(settings)
		if err != nil {
			fmt.Printf("Error encoding settings: %v\n", err)
			os.Exit(1)
		}

		if !settingsWrite {
			fmt.Print(string(data))
			return
		}

		path := "settings.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Error: %s already exists, refusing to overwrite\n", path)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Settings written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().BoolVar(&settingsWrite, "write", false, "write the settings to a file instead of printing them")
}
