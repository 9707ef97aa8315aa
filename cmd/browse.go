package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/browser"
	"github.com/mabhi256/dexlens/utils"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:               "browse [dex-file]",
	Short:             "Interactively explore a DEX file",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".dex"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}

		img, err := dex.Open(filename)
		if err != nil {
			return err
		}
		defer img.Close()

		p := tea.NewProgram(browser.New(img), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
