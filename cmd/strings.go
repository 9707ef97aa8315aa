package cmd

import (
	"fmt"
	"os"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/utils"
	"github.com/spf13/cobra"
)

var stringsCmd = &cobra.Command{
	Use:               "strings [dex-file]",
	Short:             "Print every string in a DEX file's string pool",
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

		return img.IterStrings(func(id uint32, s string) error {
			fmt.Printf("%6d: %s\n", id, s)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(stringsCmd)
}
