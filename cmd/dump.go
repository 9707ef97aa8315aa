package cmd

import (
	"fmt"
	"os"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/utils"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:               "dump [dex-file]",
	Short:             "Print a DEX file's header and section map",
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

		h := img.Header()
		fmt.Printf("dex version %s\n", h.Version())
		fmt.Printf("checksum:    0x%08x\n", h.Checksum)
		fmt.Printf("file size:   %d bytes (%s)\n", h.FileSize, utils.MemorySize(h.FileSize))
		fmt.Printf("strings:     %d\n", h.StringIDsSize)
		fmt.Printf("types:       %d\n", h.TypeIDsSize)
		fmt.Printf("prototypes:  %d\n", h.ProtoIDsSize)
		fmt.Printf("fields:      %d\n", h.FieldIDsSize)
		fmt.Printf("methods:     %d\n", h.MethodIDsSize)
		fmt.Printf("class defs:  %d\n", h.ClassDefsSize)

		fmt.Println("\nsection map:")
		for typ, entry := range img.SectionMap() {
			fmt.Printf("  %-28v count=%-6d offset=0x%x\n", typ, entry.Count, entry.Offset)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
