package cmd

import (
	"fmt"
	"os"

	"github.com/mabhi256/dexlens/dex"
	_ "github.com/mabhi256/dexlens/internal/render/plain"
	_ "github.com/mabhi256/dexlens/internal/render/raw"
	"github.com/mabhi256/dexlens/internal/render"
	"github.com/mabhi256/dexlens/utils"
	"github.com/spf13/cobra"
)

var (
	classesRendererName string
	classesShowRaw      bool
)

var classesCmd = &cobra.Command{
	Use:               "classes [dex-file]",
	Short:             "List every class defined in a DEX file, with fields and methods",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".dex"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}

		r, ok := render.Get(classesRendererName)
		if !ok {
			return fmt.Errorf("unknown renderer %q (available: %v)", classesRendererName, render.Names())
		}

		img, err := dex.Open(filename)
		if err != nil {
			return err
		}
		defer img.Close()

		opts := render.DisplayOptions{ShowRaw: classesShowRaw}

		return img.IterClasses(func(c *dex.Class) error {
			return r.RenderClass(img, *c, opts, os.Stdout)
		})
	},
}

func init() {
	classesCmd.Flags().StringVar(&classesRendererName, "renderer", "plain", "renderer to use (plain, raw)")
	classesCmd.Flags().BoolVar(&classesShowRaw, "raw", false, "also show access flags and raw instruction bytes")
	rootCmd.AddCommand(classesCmd)
}
