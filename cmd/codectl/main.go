// cmd/codectl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codectl",
		Short:         "PressArt item code and widget tooling",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(layoutCmd())
	rootCmd.AddCommand(mailTestCmd())

	return rootCmd
}
