package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "spinsim",
		Short:         "Run lpk scenes headless and report angular velocity behavior",
		SilenceUsage: true,
	}

	opts := runOptions{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Step a scene for a number of ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	runCmd.Flags().StringVar(&opts.Scene, "scene", "spin_demo.yaml", "scene file (disk path or embedded name)")
	runCmd.Flags().IntVar(&opts.Ticks, "ticks", 120, "number of ticks to simulate")
	runCmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 = random)")
	runCmd.Flags().BoolVar(&opts.Debug, "debug", false, "trace every angular velocity application")
	runCmd.Flags().BoolVar(&opts.Plot, "plot", false, "plot each spinner's angular velocity per tick")
	runCmd.Flags().IntVar(&opts.PlotHeight, "plot-height", 10, "plot height in rows")

	prefabsCmd := &cobra.Command{
		Use:   "prefabs",
		Short: "List embedded prefabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPrefabs(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(runCmd, prefabsCmd)
	return rootCmd
}

func listPrefabs(out io.Writer) error {
	names, err := prefabsList()
	if err != nil {
		return fmt.Errorf("list prefabs: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
