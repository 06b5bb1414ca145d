package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/shadowvol/internal/engine/shadow"
)

var dumpLod int

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the edge data of one LOD",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().IntVar(&dumpLod, "lod", 0, "LOD level to dump")
}

func runDump(cmd *cobra.Command, args []string) error {
	mesh, err := buildMesh(args[0], cfg)
	if err != nil {
		return err
	}
	ed, err := mesh.EdgeList(dumpLod)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ed.Log(shadow.LogSinkFunc(func(msg string) {
		fmt.Fprintln(out, msg)
	}))
	return nil
}
