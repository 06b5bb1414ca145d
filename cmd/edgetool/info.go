package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/shadowvol/internal/engine/shadow"
)

// maxOpenEdges caps the open edge report per LOD.
const maxOpenEdges = 20

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show edge list statistics for every LOD",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	mesh, err := buildMesh(args[0], cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Mesh Information")
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "Name: %s\n", mesh.Name)
	fmt.Fprintf(out, "Submeshes: %d\n", len(mesh.SubMeshes))
	if b, err := mesh.Bounds(); err == nil {
		fmt.Fprintf(out, "Bounds: (%g, %g, %g) - (%g, %g, %g)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		c := b.Center()
		fmt.Fprintf(out, "Center: (%g, %g, %g)\n", c.X, c.Y, c.Z)
		fmt.Fprintf(out, "Diagonal: %g\n", b.Diagonal())
	}

	for lod := 0; ; lod++ {
		ed, err := mesh.EdgeList(lod)
		if err != nil {
			break
		}
		open := openEdges(ed)

		fmt.Fprintf(out, "\nLOD %d:\n", lod)
		fmt.Fprintf(out, "  Vertex sets: %d\n", len(ed.EdgeGroups))
		fmt.Fprintf(out, "  Triangles: %d\n", len(ed.Triangles))
		fmt.Fprintf(out, "  Edges: %d\n", ed.EdgeCount())
		fmt.Fprintf(out, "  Open edges: %d\n", len(open))
		fmt.Fprintf(out, "  Closed: %t\n", ed.IsClosed)

		if cfg.Build.SkipDegenerateReport || len(open) == 0 {
			continue
		}
		for i, e := range open {
			if i == maxOpenEdges {
				fmt.Fprintf(out, "    ... %d more\n", len(open)-maxOpenEdges)
				break
			}
			fmt.Fprintf(out, "    set %d edge %d: vertices (%d, %d), triangle %d\n",
				e.set, e.index, e.edge.VertIndex[0], e.edge.VertIndex[1], e.edge.TriIndex[0])
		}
	}
	return nil
}

type openEdge struct {
	set   int
	index int
	edge  shadow.Edge
}

func openEdges(ed *shadow.EdgeData) []openEdge {
	var out []openEdge
	for _, eg := range ed.EdgeGroups {
		for i, e := range eg.Edges {
			if e.Degenerate {
				out = append(out, openEdge{set: eg.VertexSet, index: i, edge: e})
			}
		}
	}
	return out
}
