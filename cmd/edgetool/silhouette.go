package main

import (
	"fmt"
	gomath "math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/engine/lighting"
	"github.com/Faultbox/shadowvol/internal/logger"
	"github.com/Faultbox/shadowvol/pkg/math"
)

var (
	silhouetteLod       int
	silhouetteRotateY   float32
	silhouetteScale     float32
	silhouetteTranslate []float32
	silhouetteSun       []float32
)

var silhouetteCmd = &cobra.Command{
	Use:   "silhouette <file>",
	Short: "List the silhouette edges for the configured light",
	Long: `Computes triangle light facing for the light given by --light or the
config file and lists the edges on the lit/unlit boundary. --sun replaces
the light with a directional sun given as longitude,latitude in degrees.
--scale, --rotate-y and --translate deform the mesh first, applied in that
order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSilhouette,
}

func init() {
	rootCmd.AddCommand(silhouetteCmd)
	silhouetteCmd.Flags().IntVar(&silhouetteLod, "lod", 0, "LOD level to use")
	silhouetteCmd.Flags().Float32Var(&silhouetteRotateY, "rotate-y", 0, "Rotate the mesh about Y by this many degrees")
	silhouetteCmd.Flags().Float32Var(&silhouetteScale, "scale", 1, "Uniformly scale the mesh")
	silhouetteCmd.Flags().Float32SliceVar(&silhouetteTranslate, "translate", nil, "Move the mesh by x,y,z")
	silhouetteCmd.Flags().Float32SliceVar(&silhouetteSun, "sun", nil, "Directional sun as longitude,latitude in degrees")
}

func runSilhouette(cmd *cobra.Command, args []string) error {
	mesh, err := buildMesh(args[0], cfg)
	if err != nil {
		return err
	}

	transform, err := deformMatrix()
	if err != nil {
		return err
	}
	if transform != math.Identity() {
		if err := mesh.Deform(transform); err != nil {
			return err
		}
	}

	ed, err := mesh.EdgeList(silhouetteLod)
	if err != nil {
		return err
	}

	light := math.Vec4(cfg.Light.Position)
	if len(silhouetteSun) > 0 {
		if len(silhouetteSun) != 2 {
			return fmt.Errorf("--sun needs longitude,latitude, got %d values", len(silhouetteSun))
		}
		light = lighting.Sun(silhouetteSun[0], silhouetteSun[1])
	}
	ed.UpdateTriangleLightFacing(light)
	edges := ed.Silhouette()

	lit := 0
	for _, f := range ed.TriangleLightFacings {
		if f {
			lit++
		}
	}
	logger.Debug("silhouette computed",
		zap.Int("lod", silhouetteLod),
		zap.Int("litTriangles", lit),
		zap.Int("edges", len(edges)))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Light: (%g, %g, %g, %g)\n", light[0], light[1], light[2], light[3])
	fmt.Fprintf(out, "Lit triangles: %d of %d\n", lit, len(ed.Triangles))
	fmt.Fprintf(out, "Silhouette edges: %d\n", len(edges))
	for _, e := range edges {
		kind := "shared"
		if e.Open {
			kind = "open"
		}
		fmt.Fprintf(out, "  set %d edge %d: %d -> %d (%s)\n", e.VertexSet, e.Edge, e.VertIndex[0], e.VertIndex[1], kind)
	}
	return nil
}

// deformMatrix composes translate * rotateY * scale from the flags.
func deformMatrix() (math.Mat4, error) {
	if silhouetteScale == 0 {
		return math.Mat4{}, fmt.Errorf("--scale must not be 0")
	}
	m := math.Identity()
	if len(silhouetteTranslate) > 0 {
		if len(silhouetteTranslate) != 3 {
			return m, fmt.Errorf("--translate needs x,y,z, got %d values", len(silhouetteTranslate))
		}
		m = math.Translate(silhouetteTranslate[0], silhouetteTranslate[1], silhouetteTranslate[2])
	}
	if silhouetteRotateY != 0 {
		angle := float32(float64(silhouetteRotateY) * gomath.Pi / 180)
		m = m.Mul(math.RotateY(angle))
	}
	if silhouetteScale != 1 {
		m = m.Mul(math.Scale(silhouetteScale, silhouetteScale, silhouetteScale))
	}
	return m, nil
}
