package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"smd-loader/internal/smd"
)

var inspectTree bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a summary of a model file",
	Long: `Loads a .smd file, builds its bone hierarchy, converts it to engine
coordinates and prints node, frame and mesh counts plus any warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectTree, "tree", false, "print the bone hierarchy")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := newLoader().Load(args[0])
	if err != nil {
		return err
	}

	printSummary(cmd, args[0], m)
	if inspectTree {
		printTree(cmd, m)
	}
	return nil
}

func printSummary(cmd *cobra.Command, name string, m *smd.Model) {
	cmd.Printf("%s\n", name)
	cmd.Printf("  nodes:     %d (roots: %d)\n", len(m.Nodes), len(m.Skeleton.RootNodes))
	cmd.Printf("  frames:    %d (start time %d)\n", len(m.Frames), m.Skeleton.StartTime)
	cmd.Printf("  meshes:    %d\n", len(m.Meshes))
	cmd.Printf("  triangles: %d\n", m.TriangleCount())
	for _, mesh := range m.Meshes {
		cmd.Printf("    %-32s %d\n", mesh.Texture, len(mesh.Triangles))
	}
	for _, w := range m.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
}

// printTree writes the hierarchy depth-first, one node per line.
func printTree(cmd *cobra.Command, m *smd.Model) {
	type entry struct{ idx, depth int }

	stack := make([]entry, 0, len(m.Nodes))
	for i := len(m.Skeleton.RootNodes) - 1; i >= 0; i-- {
		stack = append(stack, entry{m.Skeleton.RootNodes[i], 0})
	}

	seen := make([]bool, len(m.Nodes))
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[e.idx] {
			continue
		}
		seen[e.idx] = true

		n := m.Nodes[e.idx]
		cmd.Printf("%s%d %s\n", strings.Repeat("  ", e.depth), n.ID, n.Name)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{n.Children[i], e.depth + 1})
		}
	}
}
