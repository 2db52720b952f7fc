package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/learntrack/learntrack/internal/knowledge"
)

type layoutAlgorithm string

func (a *layoutAlgorithm) Set(val string) error {
	for _, algorithm := range allLayoutAlgorithms {
		if val == string(algorithm) {
			*a = algorithm
			return nil
		}
	}
	return fmt.Errorf("invalid layout algorithm: %s", val)
}

func (a layoutAlgorithm) String() string {
	return string(a)
}

func (a *layoutAlgorithm) Type() string {
	return "algorithm"
}

var (
	_ pflag.Value = (*layoutAlgorithm)(nil)

	allLayoutAlgorithms = []layoutAlgorithm{
		knowledge.LayoutSpring,
		knowledge.LayoutCircular,
		knowledge.LayoutRandom,
		knowledge.LayoutShell,
		knowledge.LayoutSpectral,
	}
)

func newGraphCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "graph",
		Short: "Manage the per-course knowledge graph",
	}

	addNodeCmd := &cobra.Command{
		Use:   "add-node COURSE_ID TITLE",
		Short: "Add or update a concept node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			nodeType, _ := flags.GetString("type")
			description, _ := flags.GetString("description")

			repo := knowledge.NewDBRepository(db)
			g, err := repo.LoadForCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.LoadForCourse(%d) > %w", courseID, err)
			}
			if err := g.AddNode(args[1], nodeType, description); err != nil {
				return err
			}
			if err := repo.SaveForCourse(cmd.Context(), courseID, g); err != nil {
				return fmt.Errorf("repo.SaveForCourse(%d) > %w", courseID, err)
			}
			return nil
		},
	}
	addNodeFlags := addNodeCmd.Flags()
	addNodeFlags.String("type", "", "node type")
	addNodeFlags.String("description", "", "node description")

	connectCmd := &cobra.Command{
		Use:   "connect COURSE_ID SOURCE TARGET",
		Short: "Connect two concepts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			relation, _ := cmd.Flags().GetString("relation")

			repo := knowledge.NewDBRepository(db)
			g, err := repo.LoadForCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.LoadForCourse(%d) > %w", courseID, err)
			}
			if err := g.AddEdge(args[1], args[2], relation); err != nil {
				return err
			}
			if err := repo.SaveForCourse(cmd.Context(), courseID, g); err != nil {
				return fmt.Errorf("repo.SaveForCourse(%d) > %w", courseID, err)
			}
			return nil
		},
	}
	connectCmd.Flags().String("relation", "", "edge relation label")

	showCmd := &cobra.Command{
		Use:   "show COURSE_ID",
		Short: "Summarize the graph: statistics, central and isolated nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := knowledge.NewDBRepository(db).LoadForCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.LoadForCourse(%d) > %w", courseID, err)
			}

			analysis := g.Analyze()
			fmt.Printf("Nodes: %d, edges: %d, components: %d, density: %.3f\n",
				analysis.NodeCount, analysis.EdgeCount, analysis.ConnectedComponents, analysis.Density)
			if analysis.MostCentral != "" {
				fmt.Printf("Most connected: %s (%d connection(s))\n",
					analysis.MostCentral, g.Degree(analysis.MostCentral))
			}
			for _, title := range analysis.IsolatedNodes {
				fmt.Printf("Isolated: %s\n", title)
			}
			return nil
		},
	}

	algorithm := layoutAlgorithm(knowledge.LayoutSpring)
	layoutCmd := &cobra.Command{
		Use:   "layout COURSE_ID",
		Short: "Compute node positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := knowledge.NewDBRepository(db).LoadForCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.LoadForCourse(%d) > %w", courseID, err)
			}
			positions, err := g.Layout(string(algorithm))
			if err != nil {
				return err
			}
			for _, title := range g.Nodes() {
				p := positions[title]
				fmt.Printf("%s\t%.3f\t%.3f\n", title, p.X, p.Y)
			}
			return nil
		},
	}
	layoutCmd.Flags().Var(&algorithm, "algorithm",
		fmt.Sprintf("layout algorithm. Possible values are %v", allLayoutAlgorithms))

	exportCmd := &cobra.Command{
		Use:   "export COURSE_ID",
		Short: "Write the graph as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			g, err := knowledge.NewDBRepository(db).LoadForCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.LoadForCourse(%d) > %w", courseID, err)
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				if err := os.MkdirAll(cfg.Exports.GraphsDirectory, 0o755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", cfg.Exports.GraphsDirectory, err)
				}
				path = filepath.Join(cfg.Exports.GraphsDirectory, fmt.Sprintf("course_%d.json", courseID))
			}
			if err := g.SaveFile(path); err != nil {
				return err
			}
			fmt.Printf("Exported %s\n", path)
			return nil
		},
	}
	exportCmd.Flags().String("out", "", "output file path")

	importCmd := &cobra.Command{
		Use:   "import COURSE_ID FILE",
		Short: "Replace the course graph with a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			g, err := knowledge.LoadFile(args[1])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := knowledge.NewDBRepository(db).SaveForCourse(cmd.Context(), courseID, g); err != nil {
				return fmt.Errorf("repo.SaveForCourse(%d) > %w", courseID, err)
			}
			fmt.Printf("Imported %d node(s)\n", len(g.Nodes()))
			return nil
		},
	}

	rootCommand.AddCommand(addNodeCmd, connectCmd, showCmd, layoutCmd, exportCmd, importCmd)
	return &rootCommand
}
