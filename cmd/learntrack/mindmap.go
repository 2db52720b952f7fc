package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/mindmap"
)

func newMindMapCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "mindmap",
		Short: "Manage positioned mind map diagrams",
	}

	createCmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create an empty mind map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			courseID, _ := cmd.Flags().GetInt64("course")
			rec := &mindmap.Record{Title: args[0]}
			if courseID != 0 {
				rec.CourseID = sql.NullInt64{Int64: courseID, Valid: true}
			}
			if err := mindmap.NewDBRepository(db).Save(cmd.Context(), rec, mindmap.NewMap()); err != nil {
				return fmt.Errorf("repo.Save(%s) > %w", rec.Title, err)
			}
			fmt.Printf("Created mind map %d: %s\n", rec.ID, rec.Title)
			return nil
		},
	}
	createCmd.Flags().Int64("course", 0, "course the map belongs to")

	addNodeCmd := &cobra.Command{
		Use:   "add-node MAP_ID TEXT",
		Short: "Add a node to a mind map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			x, _ := flags.GetFloat64("x")
			y, _ := flags.GetFloat64("y")
			nodeColor, _ := flags.GetString("color")
			nodeType, _ := flags.GetString("type")

			repo := mindmap.NewDBRepository(db)
			rec, err := repo.FindByID(cmd.Context(), mapID)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", mapID, err)
			}
			m, err := rec.Map()
			if err != nil {
				return err
			}
			node, err := m.CreateNode(x, y, args[1], nodeColor, nodeType)
			if err != nil {
				return err
			}
			if err := repo.Save(cmd.Context(), rec, m); err != nil {
				return fmt.Errorf("repo.Save(%d) > %w", mapID, err)
			}
			fmt.Printf("Added node %s\n", node.ID)
			return nil
		},
	}
	addNodeFlags := addNodeCmd.Flags()
	addNodeFlags.Float64("x", 400, "node center x")
	addNodeFlags.Float64("y", 300, "node center y")
	addNodeFlags.String("color", "", "node color, e.g. #3498db")
	addNodeFlags.String("type", "", "node type")

	connectCmd := &cobra.Command{
		Use:   "connect MAP_ID SOURCE_NODE_ID TARGET_NODE_ID",
		Short: "Connect two nodes; reconnecting the same pair is a no-op",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			connectionType, _ := flags.GetString("type")
			label, _ := flags.GetString("label")

			repo := mindmap.NewDBRepository(db)
			rec, err := repo.FindByID(cmd.Context(), mapID)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", mapID, err)
			}
			m, err := rec.Map()
			if err != nil {
				return err
			}
			if _, err := m.Connect(args[1], args[2], connectionType, label); err != nil {
				return err
			}
			if err := repo.Save(cmd.Context(), rec, m); err != nil {
				return fmt.Errorf("repo.Save(%d) > %w", mapID, err)
			}
			return nil
		},
	}
	connectFlags := connectCmd.Flags()
	connectFlags.String("type", "", "connection type")
	connectFlags.String("label", "", "connection label")

	listCmd := &cobra.Command{
		Use:   "list COURSE_ID",
		Short: "List the mind maps of a course",
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

			recs, err := mindmap.NewDBRepository(db).FindByCourse(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("repo.FindByCourse(%d) > %w", courseID, err)
			}
			for _, rec := range recs {
				fmt.Printf("%d\t%s\n", rec.ID, rec.Title)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export MAP_ID",
		Short: "Write a mind map as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			rec, err := mindmap.NewDBRepository(db).FindByID(cmd.Context(), mapID)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", mapID, err)
			}
			m, err := rec.Map()
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				if err := os.MkdirAll(cfg.Exports.MapsDirectory, 0o755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", cfg.Exports.MapsDirectory, err)
				}
				path = filepath.Join(cfg.Exports.MapsDirectory, fmt.Sprintf("map_%d.json", mapID))
			}
			if err := m.SaveFile(path); err != nil {
				return err
			}
			fmt.Printf("Exported %s\n", path)
			return nil
		},
	}
	exportCmd.Flags().String("out", "", "output file path")

	importCmd := &cobra.Command{
		Use:   "import TITLE FILE",
		Short: "Create a mind map from a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mindmap.LoadFile(args[1])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			courseID, _ := cmd.Flags().GetInt64("course")
			rec := &mindmap.Record{Title: args[0]}
			if courseID != 0 {
				rec.CourseID = sql.NullInt64{Int64: courseID, Valid: true}
			}
			if err := mindmap.NewDBRepository(db).Save(cmd.Context(), rec, m); err != nil {
				return fmt.Errorf("repo.Save(%s) > %w", rec.Title, err)
			}
			fmt.Printf("Imported mind map %d with %d node(s)\n", rec.ID, len(m.Nodes()))
			return nil
		},
	}
	importCmd.Flags().Int64("course", 0, "course the map belongs to")

	rootCommand.AddCommand(createCmd, addNodeCmd, connectCmd, listCmd, exportCmd, importCmd)
	return &rootCommand
}
