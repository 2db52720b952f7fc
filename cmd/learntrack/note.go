package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/note"
)

func newNoteCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "note",
		Short: "Manage study notes",
	}

	createCmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			content, _ := flags.GetString("content")
			courseID, _ := flags.GetInt64("course")
			noteType, _ := flags.GetString("type")
			noteTags, _ := flags.GetStringSlice("tags")

			n := &note.Note{
				Title:    args[0],
				Content:  content,
				NoteType: noteType,
				Tags:     noteTags,
			}
			if courseID != 0 {
				n.CourseID = sql.NullInt64{Int64: courseID, Valid: true}
			}
			if err := note.NewDBRepository(db).Create(cmd.Context(), n); err != nil {
				return fmt.Errorf("repo.Create(%s) > %w", n.Title, err)
			}
			fmt.Printf("Created note %d: %s\n", n.ID, n.Title)
			return nil
		},
	}
	createFlags := createCmd.Flags()
	createFlags.String("content", "", "note body")
	createFlags.Int64("course", 0, "course the note belongs to")
	createFlags.String("type", "", "note type")
	createFlags.StringSlice("tags", nil, "comma-separated tags")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			courseID, _ := flags.GetInt64("course")
			search, _ := flags.GetString("search")

			notes, err := note.NewDBRepository(db).FindAll(cmd.Context(), note.Filter{
				CourseID: courseID,
				Search:   search,
			})
			if err != nil {
				return fmt.Errorf("repo.FindAll > %w", err)
			}
			for _, n := range notes {
				favorite := " "
				if n.IsFavorite {
					favorite = "*"
				}
				fmt.Printf("%d\t%s%s", n.ID, favorite, n.Title)
				if len(n.Tags) > 0 {
					fmt.Printf("\t[%s]", strings.Join(n.Tags, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
	listFlags := listCmd.Flags()
	listFlags.Int64("course", 0, "restrict to a course")
	listFlags.String("search", "", "substring to match in title or content")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := note.NewDBRepository(db).FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", id, err)
			}
			fmt.Printf("# %s\n\n%s\n", n.Title, n.Content)
			return nil
		},
	}

	favoriteCmd := &cobra.Command{
		Use:   "favorite ID",
		Short: "Mark or unmark a note as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			off, _ := cmd.Flags().GetBool("off")
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := note.NewDBRepository(db).SetFavorite(cmd.Context(), id, !off); err != nil {
				return fmt.Errorf("repo.SetFavorite(%d) > %w", id, err)
			}
			return nil
		},
	}
	favoriteCmd.Flags().Bool("off", false, "remove the favorite mark")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := note.NewDBRepository(db).Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("repo.Delete(%d) > %w", id, err)
			}
			fmt.Printf("Deleted note %d\n", id)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a note as Markdown or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := note.NewDBRepository(db).FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", id, err)
			}

			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = cfg.Exports.NotesDirectory
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", outDir, err)
			}
			mdPath := filepath.Join(outDir, fmt.Sprintf("note_%d.md", n.ID))

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "md", "markdown":
				if err := note.ExportMarkdown(n, mdPath); err != nil {
					return err
				}
				fmt.Printf("Exported %s\n", mdPath)
			case "pdf":
				pdfPath, err := note.ExportPDF(n, mdPath)
				if err != nil {
					return err
				}
				fmt.Printf("Exported %s\n", pdfPath)
			default:
				return fmt.Errorf("unknown format %q, use md or pdf", format)
			}
			return nil
		},
	}
	exportFlags := exportCmd.Flags()
	exportFlags.String("format", "md", "export format: md or pdf")
	exportFlags.String("out", "", "output directory")

	rootCommand.AddCommand(createCmd, listCmd, showCmd, favoriteCmd, deleteCmd, exportCmd)
	return &rootCommand
}
