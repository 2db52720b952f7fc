package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/concept"
)

func newConceptCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "concept",
		Short: "Manage the concept taxonomy and entity links",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			description, _ := flags.GetString("description")
			category, _ := flags.GetString("category")
			importance, _ := flags.GetInt("importance")

			c := &concept.Concept{
				Name:        args[0],
				Description: description,
				Category:    category,
				Importance:  importance,
			}
			if err := concept.NewDBRepository(db).Create(cmd.Context(), c); err != nil {
				return fmt.Errorf("repo.Create(%s) > %w", c.Name, err)
			}
			fmt.Printf("Created concept %d: %s\n", c.ID, c.Name)
			return nil
		},
	}
	addFlags := addCmd.Flags()
	addFlags.String("description", "", "concept description")
	addFlags.String("category", "", "concept category")
	addFlags.Int("importance", 1, "importance from 1 to 5")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List concepts by importance",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			category, _ := cmd.Flags().GetString("category")
			concepts, err := concept.NewDBRepository(db).FindAll(cmd.Context(), category)
			if err != nil {
				return fmt.Errorf("repo.FindAll(%s) > %w", category, err)
			}
			for _, c := range concepts {
				fmt.Printf("%d\t%s\t%s\timportance %d\n", c.ID, c.Name, c.Category, c.Importance)
			}
			return nil
		},
	}
	listCmd.Flags().String("category", "", "filter by category")

	linkCmd := &cobra.Command{
		Use:   "link ENTITY_TYPE ENTITY_ID CONCEPT_ID",
		Short: "Link an entity to a concept",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[1])
			if err != nil {
				return err
			}
			conceptID, err := parseID(args[2])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			relationship, _ := flags.GetString("relationship")
			strength, _ := flags.GetFloat64("strength")

			repo := concept.NewDBRepository(db)
			if err := repo.LinkEntity(cmd.Context(), args[0], entityID, conceptID, relationship, strength); err != nil {
				return fmt.Errorf("repo.LinkEntity(%s, %d, %d) > %w", args[0], entityID, conceptID, err)
			}
			return nil
		},
	}
	linkFlags := linkCmd.Flags()
	linkFlags.String("relationship", "related", "relationship type")
	linkFlags.Float64("strength", 1.0, "link strength")

	showCmd := &cobra.Command{
		Use:   "show ENTITY_TYPE ENTITY_ID",
		Short: "List the concepts linked to an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseID(args[1])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			linked, err := concept.NewDBRepository(db).FindForEntity(cmd.Context(), args[0], entityID)
			if err != nil {
				return fmt.Errorf("repo.FindForEntity(%s, %d) > %w", args[0], entityID, err)
			}
			for _, l := range linked {
				fmt.Printf("%s\t%s\tstrength %.1f\n", l.Name, l.RelationshipType, l.Strength)
			}
			return nil
		},
	}

	rootCommand.AddCommand(addCmd, listCmd, linkCmd, showCmd)
	return &rootCommand
}
