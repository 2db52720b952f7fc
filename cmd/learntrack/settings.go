package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/settings"
)

func newSettingsCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "settings",
		Short: "Inspect and change user preferences",
	}

	openStore := func() (*settings.Store, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		store, err := settings.Load(cfg.Settings.File)
		if err != nil {
			return nil, fmt.Errorf("settings.Load(%s) > %w", cfg.Settings.File, err)
		}
		return store, nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print every preference and its effective value",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			all := store.All()
			keys := make([]string, 0, len(all))
			for key := range all {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Printf("%s = %v\n", key, all[key])
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one preference value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			fmt.Println(store.All()[args[0]])
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a preference and save the settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			store.Set(args[0], args[1])
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}

	rootCommand.AddCommand(listCmd, getCmd, setCmd)
	return &rootCommand
}
