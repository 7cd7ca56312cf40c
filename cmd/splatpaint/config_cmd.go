package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/splat/config"
)

const defaultConfigPath = "splat.yaml"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, check and watch settings files",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigCheckCmd(), newConfigWatchCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check path",
		Short: "Validate a settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (tool=%s mode=%s capacity=%d)\n",
				args[0], s.Tool, s.Mode, s.Store.Capacity)
			return nil
		},
	}
}

func newConfigWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch path",
		Short: "Print settings each time the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			updates, err := config.Watch(ctx, args[0])
			if err != nil {
				return err
			}
			for s := range updates {
				fmt.Fprintf(cmd.OutOrStdout(), "reloaded: tool=%s mode=%s color=%s\n",
					s.Tool, s.Mode, s.Color)
			}
			return nil
		},
	}
}
