package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"orderflow/cmd"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// commandContext loads configuration and infrastructure once per invocation.
type commandContext struct {
	cfg    *cmd.Config
	logger *slog.Logger
	db     *gorm.DB
	root   *cmd.CompositionRoot
}

func (c *commandContext) config() (cmd.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return cmd.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	c.cfg = &cfg
	return cfg, nil
}

func (c *commandContext) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	level := slog.LevelInfo
	if c.cfg != nil {
		if l, err := c.cfg.SlogLevel(); err == nil {
			level = l
		}
	}
	c.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
	return c.logger
}

func (c *commandContext) database() (*gorm.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	c.db = db
	return db, nil
}

func (c *commandContext) compositionRoot(ctx context.Context) (*cmd.CompositionRoot, error) {
	if c.root != nil {
		return c.root, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	root, err := cmd.NewCompositionRoot(ctx, cfg, db, c.log())
	if err != nil {
		return nil, err
	}
	c.root = root
	return root, nil
}

// close releases what the invocation opened.
func (c *commandContext) close(ctx context.Context) {
	if c.root != nil {
		if err := c.root.Close(ctx); err != nil {
			c.log().Warn("Shutdown incomplete", "error", err)
		}
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "orderflow",
		Short:         "Production order board and stage notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.config(); err != nil {
				return err
			}
			ctx.log()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close(context.WithoutCancel(cmd.Context()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newBoardCommand(ctx))
	rootCmd.AddCommand(newTokensCommand(ctx))
	rootCmd.AddCommand(newNotifyCommand(ctx))

	return rootCmd
}
