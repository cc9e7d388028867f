package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"globe-quiz-service/internal/config"
	"globe-quiz-service/internal/logger"
)

const defaultConfigPath = "config/config.yaml"

// Execute runs the CLI; cancelling ctx shuts a running server down.
func Execute(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return newRootCmd().ExecuteContext(ctx)
}

// rootOptions resolves the persistent flags: explicit flag, then
// environment (PORT, CONFIG_PATH, APP_ENV), then default.
type rootOptions struct {
	v *viper.Viper
}

func (o rootOptions) port() string       { return o.v.GetString("port") }
func (o rootOptions) configPath() string { return o.v.GetString("config") }
func (o rootOptions) env() string        { return o.v.GetString("env") }

// load reads the config file and builds the logger for the resolved env.
func (o rootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath())
	if err != nil {
		return config.Config{}, nil, err
	}
	if env := o.env(); env != "" {
		cfg.Env = env
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "globe-quiz",
		Short:        "Country quiz question service: fetch, cache, admit and play",
		SilenceUsage: true,
	}
	opts := bindRootOptions(cmd)
	cmd.AddCommand(NewStartCmd(opts))
	cmd.AddCommand(NewMigrateCmd(opts))
	cmd.AddCommand(NewImportCmd(opts))
	cmd.AddCommand(NewLintCmd(opts))
	return cmd
}

func bindRootOptions(cmd *cobra.Command) rootOptions {
	v := viper.New()
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("config", "CONFIG_PATH")
	_ = v.BindEnv("env", "APP_ENV")

	flags := cmd.PersistentFlags()
	flags.String("port", "", "port to listen on (env PORT)")
	flags.String("config", defaultConfigPath, "path to YAML config (env CONFIG_PATH)")
	flags.String("env", "", "runtime environment, production selects JSON logs (env APP_ENV)")
	_ = v.BindPFlags(flags)
	return rootOptions{v: v}
}
