package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/isdmx/envy/config"
	"github.com/isdmx/envy/envy"
	"github.com/isdmx/envy/logger"
	"github.com/isdmx/envy/scaffold"
)

// bindFlags binds config keys to flags; a flag only wins when it was set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func newResolver(cfg *config.Config, log *zap.Logger) (*envy.Resolver, error) {
	return envy.New(cfg.Settings(),
		envy.WithAmbientEnv(cfg.AmbientEnv),
		envy.WithLoader(envy.NewFileLoader(afero.NewOsFs())),
		envy.WithLogger(log),
	)
}

func newScaffolder(log *zap.Logger) *scaffold.Scaffolder {
	return scaffold.New(afero.NewOsFs(), log)
}

// appOptions returns the shared providers. fx only builds what the invoked
// functions ask for, so create never touches the resolver.
func appOptions(v *viper.Viper) fx.Option {
	return fx.Options(
		fx.Supply(v),
		fx.Provide(
			// Config
			config.Load,

			// Logger with configuration
			logger.NewFromConfig,

			newResolver,
			newScaffolder,
		),

		// fx lifecycle events are only interesting when debugging
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
	)
}

// runOnce builds the application, runs invoke and returns its error.
func runOnce(v *viper.Viper, invoke any) error {
	app := fx.New(appOptions(v), fx.Invoke(invoke))
	return app.Err()
}
