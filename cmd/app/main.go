package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"orgchart/config"
	"orgchart/internal/command"
	"orgchart/internal/log"
	"orgchart/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "orgchart/cmd/docs"
)

var (
	rootPath = path.RootPath()
	Version  string
	envPath  string
	yamlPath string
	conf     *config.Configuration
	logger   *zap.Logger
)

func init() {
	pflag.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	pflag.StringVarP(&yamlPath, "config", "c", "", "YAML config file, e.g. --config config.yaml")

	cobra.OnInitialize(func() {
		if envPath != "" && yamlPath != "" {
			fmt.Fprintln(os.Stderr, "同時指定 --env 與 --config，將以 --env 優先")
		}
		initConfig()
	})
}

// @title        orgchart API
// @version      1.0
// @description  組織圖查詢 API
// @host         localhost:3000
// @basePath     /
func main() {
	rootCmd := &cobra.Command{
		Use: "app",
		Run: func(cmd *cobra.Command, args []string) {
			if conf == nil {
				panic("config is nil! Check config/initConfig logic.")
			}
			logger := initLogger()
			defer logger.Sync()
			app, cleanup, err := wireApp(conf, logger)
			if err != nil {
				panic(err)
			}
			defer cleanup()

			logger.Info("start app ...")
			if err := app.Run(); err != nil {
				panic(err)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info("shutdown app ...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := app.Stop(ctx); err != nil {
				panic(err)
			}
		},
	}

	// --env / --config 對所有子命令都有效，由 cobra 統一解析
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(conf, initLogger())
	}, initLogger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger 依設定建立 logger，只建立一次
func initLogger() *zap.Logger {
	if logger != nil {
		return logger
	}
	if conf == nil {
		panic("config is nil! Check config/initConfig logic.")
	}
	var err error
	logger, err = log.NewLogger(conf)
	if err != nil {
		panic(fmt.Errorf("init logger failed: %w", err))
	}
	return logger
}

func initConfig() {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	// 允許以空字串停用排程
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	setDefaults(v)

	useFile := false

	if envPath != "" {
		useFile = true
		envPath = path.Resolve(envPath, rootPath)
		fmt.Fprintln(os.Stderr, "load .env config:", envPath)
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
	} else if yamlPath != "" {
		useFile = true
		yamlPath = path.Resolve(yamlPath, rootPath, "conf")
		fmt.Fprintln(os.Stderr, "load yaml config:", yamlPath)
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
	} else {
		fmt.Fprintln(os.Stderr, "No configuration file specified, using environment variables only.")
	}

	if useFile {
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("read config failed: %w", err))
		}
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			fmt.Fprintln(os.Stderr, "config file changed:", in.Name)
			if err := v.Unmarshal(&conf); err != nil {
				fmt.Fprintln(os.Stderr, "unmarshal on change failed:", err)
			}
		})
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))

	if err := v.Unmarshal(&conf); err != nil {
		fmt.Fprintln(os.Stderr, "unmarshal config failed:", err)
	}
	// 以 -ldflags "-X main.Version=..." 注入的版本優先
	if Version != "" && conf != nil {
		conf.App.Version = Version
	}

}
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP__NAME", "orgchart")
	v.SetDefault("APP__PORT", 3000)
	v.SetDefault("LOG__LEVEL", "info")
	v.SetDefault("ORGCHART__REFRESH_SPEC", config.DefaultRefreshSpec)
	v.SetDefault("ORGCHART__CACHE_CODEC", "zstd")
	v.SetDefault("ORGCHART__FALLBACK_TO_CACHE", true)
}

func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	// 若遇到指標，取其 Elem
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(path, tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
		} else {
			v.BindEnv(strings.Join(newPath, "__"))
		}
	}
}
