package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type authBackend struct {
	BaseURL string `mapstructure:"base_url"`
}

type broker struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ProductViewsTopic  string   `mapstructure:"product_views_topic"`
}

type Config struct {
	LogLevel       slog.Level  `mapstructure:"log_level"`
	HTTPServerAddr string      `mapstructure:"http_server_addr"`
	CatalogFile    string      `mapstructure:"catalog_file"`
	DataDir        string      `mapstructure:"data_dir"`
	AuthBackend    authBackend `mapstructure:"auth_backend"`
	Broker         broker      `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CatalogFile=%q
	DataDir=%q

	AuthBackend:
	BaseURL=%q

	BrokerConfig:
	Enabled=%v
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ProductViewsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogFile,
		c.DataDir,
		c.AuthBackend.BaseURL,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ProductViewsTopic,
	)
}
