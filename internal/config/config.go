package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Backoffice   Backoffice   `mapstructure:",squash"`
	Realtime     Realtime     `mapstructure:",squash"`
	Cache        Cache        `mapstructure:",squash"`
	CacheJanitor CacheJanitor `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Backoffice é o serviço central que detém os registros de vendas, pedidos,
// devoluções e estoque das filiais
type Backoffice struct {
	URL            string `mapstructure:"backoffice_url"`
	AccessToken    string `mapstructure:"backoffice_access_token"`
	TimeoutSeconds int    `mapstructure:"backoffice_timeout_seconds"`
}

type Realtime struct {
	URL     string `mapstructure:"realtime_url"`
	Enabled bool   `mapstructure:"realtime_enabled"`
}

// Cache define os TTLs por tipo de recurso, em segundos
type Cache struct {
	RecordsTTLSeconds   int `mapstructure:"cache_records_ttl_seconds"`
	InventoryTTLSeconds int `mapstructure:"cache_inventory_ttl_seconds"`
	RollupTTLSeconds    int `mapstructure:"cache_rollup_ttl_seconds"`
}

type CacheJanitor struct {
	CronSchedule string `mapstructure:"cache_janitor_cron"`
	Enabled      bool   `mapstructure:"cache_janitor_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("BACKOFFICE_URL", "http://localhost:9000/api/v1")
	viper.SetDefault("BACKOFFICE_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("BACKOFFICE_TIMEOUT_SECONDS", 30)

	viper.SetDefault("REALTIME_URL", "ws://localhost:9000/ws")
	viper.SetDefault("REALTIME_ENABLED", true)

	viper.SetDefault("CACHE_RECORDS_TTL_SECONDS", 60)
	viper.SetDefault("CACHE_INVENTORY_TTL_SECONDS", 30)
	viper.SetDefault("CACHE_ROLLUP_TTL_SECONDS", 300)

	// Marca como obsoletas as entradas frescas cujo TTL venceu
	viper.SetDefault("CACHE_JANITOR_CRON", "*/1 * * * *")
	viper.SetDefault("CACHE_JANITOR_ENABLED", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
