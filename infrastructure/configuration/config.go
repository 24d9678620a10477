package configuration

import (
	"fmt"
	"os"
	"strconv"

	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Reddit      Reddit      `json:"reddit"`
	Discovery   Discovery   `json:"discovery"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

// Reddit holds the provider endpoints and defaults. Client credentials are
// not configured here: they live per owner in the credential store.
type Reddit struct {
	AuthURL     string   `json:"authURL"`
	TokenURL    string   `json:"tokenURL"`
	APIBaseURL  string   `json:"apiBaseURL"`
	RedirectURI string   `json:"redirectURI"`
	UserAgent   string   `json:"userAgent"`
	Scopes      []string `json:"scopes"`
}

type Discovery struct {
	HTTPTimeoutSeconds int `json:"httpTimeoutSeconds"`
	DefaultBudget      int `json:"defaultBudget"`
	StateTTLMinutes    int `json:"stateTTLMinutes"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initReddit(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		if v := os.Getenv("MONGO_PORT"); v != "" {
			C.Database.Mongo.Port = v
		} else {
			C.Database.Mongo.Port = "27017"
		}
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Name == "" {
		if v := os.Getenv("MONGO_DB_NAME"); v != "" {
			C.Database.Mongo.Name = v
		} else {
			C.Database.Mongo.Name = "automation"
		}
	}
}

func initApp(C *Config) {
	// Prefer SECRET_KEY from environment for JWT verification; overrides config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initReddit(C *Config) {
	if C.Reddit.AuthURL == "" {
		C.Reddit.AuthURL = "https://www.reddit.com/api/v1/authorize"
	}
	if C.Reddit.TokenURL == "" {
		C.Reddit.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if C.Reddit.APIBaseURL == "" {
		C.Reddit.APIBaseURL = "https://oauth.reddit.com"
	}
	if C.Reddit.RedirectURI == "" {
		C.Reddit.RedirectURI = os.Getenv("REDDIT_REDIRECT_URI")
	}
	if C.Reddit.UserAgent == "" {
		C.Reddit.UserAgent = "web:acid-concepts-automation:v1.0 (campaign monitor)"
	}
	if len(C.Reddit.Scopes) == 0 {
		C.Reddit.Scopes = []string{"identity", "read"}
	}
	if C.Discovery.HTTPTimeoutSeconds == 0 {
		C.Discovery.HTTPTimeoutSeconds = 10
	}
	if C.Discovery.DefaultBudget == 0 {
		C.Discovery.DefaultBudget = 25
	}
	if C.Discovery.StateTTLMinutes == 0 {
		C.Discovery.StateTTLMinutes = 60
	}
}
