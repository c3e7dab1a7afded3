package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		SupplyToken string `yaml:"supply_token" env:"TG_SUPPLY_TOKEN" env-default:""`
		DemandToken string `yaml:"demand_token" env:"TG_DEMAND_TOKEN" env-default:""`
		WebhookKey  string `yaml:"webhook_key" env:"TG_WEBHOOK_KEY" env-default:"path-key"`
		FeedbackBot string `yaml:"feedback_bot" env-default:"@foodshare_feedback_bot"`
		Enabled     bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"foodshare"`
		Enabled  bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"mongo"`
	Kafka struct {
		Enabled    bool     `yaml:"enabled" env-default:"false"`
		Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"127.0.0.1:9092"`
		SuperTopic string   `yaml:"super_topic" env-default:"fanout-super"`
		SendTopic  string   `yaml:"send_topic" env-default:"fanout-send"`
		Group      string   `yaml:"group" env-default:"foodshare-fanout"`
	} `yaml:"kafka"`
	Geo struct {
		GoogleAPIKey string `yaml:"google_api_key" env:"GOOGLE_API_KEY" env-default:""`
		YandexAPIKey string `yaml:"yandex_api_key" env:"YANDEX_API_KEY" env-default:""`
	} `yaml:"geo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
