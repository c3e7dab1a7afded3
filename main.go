package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"foodshare/bot/demand"
	"foodshare/bot/engine"
	"foodshare/bot/notify"
	"foodshare/bot/supply"
	"foodshare/bot/telegram"
	"foodshare/entity"
	"foodshare/internal/config"
	repository "foodshare/internal/database"
	"foodshare/internal/database/memory"
	"foodshare/internal/geo"
	"foodshare/internal/http-server/api"
	"foodshare/internal/lib/logger"
	"foodshare/internal/lib/sl"
	"foodshare/internal/queue"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting foodshare", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx := context.Background()

	var store engine.Store
	db, err := repository.NewMongoClient(ctx, conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("mongo client")
		os.Exit(1)
	}
	if db != nil {
		defer db.Disconnect(ctx)
		store = db
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		store = memory.NewStore()
		lg.Warn("mongo disabled, state is kept in memory only")
	}

	var sender queue.Sender
	if conf.Telegram.Enabled {
		supplyAPI, err := tgbotapi.NewBot(conf.Telegram.SupplyToken, nil)
		if err != nil {
			lg.With(sl.Err(err)).Error("supply bot")
			os.Exit(1)
		}
		demandAPI, err := tgbotapi.NewBot(conf.Telegram.DemandToken, nil)
		if err != nil {
			lg.With(sl.Err(err)).Error("demand bot")
			os.Exit(1)
		}
		sender = telegram.NewMessenger(supplyAPI, demandAPI, lg)
		lg.Info("telegram bots initialized")
	} else {
		sender = &logSender{log: lg}
		lg.Warn("telegram disabled, deliveries are logged only")
	}

	processor := queue.NewProcessor(sender, entity.ProviderTelegram, store, lg)

	var q queue.Queue
	if conf.Kafka.Enabled {
		kq, err := queue.NewKafkaQueue(conf.Kafka.Brokers, conf.Kafka.SendTopic, conf.Kafka.SuperTopic, lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("kafka producer")
			os.Exit(1)
		}
		defer kq.Close()

		superConsumer, err := queue.NewConsumer(conf.Kafka.Brokers, conf.Kafka.Group+"-super",
			queue.NewSuperConsumer(kq, lg), lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("kafka super consumer")
			os.Exit(1)
		}
		sendConsumer, err := queue.NewConsumer(conf.Kafka.Brokers, conf.Kafka.Group+"-send",
			queue.NewSendConsumer(processor, lg), lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("kafka send consumer")
			os.Exit(1)
		}
		go func() {
			if err := superConsumer.Run(ctx, []string{conf.Kafka.SuperTopic}); err != nil {
				lg.With(sl.Err(err)).Error("super consumer stopped")
			}
		}()
		go func() {
			if err := sendConsumer.Run(ctx, []string{conf.Kafka.SendTopic}); err != nil {
				lg.With(sl.Err(err)).Error("send consumer stopped")
			}
		}()
		q = kq
		lg.With(slog.Any("brokers", conf.Kafka.Brokers)).Info("kafka fan-out initialized")
	} else {
		lq := queue.NewLocalQueue(processor, 4, lg)
		defer lq.Close()
		q = lq
		lg.Info("local fan-out queue initialized")
	}

	resolver := geo.NewResolver(
		geo.NewGoogleGeocoder(conf.Geo.GoogleAPIKey, lg),
		geo.NewYandexGeocoder(conf.Geo.YandexAPIKey, lg),
		lg,
	)

	notifier := notify.New(store, q, lg)

	eng := engine.New(store, notifier, lg)
	eng.Register(supply.New(store, notifier, resolver, conf.Telegram.FeedbackBot, lg).Workflow())
	eng.Register(demand.New(store, notifier, lg).Workflow())

	if err := api.New(conf, lg, eng); err != nil {
		lg.With(sl.Err(err)).Error("api server")
		os.Exit(1)
	}
}

// logSender stands in for the real messenger when Telegram is disabled.
type logSender struct {
	log *slog.Logger
}

func (s *logSender) Deliver(_ context.Context, env queue.Envelope) queue.Result {
	s.log.Info("delivery (dry run)",
		slog.Int64("chat_id", env.ChatID),
		slog.String("workflow", string(env.Workflow)),
		slog.String("text", env.Reply.Text),
	)
	return queue.Delivered
}
