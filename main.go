package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/schisto-api/api"
	"github.com/bitmark-inc/schisto-api/external/gemini"
	"github.com/bitmark-inc/schisto-api/geo"
	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/utils"
	"github.com/bitmark-inc/schisto-api/wizard"
)

var (
	server      *api.Server
	ormDB       *gorm.DB
	mongoClient *mongo.Client
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.database", "schisto")
	viper.SetDefault("mongo.pool", 10)
	viper.SetDefault("gemini.model", gemini.DefaultModel)
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("wizard.pacing_delay", 2*time.Second)
	viper.SetDefault("session.idle_timeout", 30*time.Minute)
	viper.SetDefault("usage.free_prompt_limit", 15)

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("schisto")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// loadHotspotZones reads the hotspot zones from mongo. The built-in zones
// are used when the collection is not seeded or not reachable.
func loadHotspotZones(mongoStore store.MongoStore) []schema.HotspotZone {
	zones, err := mongoStore.ListHotspotZones()
	if err != nil {
		log.WithField("prefix", "init").WithError(err).Warn("use built-in hotspot zones")
		return schema.KenyanHotspotZones
	}
	return zones
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	serverCtx, cancelServer := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		cancelServer()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		if mongoClient != nil {
			log.Info("Shutting down mongo store")
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.Error(err)
			}
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded i18n messages")

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("jwt secret is not configured")
	}

	var err error
	ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err = mongo.Connect(initialCtx, opts)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	zones := loadHotspotZones(store.NewMongoStore(mongoClient, viper.GetString("mongo.database")))
	log.WithField("prefix", "init").Infof("Loaded %d hotspot zones", len(zones))

	// Gemini
	var (
		classifier wizard.SnailClassifier
		chatbot    api.Chatbot
	)
	if apiKey := viper.GetString("gemini.apikey"); apiKey != "" {
		client, err := gemini.New(initialCtx, apiKey, viper.GetString("gemini.model"))
		if err != nil {
			log.Panicf("create gemini client with error: %s", err)
		}
		classifier = wizard.NewTextClassifier(client)
		chatbot = client
		log.WithField("prefix", "init").Info("Initialized gemini client")
	} else {
		log.WithField("prefix", "init").Warn("No gemini api key. Snail classification and chat are disabled")
	}

	var resolver geo.LocationResolver
	if apiKey := viper.GetString("googlemaps.apikey"); apiKey != "" {
		r, err := geo.NewGeocodingLocationResolverWithKey(apiKey)
		if err != nil {
			log.Panicf("create location resolver with error: %s", err)
		}
		resolver = r
		log.WithField("prefix", "init").Info("Initialized location resolver")
	}

	sessions := store.NewSessionRegistry(
		viper.GetDuration("session.idle_timeout"),
		wizard.WithZones(zones),
		wizard.WithPacingDelay(viper.GetDuration("wizard.pacing_delay")),
	)
	go sessions.Run(serverCtx, time.Minute)

	// Init http server
	server = api.NewServer(
		serverCtx,
		ormDB,
		mongoClient,
		sessions,
		zones,
		[]byte(jwtSecret),
		classifier,
		chatbot,
		resolver)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
