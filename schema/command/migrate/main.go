package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/store"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("schisto")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("mongo.database", "schisto")
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&schema.Profile{},
	).Error; err != nil {
		panic(err)
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()

	if err := migrateMongo(); err != nil {
		panic(err)
	}
}

func migrateMongo() error {
	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	fmt.Println("initialize hotspot zone collection")
	if err := store.NewMongoStore(client, viper.GetString("mongo.database")).SaveHotspotZones(schema.KenyanHotspotZones); err != nil {
		fmt.Println("failed to set up collection `hotspot_zone`: ", err)
		return err
	}

	return nil
}
