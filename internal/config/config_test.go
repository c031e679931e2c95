package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, Mode: "release"},
		Storage: StorageConfig{Driver: StorageMemory},
		Lock:    LockConfig{Driver: LockMemory},
		AI: AIConfig{Options: AIOptionsConfig{
			TemperatureMin: 0.8,
			TemperatureMax: 1.2,
		}},
	}
}

func TestConfigValidate(t *testing.T) {
	Convey("Config.Validate", t, func() {
		Convey("accepts the memory defaults", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("rejects a bad port", func() {
			c := validConfig()
			c.Server.Port = 0
			So(c.Validate(), ShouldNotBeNil)
		})

		Convey("rejects an unknown mode", func() {
			c := validConfig()
			c.Server.Mode = "prod"
			So(c.Validate(), ShouldNotBeNil)
		})

		Convey("requires a dsn for postgres", func() {
			c := validConfig()
			c.Storage.Driver = StoragePostgres
			So(c.Validate(), ShouldNotBeNil)
			c.Postgres.DSN = "postgres://localhost/taleweaver"
			So(c.Validate(), ShouldBeNil)
		})

		Convey("requires uri and database for mongo", func() {
			c := validConfig()
			c.Storage.Driver = StorageMongo
			c.Mongo.URI = "mongodb://localhost:27017"
			So(c.Validate(), ShouldNotBeNil)
			c.Mongo.Database = "taleweaver"
			So(c.Validate(), ShouldBeNil)
		})

		Convey("rejects an unknown storage driver", func() {
			c := validConfig()
			c.Storage.Driver = "sqlite"
			So(c.Validate(), ShouldNotBeNil)
		})

		Convey("requires redis.addr for the redis lock", func() {
			c := validConfig()
			c.Lock.Driver = LockRedis
			So(c.Validate(), ShouldNotBeNil)
			c.Redis.Addr = "localhost:6379"
			So(c.Validate(), ShouldBeNil)
		})

		Convey("rejects an inverted temperature range", func() {
			c := validConfig()
			c.AI.Options.TemperatureMin = 1.5
			So(c.Validate(), ShouldNotBeNil)
		})
	})
}
