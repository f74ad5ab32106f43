package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/aiready/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.OrgName, convey.ShouldEqual, "getsentry")
			convey.So(cfg.MinStars, convey.ShouldEqual, 100)
			convey.So(cfg.BatchSize, convey.ShouldEqual, 3)
			convey.So(cfg.FetchConcurrency, convey.ShouldEqual, 2)
			convey.So(cfg.SnapshotDriver, convey.ShouldEqual, config.DriverFile)
			convey.So(cfg.SnapshotPath, convey.ShouldEqual, "data/repos.json")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.RetryBackoff(), convey.ShouldEqual, 500*time.Millisecond)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the batch size is zero", func() {
			cfg.BatchSize = 0
			err := cfg.Validate()

			convey.Convey("Then it is rejected as invalid config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "BatchSize")
			})
		})

		convey.Convey("When the snapshot driver is unknown", func() {
			cfg.SnapshotDriver = "postgres"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the sqlite driver has no path", func() {
			cfg.SnapshotDriver = config.DriverSQLite
			cfg.SQLitePath = ""
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func TestConfig_RequireToken(t *testing.T) {
	convey.Convey("Given a config without a token", t, func() {
		cfg := config.New(context.Background())

		convey.So(errors.Is(cfg.RequireToken(), config.ErrMissingToken), convey.ShouldBeTrue)

		convey.Convey("When only whitespace is set", func() {
			cfg.GitHubToken = "   "
			convey.So(cfg.RequireToken(), convey.ShouldNotBeNil)
		})

		convey.Convey("When a token is set", func() {
			cfg.GitHubToken = "ghp_x"
			convey.So(cfg.RequireToken(), convey.ShouldBeNil)
		})
	})
}
