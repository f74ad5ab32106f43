package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithConstLabels(map[string]string{"org": "acme"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then observations are exported", func() {
				m.RecordFetchBatch(120)
				m.RecordFetchBatch(80)
				m.RecordFetchBatchFailure()
				m.RecordRepositoryScored(7)

				So(testutil.ToFloat64(m.fetchBatches), ShouldEqual, 2)
				So(testutil.ToFloat64(m.fetchBatchFailures), ShouldEqual, 1)
				So(testutil.ToFloat64(m.reposScored), ShouldEqual, 1)

				n, err := testutil.GatherAndCount(registry, "test_unit_fetch_batches_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})

			Convey("And the level gauges are replaced on update", func() {
				m.UpdateLevelDistribution(map[string]int{"Novice": 3, "Elite": 1})
				m.UpdateLevelDistribution(map[string]int{"Legendary": 2})

				So(testutil.ToFloat64(m.levelRepos.WithLabelValues("Legendary")), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.levelRepos), ShouldEqual, 1)
			})
		})

		Convey("When metrics are disabled", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(registry))
			m.RecordSnapshotSave()

			Convey("Then nothing is registered", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalManager(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(Default(), ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)

		Convey("Then HTTP requests are recorded on the custom registry", func() {
			Default().RecordHTTPRequest("stats", "GET", "200", 1.5)
			n, err := testutil.GatherAndCount(GetRegistry(), "aiready_leaderboard_http_requests_total")
			So(err, ShouldBeNil)
			So(n, ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}
