package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/source"
)

// fakeSource serves a maccms payload with the given vod ids after an optional delay.
func fakeSource(ids []string, delay time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		body := `{"code": 1, "list": [`
		for i, id := range ids {
			if i > 0 {
				body += ","
			}
			body += `{"vod_id": "` + id + `", "vod_name": "title ` + id + `", "vod_play_url": "正片$https://cdn.test/` + id + `.m3u8"}`
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	}))
}

func TestAggregator(t *testing.T) {
	viper.Set(key.SearchTimeout, 2)

	Convey("Aggregator.Search", t, func() {
		fast := fakeSource([]string{"1", "2"}, 0)
		defer fast.Close()
		slow := fakeSource([]string{"3"}, 100*time.Millisecond)
		defer slow.Close()
		dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer dead.Close()

		sources := []*source.Descriptor{
			{ID: "fast", Name: "Fast", API: fast.URL, Enabled: true},
			{ID: "slow", Name: "Slow", API: slow.URL, Enabled: true},
			{ID: "dead", Name: "Dead", API: dead.URL, Enabled: true},
		}

		Convey("Every source reports exactly once, failures swallowed", func() {
			agg := NewAggregator(NewClient(nil))

			seen := map[string]Outcome{}
			for outcome := range agg.Search(context.Background(), "matrix", sources) {
				seen[outcome.Source.ID] = outcome
			}

			So(seen, ShouldHaveLength, 3)
			So(seen["fast"].Err, ShouldBeNil)
			So(seen["fast"].Candidates, ShouldHaveLength, 2)
			So(seen["fast"].Elapsed, ShouldBeGreaterThan, 0)
			So(seen["slow"].Candidates, ShouldHaveLength, 1)

			// The dead source contributes zero candidates and zero latency.
			So(seen["dead"].Err, ShouldNotBeNil)
			So(seen["dead"].Candidates, ShouldBeEmpty)
			So(seen["dead"].Elapsed, ShouldEqual, 0)
		})

		Convey("Outcomes arrive in completion order, not request order", func() {
			agg := NewAggregator(NewClient(nil))

			var order []string
			for outcome := range agg.Search(context.Background(), "matrix", []*source.Descriptor{sources[1], sources[0]}) {
				order = append(order, outcome.Source.ID)
			}

			So(order, ShouldHaveLength, 2)
			So(order[0], ShouldEqual, "fast")
		})

		Convey("Identical runs yield identical merged sets", func() {
			agg := NewAggregator(NewClient(nil))

			collect := func() map[string]bool {
				keys := map[string]bool{}
				for outcome := range agg.Search(context.Background(), "matrix", sources) {
					for _, c := range outcome.Candidates {
						keys[c.Key()] = true
					}
				}
				return keys
			}

			So(collect(), ShouldResemble, collect())
		})
	})
}
