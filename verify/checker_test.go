package verify

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

func init() {
	viper.Set(key.VerifyTimeout, 1)
}

func candidateFor(url string) *source.Candidate {
	return &source.Candidate{
		SourceID: "fake",
		VodID:    "1",
		Title:    "probe target",
		Episodes: []source.Episode{{Name: "正片", URL: url}},
	}
}

func TestChecker(t *testing.T) {
	Convey("Checker.Check", t, func() {
		Convey("A responding resource is available", func() {
			var gotRange string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRange = r.Header.Get("Range")
				w.WriteHeader(http.StatusPartialContent)
			}))
			defer server.Close()

			available, latency := NewChecker(server.Client()).Check(context.Background(), candidateFor(server.URL))
			So(available, ShouldBeTrue)
			So(latency, ShouldBeGreaterThan, 0)
			So(gotRange, ShouldEqual, probeByteRange)
		})

		Convey("An HTTP error status is unavailable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			available, _ := NewChecker(server.Client()).Check(context.Background(), candidateFor(server.URL))
			So(available, ShouldBeFalse)
		})

		Convey("A network failure is unavailable, not an error", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			available, _ := NewChecker(nil).Check(context.Background(), candidateFor(server.URL))
			So(available, ShouldBeFalse)
		})

		Convey("A hung resource times out as unavailable", func() {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-release
			}))
			defer func() {
				close(release)
				server.Close()
			}()

			start := time.Now()
			available, _ := NewChecker(server.Client()).Check(context.Background(), candidateFor(server.URL))
			So(available, ShouldBeFalse)
			So(time.Since(start), ShouldBeLessThan, 3*time.Second)
		})

		Convey("A candidate without episodes is unavailable", func() {
			available, latency := NewChecker(nil).Check(context.Background(), &source.Candidate{SourceID: "fake", VodID: "9"})
			So(available, ShouldBeFalse)
			So(latency, ShouldEqual, 0)
		})
	})
}
