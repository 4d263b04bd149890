package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/source"
)

const searchPayload = `{
	"code": 1,
	"msg": "数据列表",
	"page": 1,
	"list": [
		{
			"vod_id": 1042,
			"vod_name": "黑客帝国",
			"vod_pic": "https://img.example.com/matrix.jpg",
			"vod_remarks": "HD",
			"type_name": "科幻片",
			"vod_year": "1999",
			"vod_play_url": "正片$https://cdn.example.com/matrix/index.m3u8"
		},
		{
			"vod_id": "2077",
			"vod_name": "黑客帝国2",
			"vod_year": 2003,
			"vod_play_url": "第1集$https://cdn.example.com/matrix2/1.m3u8#第2集$https://cdn.example.com/matrix2/2.m3u8$$$第1集$ftp://other/route"
		}
	]
}`

func init() {
	viper.Set(key.SearchTimeout, 2)
}

func descriptorFor(server *httptest.Server) *source.Descriptor {
	return &source.Descriptor{ID: "fake", Name: "Fake", API: server.URL + "/api.php/provide/vod/", Enabled: true}
}

func TestClientSearch(t *testing.T) {
	Convey("Client.Search", t, func() {
		Convey("Should normalize a well-formed payload", func() {
			var gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("wd")
				_, _ = w.Write([]byte(searchPayload))
			}))
			defer server.Close()

			candidates, elapsed, err := NewClient(server.Client()).Search(context.Background(), descriptorFor(server), "matrix", 1)
			So(err, ShouldBeNil)
			So(gotQuery, ShouldEqual, "matrix")
			So(elapsed, ShouldBeGreaterThan, 0)
			So(candidates, ShouldHaveLength, 2)

			So(candidates[0].VodID, ShouldEqual, "1042")
			So(candidates[0].Title, ShouldEqual, "黑客帝国")
			So(candidates[0].Year, ShouldEqual, "1999")
			So(candidates[0].Episodes, ShouldHaveLength, 1)

			// Numeric and string ids normalize the same way.
			So(candidates[1].VodID, ShouldEqual, "2077")
			So(candidates[1].Year, ShouldEqual, "2003")
			// Second route after $$$ is ignored.
			So(candidates[1].Episodes, ShouldHaveLength, 2)
			So(candidates[1].Episodes[1].URL, ShouldEqual, "https://cdn.example.com/matrix2/2.m3u8")
		})

		Convey("Should report ErrMalformedResponse on garbage", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>not json</html>"))
			}))
			defer server.Close()

			_, _, err := NewClient(server.Client()).Search(context.Background(), descriptorFor(server), "matrix", 1)
			So(err, ShouldWrap, ErrMalformedResponse)
		})

		Convey("Should report ErrSourceUnavailable on HTTP error status", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			_, _, err := NewClient(server.Client()).Search(context.Background(), descriptorFor(server), "matrix", 1)
			So(err, ShouldWrap, ErrSourceUnavailable)
		})

		Convey("Should report ErrSourceUnavailable when the source is unreachable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			_, _, err := NewClient(nil).Search(context.Background(), descriptorFor(server), "matrix", 1)
			So(err, ShouldWrap, ErrSourceUnavailable)
		})

		Convey("Should request the page when beyond the first", func() {
			var gotPage string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPage = r.URL.Query().Get("pg")
				_, _ = w.Write([]byte(`{"code": 1, "list": []}`))
			}))
			defer server.Close()

			_, _, err := NewClient(server.Client()).Search(context.Background(), descriptorFor(server), "matrix", 3)
			So(err, ShouldBeNil)
			So(gotPage, ShouldEqual, "3")
		})
	})
}

func TestParsePlayURL(t *testing.T) {
	Convey("parsePlayURL", t, func() {
		Convey("Named episodes", func() {
			eps := parsePlayURL("第1集$https://a/1.m3u8#第2集$https://a/2.m3u8")
			So(eps, ShouldHaveLength, 2)
			So(eps[0].Name, ShouldEqual, "第1集")
			So(eps[1].URL, ShouldEqual, "https://a/2.m3u8")
		})

		Convey("Bare URL entries get generated names", func() {
			eps := parsePlayURL("https://a/1.m3u8")
			So(eps, ShouldHaveLength, 1)
			So(eps[0].Name, ShouldEqual, "第1集")
		})

		Convey("Non-http entries are dropped", func() {
			eps := parsePlayURL("第1集$magnet:?xt=urn#第2集$https://a/2.m3u8")
			So(eps, ShouldHaveLength, 1)
			So(eps[0].URL, ShouldEqual, "https://a/2.m3u8")
		})

		Convey("Empty blob", func() {
			So(parsePlayURL(""), ShouldBeEmpty)
		})
	})
}
