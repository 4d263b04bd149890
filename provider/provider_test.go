package provider

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmux/vidmux/filesystem"
	"github.com/vidmux/vidmux/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRegistry(t *testing.T) {
	Convey("Registry", t, func() {
		So(Load(), ShouldBeNil)

		Convey("All returns the builtins", func() {
			all := All()
			So(len(all), ShouldBeGreaterThanOrEqualTo, len(Builtins()))
		})

		Convey("Enabled excludes disabled sources", func() {
			for _, d := range Enabled() {
				So(d.Enabled, ShouldBeTrue)
			}
		})

		Convey("Get finds a builtin by id", func() {
			d, ok := Get("ikun")
			So(ok, ShouldBeTrue)
			So(d.Name, ShouldNotBeEmpty)
		})

		Convey("Get on an unknown id", func() {
			_, ok := Get("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("FuzzyFind matches partial ids", func() {
			matches := FuzzyFind("ikn")
			So(matches, ShouldNotBeEmpty)
		})
	})
}

func TestCustoms(t *testing.T) {
	Convey("Custom descriptors", t, func() {
		dir := where.Sources()

		Convey("A valid descriptor file is loaded", func() {
			path := filepath.Join(dir, "acme.json")
			content := []byte(`{"name": "Acme", "api": "https://vod.acme.test/api.php/provide/vod/", "enabled": true}`)
			So(filesystem.API().WriteFile(path, content, 0644), ShouldBeNil)
			defer func() { _ = filesystem.API().Remove(path) }()

			So(Load(), ShouldBeNil)

			d, ok := Get("acme")
			So(ok, ShouldBeTrue)
			So(d.Name, ShouldEqual, "Acme")
			So(d.Enabled, ShouldBeTrue)
		})

		Convey("A custom descriptor shadows a builtin with the same id", func() {
			path := filepath.Join(dir, "ikun.json")
			content := []byte(`{"id": "ikun", "name": "Mine", "api": "https://vod.mine.test/", "enabled": false}`)
			So(filesystem.API().WriteFile(path, content, 0644), ShouldBeNil)
			defer func() { _ = filesystem.API().Remove(path) }()

			So(Load(), ShouldBeNil)

			d, ok := Get("ikun")
			So(ok, ShouldBeTrue)
			So(d.Name, ShouldEqual, "Mine")
		})

		Convey("A malformed descriptor file is skipped", func() {
			path := filepath.Join(dir, "broken.json")
			So(filesystem.API().WriteFile(path, []byte("{not json"), 0644), ShouldBeNil)
			defer func() { _ = filesystem.API().Remove(path) }()

			So(Load(), ShouldBeNil)
			_, ok := Get("broken")
			So(ok, ShouldBeFalse)
		})

		Convey("A descriptor without an endpoint is rejected", func() {
			path := filepath.Join(dir, "noapi.json")
			So(filesystem.API().WriteFile(path, []byte(`{"name": "NoAPI"}`), 0644), ShouldBeNil)
			defer func() { _ = filesystem.API().Remove(path) }()

			So(Load(), ShouldBeNil)
			_, ok := Get("noapi")
			So(ok, ShouldBeFalse)
		})
	})
}
