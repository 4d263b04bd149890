package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/filesystem"
	"github.com/vidmux/vidmux/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				val := viper.Get(name)
				So(val, ShouldNotBeNil)
			}
		})

		Convey("Verification cap default", func() {
			_ = Setup()
			So(viper.GetInt(key.VerifyConcurrency), ShouldEqual, 8)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("verify.concurrency")
			So(result, ShouldEqual, "verify_concurrency")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.VerifyConcurrency]

		Convey("Env", func() {
			So(f.Env(), ShouldEqual, "VIDMUX_VERIFY_CONCURRENCY")
		})

		Convey("Keys are sorted and complete", func() {
			keys := Keys()
			So(len(keys), ShouldEqual, len(Default))
			So(keys, ShouldContain, key.VerifyConcurrency)
		})
	})
}
