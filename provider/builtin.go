package provider

import "github.com/vidmux/vidmux/source"

// Builtins returns the sources shipped with the application.
// The list mirrors publicly documented maccms videolist endpoints.
func Builtins() []*source.Descriptor {
	return []*source.Descriptor{
		{
			ID:      "ikun",
			Name:    "爱坤资源",
			API:     "https://ikunzyapi.com/api.php/provide/vod/",
			Enabled: true,
			Weight:  50,
		},
		{
			ID:      "lzi",
			Name:    "量子资源",
			API:     "https://cj.lziapi.com/api.php/provide/vod/",
			Enabled: true,
			Weight:  40,
		},
		{
			ID:      "bfzy",
			Name:    "暴风资源",
			API:     "https://bfzyapi.com/api.php/provide/vod/",
			Enabled: true,
			Weight:  30,
		},
		{
			ID:      "tyyszy",
			Name:    "天涯资源",
			API:     "https://tyyszy.com/api.php/provide/vod/",
			Enabled: true,
			Weight:  20,
		},
		{
			ID:      "heimuer",
			Name:    "黑木耳资源",
			API:     "https://json.heimuer.xyz/api.php/provide/vod/",
			Enabled: false,
			Weight:  10,
		},
	}
}
