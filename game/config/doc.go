// Package config loads world presets from a directory of JSON files.
//
// A preset names the interior size of a world and the ratios used to place
// obstacles and markers; it may pin a seed. The file name without ".json" is
// the config ID. default.json is used as the default preset when present,
// otherwise the first valid preset, otherwise a built-in 8x8 world.
//
//	{
//	  "name": "maze",
//	  "height": 12,
//	  "width": 12,
//	  "wall_ratio": 0.3,
//	  "marker_ratio": 0.05
//	}
package config
