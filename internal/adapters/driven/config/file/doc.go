// Package file stores kpptag settings in a TOML file, by default
// ~/.kpptag/config.toml. Dot-notation keys map to nested tables:
//
//	[tagging]
//	family = "LOx"
//	mode = "strict"
package file
