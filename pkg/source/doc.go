// Package source describes where template and describe documents come from
// (files, fs.FS entries, URLs) and the options used to build loaders for
// them. The loader implementation lives in internal/source/loader.
package source
