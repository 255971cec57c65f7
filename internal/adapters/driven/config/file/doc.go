// Package file persists regscan settings as config.toml under
// $REGSCAN_HOME. Keys are flat in memory ("fetch.rate") and nested
// tables on disk ([fetch] rate = 2.0).
package file
