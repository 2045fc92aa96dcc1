// Package container recognizes Matroska input files by extension and EBML
// header.
package container
