// Package editor builds form schemas interactively. Sections and fields carry
// synthetic ids while they are edited; the ids never leave the editor and are
// dropped on export.
//
// The editor is a standalone producer of the schema document. Nothing in the
// wizard depends on it; the two only meet through the exported JSON.
package editor
