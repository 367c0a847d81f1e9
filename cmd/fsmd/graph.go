package main

import (
	_ "embed"

	"github.com/ziguss/fsm/pkg/fsm"
	"github.com/ziguss/fsm/pkg/fsmyaml"
)

//go:embed task.yaml
var bundledGraph []byte

// loadGraph reads the graph file at path, or the bundled task graph when path is empty.
func loadGraph(path string, listeners fsmyaml.Registry) (fsm.Definition, string, error) {
	if path == "" {
		def, err := fsmyaml.Parse(bundledGraph, listeners)
		return def, "bundled:task.yaml", err
	}
	def, err := fsmyaml.LoadFile(path, listeners)
	return def, path, err
}
