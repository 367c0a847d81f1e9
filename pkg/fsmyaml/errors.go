package fsmyaml

import "errors"

var (
	// ErrParse is returned when the document is not valid YAML or does not match the expected layout.
	ErrParse = errors.New("failed to parse graph definition")

	// ErrEmptyDefinition is returned for a document without content.
	ErrEmptyDefinition = errors.New("graph definition is empty")

	// ErrReadFile is returned when the definition file cannot be read.
	ErrReadFile = errors.New("failed to read graph definition file")

	// ErrUnknownListener is returned when a listener name is not in the registry.
	ErrUnknownListener = errors.New("unknown listener")
)
