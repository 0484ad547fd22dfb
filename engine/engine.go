// Package engine provides implementations of the translation engine boundary.
package engine

import "github.com/ZaguanLabs/lingopack"

// Engine is an alias to the main package interface for convenience.
type Engine = lingopack.Engine

// Language is an alias to the main package interface.
type Language = lingopack.Language

// Translation is an alias to the main package interface.
type Translation = lingopack.Translation

// Package is an alias to the main package interface.
type Package = lingopack.Package
