// Package processor provides content processing implementations.
package processor

import "github.com/ZaguanLabs/lingopack"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = lingopack.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = lingopack.TextNode
