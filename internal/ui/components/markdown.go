// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MaxCachedRenders bounds the rendered-output cache. The cache is dropped
// whole when it fills.
const MaxCachedRenders = 256

// MarkdownRenderer renders assistant replies with glamour. Renderers are
// cached per style and wrap width, and rendered output per text.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// NewMarkdownRenderer creates a renderer with no style selected yet.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{cache: make(map[string]string)}
}

// Render returns text rendered as Markdown for the given glamour style and
// wrap width. On any renderer error the plain text is returned.
func (r *MarkdownRenderer) Render(text, style string, width int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if style != r.style || width != r.width || r.renderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.style = style
		r.width = width
		r.renderer = renderer
		r.cache = make(map[string]string)
	}

	if out, ok := r.cache[text]; ok {
		return out
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	out = trimTrailingNewlines(out)
	if len(r.cache) >= MaxCachedRenders {
		r.cache = make(map[string]string)
	}
	r.cache[text] = out
	return out
}
