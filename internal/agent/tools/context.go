// Package tools exposes the fixed catalog of actions the conversational
// agent may run against the inventory store.
package tools

import (
	"inventory-app/internal/llm"

	"gorm.io/gorm"
)

// Context is the immutable bundle handed to every tool. It is built once
// per request and never mutated; tools read from it only.
type Context struct {
	DB     *gorm.DB
	UserID uint

	// Secondary model clients. Either may be nil, in which case the
	// dependent behavior degrades (no expansion / no URL import).
	ExpansionClient  llm.Client
	ExtractionClient llm.Client

	Locale string
}

// NewContext builds a tool context for one request.
func NewContext(db *gorm.DB, userID uint, expansion, extraction llm.Client, locale string) *Context {
	return &Context{
		DB:               db,
		UserID:           userID,
		ExpansionClient:  expansion,
		ExtractionClient: extraction,
		Locale:           locale,
	}
}
