package view

import (
	"errors"

	"github.com/aescanero/dago-node-view/internal/eval/template"
	"github.com/aescanero/dago-node-view/internal/helper"
)

var (
	// ErrTemplateNotFound is returned when no backing file exists for a view
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateHelper is returned by SetHelper for a name already bound
	ErrDuplicateHelper = helper.ErrDuplicateHelper

	// ErrUnknownHelper is returned by RemoveHelper and Invoke for an unbound name
	ErrUnknownHelper = helper.ErrUnknownHelper
)

// RenderError reports a template that failed to compile or execute
type RenderError = template.RenderError
