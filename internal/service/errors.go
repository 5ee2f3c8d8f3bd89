package service

import (
	"errors"
	"fmt"

	"template-builder-be/pkg/render"
)

var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrSessionNotFound     = errors.New("editor session not found")
	ErrUnresolvedVariables = errors.New("template has unresolved variables")
	ErrMailerUnavailable   = errors.New("mailer is not configured")
)

// UnresolvedVariablesError lists the tokens that blocked a send
type UnresolvedVariablesError struct {
	Warnings []render.Warning
}

func (e *UnresolvedVariablesError) Error() string {
	return fmt.Sprintf("%s: %d token(s)", ErrUnresolvedVariables.Error(), len(e.Warnings))
}

func (e *UnresolvedVariablesError) Unwrap() error {
	return ErrUnresolvedVariables
}
