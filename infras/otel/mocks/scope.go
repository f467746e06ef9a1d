package mocks

import "roomboard/infras/otel"

// scopeImpl discards everything recorded on it.
type scopeImpl struct{}

func NewScope() otel.Scope {
	return scopeImpl{}
}

func (scopeImpl) End()                         {}
func (scopeImpl) TraceError(error)             {}
func (scopeImpl) TraceIfError(error)           {}
func (scopeImpl) AddEvent(string)              {}
func (scopeImpl) SetAttribute(string, any)     {}
func (scopeImpl) SetAttributes(map[string]any) {}
