package llm

import (
	"context"
	"errors"
)

// disabledClient es el cliente cuando no hay credencial configurada.
// Falla siempre con la misma razón, igual que un fallo de runtime.
type disabledClient struct {
	reason string
}

func NewDisabledClient(reason string) LLMClient {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _ string) (string, error) {
	if c.reason == "" {
		return "", errors.New("llm client disabled")
	}
	return "", errors.New(c.reason)
}
