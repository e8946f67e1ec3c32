package command

import (
	"context"
	"fmt"
)

// ModelSwitcher exposes the current model and the list of locally pulled
// ones. The Ollama provider implements it.
type ModelSwitcher interface {
	Model() string
	SetModel(name string)
	Models(ctx context.Context) ([]string, error)
}

type ModelCommand struct {
	provider  ModelSwitcher
	formatter *ResponseFormatter
}

func NewModelCommand(provider ModelSwitcher) *ModelCommand {
	return &ModelCommand{provider: provider, formatter: NewResponseFormatter()}
}

func (c *ModelCommand) Name() string        { return "model" }
func (c *ModelCommand) Description() string { return "Показать или сменить модель: /model [имя]" }

func (c *ModelCommand) Execute(ctx context.Context, _ int64, args []string) (string, error) {
	if len(args) == 0 {
		models, err := c.provider.Models(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list models: %w", err)
		}
		return c.formatter.Combine(
			c.formatter.Info("Модель"),
			c.formatter.Label("Текущая", c.provider.Model()),
			c.formatter.List(models),
			c.formatter.Usage("/model [имя]"),
		), nil
	}

	c.provider.SetModel(args[0])
	return c.formatter.Success(fmt.Sprintf("Модель: %s", args[0])), nil
}
