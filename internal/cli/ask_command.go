package cli

import (
	"context"
	"strings"

	"infoco/internal/view"
)

// AskCommand handles the ask command
type AskCommand struct {
	app *App
}

// NewAskCommand creates a new ask command handler
func NewAskCommand(app *App) *AskCommand {
	return &AskCommand{app: app}
}

// Execute sends the question to the AI analyst and prints its answer.
// Without arguments the question is read from the prompt. The answer is
// rendered as markdown unless raw is set.
func (c *AskCommand) Execute(ctx context.Context, args []string, raw bool) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		var err error
		if question, err = c.app.prompt("Question: "); err != nil {
			return err
		}
	}

	c.app.logger.WithField("length", len(question)).Debug("asking AI analyst")
	answer, err := c.app.service.Analyze(ctx, question)
	if err != nil {
		return err
	}

	if raw {
		c.app.println(answer)
		return nil
	}
	renderer, err := view.NewMarkdownRenderer(c.app.config.Display.MarkdownWidth)
	if err != nil {
		c.app.logger.WithError(err).Debug("printing the answer without markdown rendering")
	}
	c.app.println(renderer.Render(answer))
	return nil
}
