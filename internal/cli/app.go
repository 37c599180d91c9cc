package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"infoco/internal/api"
	"infoco/internal/config"
	"infoco/internal/format"
	"infoco/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App carries what every command handler needs: the facade, configuration and terminal streams
type App struct {
	service api.Service
	config  *config.Config
	logger  *log.Logger
	in      *bufio.Reader
	out     io.Writer
}

// NewApp creates a CLI application bound to stdin and stdout
func NewApp(service api.Service, cfg *config.Config, logger *log.Logger) *App {
	return NewAppWithIO(service, cfg, logger, os.Stdin, os.Stdout)
}

// NewAppWithIO creates a CLI application with explicit input and output streams
func NewAppWithIO(service api.Service, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &App{
		service: service,
		config:  cfg,
		logger:  logger,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) printf(msg string, args ...interface{}) {
	fmt.Fprintf(a.out, msg, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// prompt prints message and returns the next input line without surrounding spaces
func (a *App) prompt(message string) (string, error) {
	a.printf("%s", message)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptField asks for a field value showing the current one.
// Empty input keeps the current value and "-" clears it.
func (a *App) promptField(label, current string) (string, error) {
	value, err := a.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return "", err
	}
	switch value {
	case "":
		return current, nil
	case "-":
		return "", nil
	}
	return value, nil
}

// confirm asks a yes/no question. Anything but y or yes means no.
func (a *App) confirm(message string) (bool, error) {
	answer, err := a.prompt(message + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (a *App) dateLayout() string {
	if a.config.Display.DateFormat != "" {
		return a.config.Display.DateFormat
	}
	return format.DateLayout
}

func (a *App) recentTasksLimit() int {
	if a.config.Display.RecentTasksLimit > 0 {
		return a.config.Display.RecentTasksLimit
	}
	return services.DefaultRecentTasksLimit
}

func (a *App) emptyMessage() string {
	return a.config.Display.EmptyMessage
}

// today returns the current calendar date at UTC midnight
func today() time.Time {
	now := timeNow()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
