package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"infoco/internal/config"
	"infoco/internal/domain"
	apperrors "infoco/internal/errors"
	"infoco/internal/logging"
)

// defaultTimeout applies when no configuration has been loaded
const defaultTimeout = 90 * time.Second

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	bootstrap Bootstrap

	in  io.Reader
	out io.Writer

	config *config.Config
	logger *log.Logger
	app    *App
	closer func() error
}

// NewRootCommand creates the root cobra command with global flags.
// bootstrap is called once per invocation, after configuration is loaded.
func NewRootCommand(bootstrap Bootstrap) *RootCommand {
	root := &RootCommand{
		bootstrap: bootstrap,
		in:        os.Stdin,
		out:       os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "infoco",
		Short: "A management dashboard for employees, tasks and municipal finance",
		Long: `Infoco keeps the employees, tasks and municipality finance records of a
small public-services company and answers questions about them.

EXAMPLES:
  infoco dashboard                                  # Stat cards and the most recent tasks
  infoco employee add --name "Ana" --role Analyst   # Register an employee
  infoco task add --employee 1 --title "Audit"      # Assign a task dated today
  infoco task list --status pending --sort recent   # Filter and sort tasks
  infoco municipality list                          # Finance table with totals
  infoco ask "Which municipality owes the most?"    # AI analysis of every record
  infoco export --format json > backup.json         # Dump every collection
  infoco serve --addr :8080                         # JSON HTTP API

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  INFOCO_STORAGE                 sqlite or memory (default: sqlite)
  INFOCO_DB_DIR                  Database directory (default: ~/.infoco)
  INFOCO_DB_FILENAME             Database filename (default: infoco.db)
  INFOCO_AI_API_KEY              Gemini API key (GEMINI_API_KEY and API_KEY are also read)
  INFOCO_AI_MODEL                Gemini model (default: gemini-2.5-flash)
  INFOCO_DISPLAY_DATE_FORMAT     Date display layout (default: 02/01/2006)
  INFOCO_SERVER_ADDR             HTTP listen address (default: :8080)
  INFOCO_APP_TIMEOUT             Command timeout (default: 90s)
  INFOCO_LOG_LEVEL               Log level (default: info)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetIO replaces the input and output streams used by every command
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.cmd.SetOut(out)
}

// SetArgs sets the arguments parsed by Execute instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if err != nil && r.logger != nil && apperrors.ShouldLogError(err) {
		r.logger.WithFields(apperrors.Fields(err)).WithError(err).Debug("command failed")
	}
	// PersistentPostRunE is skipped when RunE fails
	if cerr := r.teardown(); err == nil {
		err = cerr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("storage", "", "Storage driver: sqlite or memory (overrides INFOCO_STORAGE)")
	flags.String("db-dir", "", "Database directory (overrides INFOCO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides INFOCO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides INFOCO_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides INFOCO_DB_WRITE_TIMEOUT)")

	// AI configuration
	flags.String("ai-model", "", "Gemini model (overrides INFOCO_AI_MODEL)")
	flags.Duration("ai-timeout", 0, "AI request timeout (overrides INFOCO_AI_TIMEOUT)")
	flags.Int("ai-max-attempts", 0, "AI request attempts (overrides INFOCO_AI_MAX_ATTEMPTS)")

	// Display configuration
	flags.String("date-format", "", "Date display layout (overrides INFOCO_DISPLAY_DATE_FORMAT)")
	flags.Int("recent-tasks", 0, "Tasks shown on the dashboard (overrides INFOCO_DISPLAY_RECENT_TASKS)")
	flags.Int("markdown-width", 0, "Wrap width of AI answers (overrides INFOCO_DISPLAY_MARKDOWN_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides INFOCO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides INFOCO_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides INFOCO_LOG_LEVEL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.dashboardCommand(),
		r.employeeCommand(),
		r.taskCommand(),
		r.municipalityCommand(),
		r.askCommand(),
		r.exportCommand(),
		r.importCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard",
		Long:  "Show the active employee, task, completed and pending counts, the most recent tasks and the finance totals.",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewDashboardCommand(r.app).Execute(ctx)
		}),
	}
}

func (r *RootCommand) employeeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "Manage employees",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			in := employeeChanges(cmd.Flags()).apply(domain.Employee{}).Input()
			return NewEmployeeCommand(r.app).Add(ctx, in)
		}),
	}
	addEmployeeFlags(add.Flags())

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an employee",
		Long:  "Update the employee with the given id, or pick one from the list. Without field flags every field is prompted for.",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewEmployeeCommand(r.app).Update(ctx, args, employeeChanges(cmd.Flags()))
		}),
	}
	addEmployeeFlags(update.Flags())

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app).Employees(ctx)
		}),
	}

	del := r.deleteCommand("employee", "Tasks assigned to the employee are kept.", func(ctx context.Context, args []string, yes bool) error {
		return NewDeleteCommand(r.app).Employee(ctx, args, yes)
	})

	cmd.AddCommand(add, list, update, del)
	return cmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long:  "Add a task. The date defaults to today and the status to pending.",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewTaskCommand(r.app).Add(ctx, taskChanges(cmd.Flags()))
		}),
	}
	addTaskFlags(add.Flags())

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a task",
		Long:  "Update the task with the given id, or pick one from the list. Without field flags every field is prompted for.",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewTaskCommand(r.app).Update(ctx, args, taskChanges(cmd.Flags()))
		}),
	}
	addTaskFlags(update.Flags())

	var opts TaskListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with optional filtering and ordering.

Sort orders: recent (newest date first), oldest, title, hours (most first).
Without --sort tasks are listed in the order they were added.`,
		Args: cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app).Tasks(ctx, opts)
		}),
	}
	list.Flags().StringVar(&opts.EmployeeID, "employee", "", "Only tasks assigned to this employee id")
	list.Flags().StringVar(&opts.Status, "status", "", "Only tasks in this status: pending, in-progress or completed")
	list.Flags().StringVarP(&opts.Search, "search", "q", "", "Only tasks whose title contains this text")
	list.Flags().StringVar(&opts.Sort, "sort", "", "Sort order: recent, oldest, title or hours")

	del := r.deleteCommand("task", "", func(ctx context.Context, args []string, yes bool) error {
		return NewDeleteCommand(r.app).Task(ctx, args, yes)
	})

	cmd.AddCommand(add, list, update, del)
	return cmd
}

func (r *RootCommand) municipalityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "municipality",
		Aliases: []string{"municipalities", "finance"},
		Short:   "Manage municipality finance records",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a municipality",
		Long:  "Add a municipality finance record. Names are stored upper-case and missing amounts default to zero.",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewMunicipalityCommand(r.app).Add(ctx, financeChanges(cmd.Flags()))
		}),
	}
	addFinanceFlags(add.Flags())

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a municipality",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewMunicipalityCommand(r.app).Update(ctx, args, financeChanges(cmd.Flags()))
		}),
	}
	addFinanceFlags(update.Flags())

	list := &cobra.Command{
		Use:   "list",
		Short: "List municipalities with finance totals",
		Args:  cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app).Municipalities(ctx)
		}),
	}

	del := r.deleteCommand("municipality", "", func(ctx context.Context, args []string, yes bool) error {
		return NewDeleteCommand(r.app).Municipality(ctx, args, yes)
	})

	cmd.AddCommand(add, list, update, del)
	return cmd
}

func (r *RootCommand) deleteCommand(resource, note string, run func(ctx context.Context, args []string, yes bool) error) *cobra.Command {
	long := "Delete the " + resource + " with the given id, or pick one from the list. This cannot be undone."
	if note != "" {
		long += " " + note
	}

	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a " + resource,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return run(ctx, args, yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (r *RootCommand) askCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the AI analyst about the records",
		Long: `Send a question together with every employee, task and finance record to Gemini.

Requires INFOCO_AI_API_KEY, GEMINI_API_KEY or API_KEY. Without arguments the question is prompted for.`,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewAskCommand(r.app).Execute(ctx, args, raw)
		}),
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown answer without rendering it")
	return cmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	var opts ExportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as CSV or JSON",
		Long: `Export records in the specified format.

Supported formats:
  csv  - one collection per file (default collection: tasks)
  json - one collection, or all of them (default: all)`,
		Args: cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewExportCommand(r.app).Execute(ctx, opts)
		}),
	}
	cmd.Flags().StringVarP(&opts.Format, "format", "f", ExportCSV, "Output format: csv or json")
	cmd.Flags().StringVarP(&opts.Collection, "collection", "c", "", "employees, tasks, municipalities or all")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func (r *RootCommand) importCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every record with a JSON export",
		Long:  `Replace every collection with a dataset written by "export --format json". Use "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return NewImportCommand(r.app).Execute(ctx, args[0], yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Long:  "Serve the records over HTTP until interrupted. Routes live under /api.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.app).Execute(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides INFOCO_SERVER_ADDR)")
	return cmd
}

// withTimeout runs fn under the configured application timeout
func (r *RootCommand) withTimeout(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return fn(ctx, cmd, args)
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return defaultTimeout
}

// setup loads configuration, builds the logger and bootstraps the service
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if !needsService(cmd) {
		return nil
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overridesFromFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	r.config = cfg
	r.logger = logging.New(logging.Options{
		Level:   cfg.Application.LogLevel,
		Verbose: cfg.Application.Verbose,
		Output:  cmd.ErrOrStderr(),
	})

	svc, closer, err := r.bootstrap(cmd.Context(), cfg, r.logger)
	if err != nil {
		return err
	}
	r.closer = closer
	r.app = NewAppWithIO(svc, cfg, r.logger, r.in, r.out)
	return nil
}

// teardown releases what setup opened. It is safe to call more than once.
func (r *RootCommand) teardown() error {
	if r.closer == nil {
		return nil
	}
	closer := r.closer
	r.closer = nil
	return closer()
}

// needsService reports whether cmd runs against the records
func needsService(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}
	return cmd.Runnable()
}

// overridesFromFlags returns the overrides for every flag set on the command line
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	return &config.ConfigOverrides{
		Storage:        stringFlag(flags, "storage"),
		DBDir:          stringFlag(flags, "db-dir"),
		DBFilename:     stringFlag(flags, "db-filename"),
		DBQueryTimeout: durationFlag(flags, "db-query-timeout"),
		DBWriteTimeout: durationFlag(flags, "db-write-timeout"),

		AIModel:       stringFlag(flags, "ai-model"),
		AITimeout:     durationFlag(flags, "ai-timeout"),
		AIMaxAttempts: intFlag(flags, "ai-max-attempts"),

		DateFormat:       stringFlag(flags, "date-format"),
		RecentTasksLimit: intFlag(flags, "recent-tasks"),
		MarkdownWidth:    intFlag(flags, "markdown-width"),

		ServerAddr: stringFlag(flags, "addr"),

		Timeout:  durationFlag(flags, "app-timeout"),
		Verbose:  boolFlag(flags, "verbose"),
		LogLevel: stringFlag(flags, "log-level"),
	}
}

func addEmployeeFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Full name")
	flags.String("role", "", "Job title")
	flags.String("department", "", "Department")
	flags.String("email", "", "Email address")
	flags.String("phone", "", "Phone number")
}

func employeeChanges(flags *pflag.FlagSet) EmployeeChanges {
	return EmployeeChanges{
		Name:       stringFlag(flags, "name"),
		Role:       stringFlag(flags, "role"),
		Department: stringFlag(flags, "department"),
		Email:      stringFlag(flags, "email"),
		Phone:      stringFlag(flags, "phone"),
	}
}

func addTaskFlags(flags *pflag.FlagSet) {
	flags.Int64("employee", 0, "Assigned employee id")
	flags.String("title", "", "Task title")
	flags.String("description", "", "Task description")
	flags.String("date", "", "Task date as YYYY-MM-DD")
	flags.Float64("hours", 0, "Hours spent")
	flags.String("status", "", "pending, in-progress or completed")
}

func taskChanges(flags *pflag.FlagSet) TaskChanges {
	return TaskChanges{
		EmployeeID:  int64Flag(flags, "employee"),
		Title:       stringFlag(flags, "title"),
		Description: stringFlag(flags, "description"),
		Date:        stringFlag(flags, "date"),
		Hours:       float64Flag(flags, "hours"),
		Status:      stringFlag(flags, "status"),
	}
}

func addFinanceFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Municipality name")
	flags.String("paid", "", "Amount paid")
	flags.String("pending", "", "Amount pending")
}

func financeChanges(flags *pflag.FlagSet) FinanceChanges {
	return FinanceChanges{
		Municipality: stringFlag(flags, "name"),
		Paid:         stringFlag(flags, "paid"),
		Pending:      stringFlag(flags, "pending"),
	}
}

// The flag helpers return nil unless the flag was set on the command line

func stringFlag(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func durationFlag(flags *pflag.FlagSet, name string) *time.Duration {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetDuration(name)
	if err != nil {
		return nil
	}
	return &v
}

func intFlag(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

func int64Flag(flags *pflag.FlagSet, name string) *int64 {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt64(name)
	if err != nil {
		return nil
	}
	return &v
}

func float64Flag(flags *pflag.FlagSet, name string) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetFloat64(name)
	if err != nil {
		return nil
	}
	return &v
}

func boolFlag(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
