package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/dnng1/gatherly/internal/log"
	"github.com/dnng1/gatherly/pkg/catalog"
	"github.com/dnng1/gatherly/pkg/config"
	"github.com/dnng1/gatherly/pkg/event"
	"github.com/dnng1/gatherly/pkg/export"
	"github.com/dnng1/gatherly/pkg/group"
	"github.com/dnng1/gatherly/pkg/storage"
)

const usage = `Usage: gatherly [-config path] <command> [arguments]

Commands:
  groups                         list the group catalog and membership
  events [-q query]              list upcoming events, optionally filtered
  join -group id | -event id     join a group or an event
  leave -group name | -event id  leave a group (cascades) or an event
  create [flags]                 create an event (see create -help)
  edit -id n [flags]             edit an event in place
  remove -id n                   remove or dismiss an event
  export -format ics|csv [-out path]
  reset                          drop all stored state
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gatherly", flag.ExitOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := global.String("config", defaultConfigPath(), "path to the config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	events := event.NewService(logger, event.NewRepository(store))
	groups := group.NewService(logger, group.NewRepository(store), events)

	// Every run gets a correlation id so records of one invocation can be
	// grouped when the log output is aggregated.
	ctx := log.WithCorrelationID(context.Background(), uuid.NewString())

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "groups":
		return listGroups(ctx, groups)
	case "events":
		return listEvents(ctx, events, rest)
	case "join":
		return join(ctx, groups, events, rest)
	case "leave":
		return leave(ctx, groups, events, rest)
	case "create":
		return create(ctx, events, rest)
	case "edit":
		return edit(ctx, events, rest)
	case "remove":
		return remove(ctx, events, rest)
	case "export":
		return exportEvents(ctx, events, rest)
	case "reset":
		return reset(ctx, groups, events)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/gatherly/config.yml"
	}
	return "gatherly.yml"
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	handler := log.NewPrettyJSONHandler(os.Stderr, &log.PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: level},
		PrettyPrint:    cfg.PrettyLog,
	})
	return slog.New(log.New(handler))
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		return storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	default:
		return storage.NewFile(cfg.DataDir)
	}
}

func listGroups(ctx context.Context, groups *group.Service) error {
	membership := groups.Membership(ctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCADENCE\tJOINED")
	for _, g := range catalog.Groups() {
		joined := ""
		if membership.Joined(g.ID) {
			joined = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", g.ID, g.Name, g.Category, g.Cadence, joined)
	}
	return w.Flush()
}

func listEvents(ctx context.Context, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	query := fs.String("q", "", "keep only events matching this text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tTIME\tLOCATION\tGROUPS")
	for _, e := range events.Upcoming(ctx, *query) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.DateRange(), e.TimeRange(), e.Location, e.GroupNames)
	}
	return w.Flush()
}

func join(ctx context.Context, groups *group.Service, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	groupID := fs.Int("group", -1, "group id to join")
	eventID := fs.Int("event", -1, "event id to join")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *groupID >= 0:
		return groups.Join(ctx, *groupID)
	case *eventID >= 0:
		return events.Join(ctx, *eventID)
	default:
		return fmt.Errorf("join needs -group or -event")
	}
}

func leave(ctx context.Context, groups *group.Service, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("leave", flag.ExitOnError)
	groupName := fs.String("group", "", "group name to leave")
	eventID := fs.Int("event", -1, "event id to leave")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *groupName != "":
		return groups.Leave(ctx, *groupName)
	case *eventID >= 0:
		return events.Leave(ctx, *eventID)
	default:
		return fmt.Errorf("leave needs -group or -event")
	}
}

// inputFlags registers the event fields shared by create and edit.
func inputFlags(fs *flag.FlagSet) func() (event.Input, error) {
	name := fs.String("name", "", "event name")
	location := fs.String("location", "", "event location")
	description := fs.String("description", "", "event description")
	image := fs.String("image", "", "image URL")
	startDate := fs.String("start-date", "", "start date (2006-01-02)")
	endDate := fs.String("end-date", "", "end date (2006-01-02)")
	startTime := fs.String("start-time", "", "start time (15:04)")
	endTime := fs.String("end-time", "", "end time (15:04)")
	groupIDs := fs.String("groups", "", "comma-separated group ids")

	return func() (event.Input, error) {
		ids, err := parseIDList(*groupIDs)
		if err != nil {
			return event.Input{}, err
		}
		return event.Input{
			Name:        *name,
			Location:    *location,
			Description: *description,
			Image:       *image,
			StartDate:   *startDate,
			EndDate:     *endDate,
			StartTime:   *startTime,
			EndTime:     *endTime,
			GroupIDs:    ids,
		}, nil
	}
}

func parseIDList(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid group id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func create(ctx context.Context, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	input := inputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := input()
	if err != nil {
		return err
	}
	created, err := events.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Created event %d: %s\n", created.ID, created.Name)
	return nil
}

func edit(ctx context.Context, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.Int("id", -1, "id of the event to edit")
	input := inputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 0 {
		return fmt.Errorf("edit needs -id")
	}

	in, err := input()
	if err != nil {
		return err
	}
	updated, err := events.Update(ctx, *id, in)
	if err != nil {
		return err
	}
	fmt.Printf("Updated event %d: %s\n", updated.ID, updated.Name)
	return nil
}

func remove(ctx context.Context, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.Int("id", -1, "id of the event to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 0 {
		return fmt.Errorf("remove needs -id")
	}
	return events.Remove(ctx, *id)
}

func exportEvents(ctx context.Context, events *event.Service, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "ics", "export format: ics or csv")
	out := fs.String("out", "", "output file, stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	upcoming := events.Upcoming(ctx, "")
	switch *format {
	case "ics":
		return export.WriteICS(w, "Gatherly", upcoming, time.Now())
	case "csv":
		return export.WriteCSV(w, upcoming)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func reset(ctx context.Context, groups *group.Service, events *event.Service) error {
	if err := events.Reset(ctx); err != nil {
		return err
	}
	return groups.Reset(ctx)
}
