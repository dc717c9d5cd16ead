package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tablekit/tablekit/internal/core/eventbus"
	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/pkg/iojson"
)

type NotifyCmd struct {
	flags *Flags

	// add flags
	addTitle  string
	addMsg    string
	addKind   string
	addLink   string
	addItemID string
	addReader iojson.FileReader[notify.Record]

	// ls flags
	lsJSON   bool
	lsUnread bool

	// read flags
	readAll bool

	// emit flags
	emitOrder  string
	emitTable  string
	emitTotal  string
	emitStatus string
	emitItem   string
	emitName   string
	emitPeriod string
}

// NewNotifyCmd creates a new notify command.
func NewNotifyCmd(flags *Flags) *NotifyCmd {
	return &NotifyCmd{flags: flags}
}

// Register adds the notify command to the application.
func (cmd *NotifyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "notify",
		Usage: "Manage back-office notifications",
		Description: `Notification commands for inspecting and producing records outside the TUI.

Records live in the tablekit database; every mutation here is visible to a
running TUI on its next launch. Producers like the POS bridge use 'emit' to
feed domain events through the notification router.`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.lsCmd(),
			cmd.readCmd(),
			cmd.rmCmd(),
			cmd.clearCmd(),
			cmd.countCmd(),
			cmd.emitCmd(),
		},
	})

	return app
}

func (cmd *NotifyCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a notification record",
		UsageText: "tablekit notify add [--title <title>] [options]",
		Description: `Adds a record to the notification log.

The record can be provided as:
- Flags (--title, --message, --kind, --link, --item)
- A JSON file with -f/--file, or piped JSON on stdin
- An interactive form when no title and no JSON input is given

Examples:
  tablekit notify add --title "Order received" --message "Order #42, table 7" --link orders
  tablekit notify add --title "Item saved" --kind success --item itm_81
  echo '{"title":"Report ready","link":"reports"}' | tablekit notify add`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "notification title",
				Destination: &cmd.addTitle,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "notification body",
				Destination: &cmd.addMsg,
			},
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "presentation kind (success, error, info)",
				Value:       string(notify.KindInfo),
				Destination: &cmd.addKind,
			},
			&cli.StringFlag{
				Name:        "link",
				Aliases:     []string{"l"},
				Usage:       "destination route (orders, menu, staff, reports, settings)",
				Destination: &cmd.addLink,
			},
			&cli.StringFlag{
				Name:        "item",
				Usage:       "menu item ID to open on tap",
				Destination: &cmd.addItemID,
			},
			cmd.addReader.Flag(),
		},
		Action: cmd.runAdd,
	}
}

func (cmd *NotifyCmd) runAdd(_ context.Context, c *cli.Command) error {
	var rec notify.Record

	switch {
	case cmd.addTitle != "":
		rec = notify.Record{
			Title:        cmd.addTitle,
			Message:      cmd.addMsg,
			Kind:         notify.Kind(cmd.addKind),
			Link:         notify.Route(cmd.addLink),
			TargetItemID: cmd.addItemID,
		}

	case cmd.addReader.Provided():
		var err error
		rec, err = cmd.addReader.Read()
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		if rec.Kind == "" {
			rec.Kind = notify.KindInfo
		}

	default:
		var err error
		rec, err = cmd.runForm()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := validateRecord(rec); err != nil {
		return err
	}

	cmd.flags.Log.Add(rec)
	cmd.flags.Log.Flush()

	fmt.Fprintf(c.Root().Writer, "Added notification %q\n", rec.Title)
	return nil
}

func (cmd *NotifyCmd) runForm() (notify.Record, error) {
	var rec notify.Record
	kind := string(notify.KindInfo)
	link := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validateTitle).
				Value(&rec.Title),
			huh.NewText().
				Title("Message").
				Value(&rec.Message),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Info", string(notify.KindInfo)),
					huh.NewOption("Success", string(notify.KindSuccess)),
					huh.NewOption("Error", string(notify.KindError)),
				).
				Value(&kind),
			huh.NewSelect[string]().
				Title("Opens").
				Options(
					huh.NewOption("Nothing", ""),
					huh.NewOption("Orders", string(notify.RouteOrders)),
					huh.NewOption("Menu", string(notify.RouteMenu)),
					huh.NewOption("Staff", string(notify.RouteStaff)),
					huh.NewOption("Reports", string(notify.RouteReports)),
					huh.NewOption("Settings", string(notify.RouteSettings)),
				).
				Value(&link),
		),
	)

	if err := form.Run(); err != nil {
		return rec, err
	}

	rec.Kind = notify.Kind(kind)
	rec.Link = notify.Route(link)
	return rec, nil
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func validateRecord(rec notify.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("title is required")
	}

	switch rec.Kind {
	case notify.KindSuccess, notify.KindError, notify.KindInfo:
	default:
		return fmt.Errorf("unknown kind %q (expected success, error, or info)", rec.Kind)
	}

	if rec.Link != "" && !notify.ValidRoute(rec.Link) {
		return fmt.Errorf("unknown route %q", rec.Link)
	}

	return nil
}

func (cmd *NotifyCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List notifications",
		UsageText: "tablekit notify ls [--json] [--unread]",
		Description: `Displays notifications newest first.

Output is a table when stdout is a terminal and JSON lines otherwise;
--json forces JSON lines either way.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.lsJSON,
			},
			&cli.BoolFlag{
				Name:        "unread",
				Aliases:     []string{"u"},
				Usage:       "only show unread notifications",
				Destination: &cmd.lsUnread,
			},
		},
		Action: cmd.runLs,
	}
}

func (cmd *NotifyCmd) runLs(_ context.Context, c *cli.Command) error {
	records := cmd.flags.Log.All()
	if cmd.lsUnread {
		filtered := records[:0:0]
		for _, rec := range records {
			if !rec.Read {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	out := c.Root().Writer

	if cmd.lsJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, rec := range records {
			if err := iojson.WriteLine(out, rec); err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tWHEN\tKIND\tREAD\tTITLE\tMESSAGE")

	for _, rec := range records {
		read := ""
		if rec.Read {
			read = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Kind,
			read,
			rec.Title,
			rec.Message,
		)
	}

	return w.Flush()
}

func (cmd *NotifyCmd) readCmd() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Mark notification(s) as read",
		UsageText: "tablekit notify read <id> | --all",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "mark every notification as read",
				Destination: &cmd.readAll,
			},
		},
		Action: cmd.runRead,
	}
}

func (cmd *NotifyCmd) runRead(_ context.Context, c *cli.Command) error {
	if cmd.readAll {
		for _, rec := range cmd.flags.Log.All() {
			cmd.flags.Log.MarkRead(rec.ID)
		}
		cmd.flags.Log.Flush()
		return nil
	}

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("notification ID required (or use --all)")
	}
	if !hasRecord(cmd.flags.Log, id) {
		return fmt.Errorf("no notification with ID %q", id)
	}

	cmd.flags.Log.MarkRead(id)
	cmd.flags.Log.Flush()
	return nil
}

func (cmd *NotifyCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a notification",
		UsageText: "tablekit notify rm <id>",
		Action:    cmd.runRm,
	}
}

func (cmd *NotifyCmd) runRm(_ context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("notification ID required")
	}
	if !hasRecord(cmd.flags.Log, id) {
		return fmt.Errorf("no notification with ID %q", id)
	}

	cmd.flags.Log.Remove(id)
	cmd.flags.Log.Flush()
	return nil
}

func (cmd *NotifyCmd) clearCmd() *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Delete every notification",
		UsageText: "tablekit notify clear",
		Action: func(ctx context.Context, c *cli.Command) error {
			cmd.flags.Log.ClearAll(ctx)
			return nil
		},
	}
}

func (cmd *NotifyCmd) countCmd() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Print the unread notification count",
		UsageText: "tablekit notify count",
		Description: `Prints the number of unread notifications.

Suited for status bars and shell prompts.`,
		Action: func(_ context.Context, c *cli.Command) error {
			fmt.Fprintln(c.Root().Writer, cmd.flags.Log.UnreadCount())
			return nil
		},
	}
}

func (cmd *NotifyCmd) emitCmd() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "Emit a domain event through the notification router",
		UsageText: "tablekit notify emit <topic> [options]",
		Description: `Publishes a back-office domain event; the notification router turns it
into a record unless a configured mute pattern matches the topic.

Topics: order.received, order.status-changed, menu.item-saved,
menu.item-deleted, staff.invited, report.ready

Examples:
  tablekit notify emit order.received --order 42 --table 7 --total "$31.50"
  tablekit notify emit menu.item-saved --item itm_81 --name Carbonara
  tablekit notify emit report.ready --period "August 2026"`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "order", Usage: "order ID", Destination: &cmd.emitOrder},
			&cli.StringFlag{Name: "table", Usage: "table number", Destination: &cmd.emitTable},
			&cli.StringFlag{Name: "total", Usage: "order total", Destination: &cmd.emitTotal},
			&cli.StringFlag{Name: "status", Usage: "order status", Destination: &cmd.emitStatus},
			&cli.StringFlag{Name: "item", Usage: "menu item ID", Destination: &cmd.emitItem},
			&cli.StringFlag{Name: "name", Usage: "menu item or staff name", Destination: &cmd.emitName},
			&cli.StringFlag{Name: "period", Usage: "report period", Destination: &cmd.emitPeriod},
		},
		Action: cmd.runEmit,
	}
}

func (cmd *NotifyCmd) runEmit(_ context.Context, c *cli.Command) error {
	topic := c.Args().First()
	if topic == "" {
		return fmt.Errorf("event topic required")
	}

	bus := cmd.flags.Bus

	switch eventbus.Event(topic) {
	case eventbus.EventOrderReceived:
		bus.PublishOrderReceived(eventbus.OrderReceivedPayload{
			OrderID: cmd.emitOrder,
			Table:   cmd.emitTable,
			Total:   cmd.emitTotal,
		})
	case eventbus.EventOrderStatusChanged:
		bus.PublishOrderStatusChanged(eventbus.OrderStatusChangedPayload{
			OrderID: cmd.emitOrder,
			Status:  cmd.emitStatus,
		})
	case eventbus.EventMenuItemSaved:
		bus.PublishMenuItemSaved(eventbus.MenuItemSavedPayload{
			ItemID: cmd.emitItem,
			Name:   cmd.emitName,
		})
	case eventbus.EventMenuItemDeleted:
		bus.PublishMenuItemDeleted(eventbus.MenuItemDeletedPayload{
			ItemID: cmd.emitItem,
			Name:   cmd.emitName,
		})
	case eventbus.EventStaffInvited:
		bus.PublishStaffInvited(eventbus.StaffInvitedPayload{
			Name: cmd.emitName,
		})
	case eventbus.EventReportReady:
		bus.PublishReportReady(eventbus.ReportReadyPayload{
			Period: cmd.emitPeriod,
		})
	default:
		return fmt.Errorf("unknown event topic %q", topic)
	}

	cmd.flags.Log.Flush()
	return nil
}

// hasRecord reports whether the log contains a record with the given ID.
func hasRecord(log *notify.Log, id string) bool {
	for _, rec := range log.All() {
		if rec.ID == id {
			return true
		}
	}
	return false
}
