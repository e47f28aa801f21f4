package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yungbote/content-intel-backend/internal/app"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/platform/envutil"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

type options struct {
	ids        idList
	category   string
	action     string
	assignedBy string
	dryRun     bool

	// server switches from a direct database write to the dashboard API.
	server    string
	username  string
	password  string
	batchSize int
	timeout   time.Duration
}

func main() {
	_, _ = envutil.Load(".env", ".env.local")
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.ids, "id", "inventory_id to update (repeatable or comma separated)")
	fs.StringVar(&opts.category, "category", "", "content mix category to assign")
	fs.StringVar(&opts.action, "cms-action", "", "CMS action to record")
	fs.StringVar(&opts.assignedBy, "assigned-by", "cli", "assignor recorded with a category change")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "validate and print the patch without writing")
	fs.StringVar(&opts.server, "server", "", "dashboard base URL; when set the update goes through the API")
	fs.StringVar(&opts.username, "user", envutil.String("AUTH_USERNAME", ""), "dashboard login (with -server)")
	fs.StringVar(&opts.password, "password", envutil.String("AUTH_PASSWORD", ""), "dashboard password (with -server)")
	fs.IntVar(&opts.batchSize, "batch", 100, "ids per API request (with -server)")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout (with -server)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	req := classification.UpdateRequest{
		InventoryIDs: classification.IDList(opts.ids),
		Category:     opts.category,
		CMSAction:    opts.action,
		AssignedBy:   opts.assignedBy,
	}
	upd, err := req.Validate("")
	if err != nil {
		fmt.Fprintf(stderr, "invalid request: %v\n", err)
		return 2
	}
	if opts.dryRun {
		fmt.Fprintf(stdout, "would update %d item(s) source=%s assigned_by=%s\n", len(upd.IDs), upd.Source, upd.AssignedBy)
		return 0
	}

	var res *classification.Result
	if opts.server != "" {
		res, err = updateRemote(ctx, opts, req)
	} else {
		res, err = updateLocal(ctx, req)
	}
	if res != nil {
		printResult(stdout, res, len(upd.IDs))
	}
	if err != nil {
		fmt.Fprintf(stderr, "update failed: %v\n", err)
		return 1
	}
	return 0
}

func updateLocal(ctx context.Context, req classification.UpdateRequest) (*classification.Result, error) {
	application, err := app.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	defer application.Close()
	return application.Services.Classification.Update(ctx, req)
}

func printResult(w io.Writer, res *classification.Result, requested int) {
	fmt.Fprintf(w, "updated %d of %d item(s)\n", res.UpdatedCount, requested)
	for _, it := range res.Items {
		mix := ""
		if it.ContentMixCategory != nil {
			mix = *it.ContentMixCategory
		}
		fmt.Fprintf(w, "  %d\t%s\n", it.InventoryID, mix)
	}
}
