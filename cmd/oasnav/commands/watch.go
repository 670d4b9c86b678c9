package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/oasnav/oasnav/internal/cliutil"
	"github.com/oasnav/oasnav/workspace"
)

// HandleWatch implements the "watch" command: print the navigation tree and
// print it again whenever a watched file changes.
func HandleWatch(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runWatch(ctx, args, os.Stdout)
}

func runWatch(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)

	var nav NavFlags
	nav.register(fs)
	depth := fs.Int("depth", 0, "Maximum outline depth (0 = unlimited)")
	ids := fs.Bool("ids", false, "Print ids next to titles")
	debounce := fs.Duration("debounce", workspace.DefaultDebounce, "Wait this long after the last change before reloading")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnav watch [flags] <file>...\n\n")
		_, _ = fmt.Fprintf(output, "Print the navigation and reprint it whenever a file changes. Stop with Ctrl-C.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("watch command requires at least one file path")
	}
	for _, path := range fs.Args() {
		if path == StdinFilePath {
			return fmt.Errorf("watch cannot read from stdin")
		}
	}
	if nav.Name != "" && fs.NArg() > 1 {
		return fmt.Errorf("--name requires exactly one input file")
	}

	logger := nav.logger()
	opts, err := nav.options(logger)
	if err != nil {
		return err
	}
	store := workspace.New(workspace.WithLogger(logger))
	watcher, err := workspace.NewWatcher(store, workspace.WithDebounce(*debounce))
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range fs.Args() {
		name := documentName(path)
		if nav.Name != "" {
			name = nav.Name
		}
		if err := watcher.Watch(name, path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	outline := cliutil.OutlineOptions{MaxDepth: *depth, IDs: *ids}
	var mu sync.Mutex
	render := func(header string) {
		entries, err := store.Navigation(opts...)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			cliutil.Writef(w, "%s\nerror: %v\n", header, err)
			return
		}
		cliutil.Writef(w, "%s\n", header)
		cliutil.WriteOutline(w, entries, outline)
	}

	unsubscribe := store.Subscribe(func(e workspace.Event) {
		if e.Kind == workspace.EventSettings {
			return
		}
		render(fmt.Sprintf("--- %s %s %s", time.Now().Format(time.TimeOnly), e.Kind, e.Name))
	})
	defer unsubscribe()
	render(fmt.Sprintf("--- %s watching %d document(s)", time.Now().Format(time.TimeOnly), store.Len()))

	return watcher.Run(ctx)
}

