package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/service"
)

var errPersonNotFound = errors.New("person not found")

type options struct {
	configFile string
	strategy   string
	source     string
	target     string
	trace      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "degrees [directory]",
		Short: "Find the degrees of separation between two actors",
		Long: `degrees loads a people, movies and stars dataset and prints the shortest
chain of shared movies linking two people. Without a directory the bundled
small dataset (or the configured source) is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", os.Getenv("CONFIG_FILE"), "optional YAML configuration file")
	flags.StringVar(&opts.strategy, "strategy", resolve.StrategyPrompt, "how to pick among people sharing a name: prompt, first or strict")
	flags.StringVar(&opts.source, "source", "", "source person name (prompted when empty)")
	flags.StringVar(&opts.target, "target", "", "target person name (prompted when empty)")
	flags.BoolVar(&opts.trace, "trace", false, "log every search step at debug level")
	return cmd
}

func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(args) == 1 {
		cfg.Dataset = config.DatasetConfig{Source: config.SourceCSV, Dir: args[0]}
	}
	if opts.trace {
		cfg.Search.Trace = true
		cfg.Logging.Level = "debug"
	}

	logger := logging.NewWithWriter(errOut, cfg.Logging).With("component", "degrees")
	ctx = logging.WithLogger(ctx, logger)

	prompt := newPrompt(in, out)
	strategy, err := resolve.ParseStrategy(opts.strategy, prompt)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Loading data from %s...\n", datasetLabel(cfg))
	store, graphClient, err := bootstrap.LoadStore(ctx, logger, cfg)
	if err != nil {
		return err
	}
	if graphClient != nil {
		defer graphClient.Close(context.Background())
	}
	fmt.Fprintln(out, "Data loaded.")

	svc := bootstrap.NewService(cfg.Search, store, logger, nil, service.WithStrategy(strategy))

	sourceID, err := pickPerson(ctx, svc, prompt, opts.source, "Source")
	if err != nil {
		return err
	}
	targetID, err := pickPerson(ctx, svc, prompt, opts.target, "Target")
	if err != nil {
		return err
	}

	conn, err := svc.ResolveAndSearch(ctx, sourceID, targetID)
	if err != nil {
		return err
	}
	return service.Render(out, conn)
}

// pickPerson reads a name unless one was given and resolves it to an id.
func pickPerson(ctx context.Context, svc *service.Degrees, prompt *resolve.Prompt, name, title string) (string, error) {
	if name == "" {
		var err error
		name, err = prompt.AskName(ctx, title+" name")
		if err != nil && !errors.Is(err, resolve.ErrNoSelection) {
			return "", err
		}
	}

	id, err := svc.ResolveName(ctx, name, nil)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, resolve.ErrPersonNameNotFound),
		errors.Is(err, resolve.ErrNoSelection),
		errors.Is(err, service.ErrInvalidQuery):
		return "", fmt.Errorf("%w: %v", errPersonNotFound, err)
	default:
		return "", err
	}
}

// datasetLabel names the dataset being loaded.
func datasetLabel(cfg config.Config) string {
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		return cfg.Dataset.Dir
	case config.SourceNeo4j:
		return cfg.Graph.URI
	default:
		return "bundled dataset"
	}
}

func newPrompt(in io.Reader, out io.Writer) *resolve.Prompt {
	reader := bufio.NewReader(in)
	if f, ok := in.(*os.File); ok {
		return resolve.NewPrompt(f, reader, out)
	}
	return &resolve.Prompt{In: reader, Out: out}
}
