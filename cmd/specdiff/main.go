// Command specdiff projects a spec-event chunk directory into a shape &
// endpoint graph and diffs concrete HTTP interactions against it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/driftcheck/specdiff/internal/chunk"
	"github.com/driftcheck/specdiff/internal/diff"
	"github.com/driftcheck/specdiff/internal/diffevents"
	"github.com/driftcheck/specdiff/internal/eventbus"
	"github.com/driftcheck/specdiff/internal/otel"
	"github.com/driftcheck/specdiff/internal/projection"
	"github.com/driftcheck/specdiff/internal/reqid"
	"github.com/driftcheck/specdiff/internal/specevent"
)

const rootUsage = `specdiff — event-sourced API spec diff engine

USAGE:
  specdiff <command> [flags]

COMMANDS:
  classify   Classify and order a directory of spec-event chunk files
  project    Build the shape & endpoint projection and report warnings
  diff       Diff one or more HTTP interactions against a projected spec
  help       Show help for any command
`

const classifyUsage = `classify FLAGS:
  -chunks <dir>   Directory of *.json spec-event chunk files (required)
`

const projectUsage = `project FLAGS:
  -chunks <dir>   Directory of *.json spec-event chunk files (required)
`

const diffUsage = `diff FLAGS:
  -chunks <dir>       Directory of *.json spec-event chunk files (required)
  -interactions <file> JSON array of HTTPInteraction records (required)
  -otel.endpoint <addr> OTLP collector endpoint
  -otel.service <name>  OpenTelemetry service name (default: specdiff)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("specdiff", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer))
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "classify":
		return cmdClassify(cmdArgs)
	case "project":
		return cmdProject(cmdArgs)
	case "diff":
		return cmdDiff(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "classify":
		fmt.Print(classifyUsage)
	case "project":
		fmt.Print(projectUsage)
	case "diff":
		fmt.Print(diffUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// loadChunks reads every *.json file in dir, classifying "specification.json"
// as the root chunk and every other file as a candidate batch, then returns
// them in replay order as computed by chunk.Order.
func loadChunks(ctx context.Context, dir string) ([]chunk.Chunk, error) {
	start := time.Now()
	eventbus.Publish(ctx, diffevents.ChunkLoadStart{SourceName: dir})

	entries, err := os.ReadDir(dir)
	if err != nil {
		eventbus.Publish(ctx, diffevents.ChunkLoadFinish{SourceName: dir, Duration: time.Since(start), Err: err})
		return nil, fmt.Errorf("read chunk dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	chunks := make([]chunk.Chunk, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			eventbus.Publish(ctx, diffevents.ChunkLoadFinish{SourceName: dir, Duration: time.Since(start), Err: err})
			return nil, fmt.Errorf("read chunk %s: %w", name, err)
		}
		var events []specevent.SpecEvent
		if err := json.Unmarshal(data, &events); err != nil {
			eventbus.Publish(ctx, diffevents.ChunkLoadFinish{SourceName: dir, Duration: time.Since(start), Err: err})
			return nil, fmt.Errorf("decode chunk %s: %w", name, err)
		}
		chunks = append(chunks, chunk.Classify(name, name == "specification.json", events))
	}

	ordered, err := chunk.Order(chunks)
	if err != nil {
		eventbus.Publish(ctx, diffevents.ChunkLoadFinish{SourceName: dir, Duration: time.Since(start), Err: err})
		return nil, fmt.Errorf("order chunks: %w", err)
	}
	eventbus.Publish(ctx, diffevents.ChunkLoadFinish{SourceName: dir, ChunkCount: len(ordered), Duration: time.Since(start)})
	return ordered, nil
}

func cmdClassify(args []string) error {
	var chunksDir string
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&chunksDir, "chunks", "", "Directory of spec-event chunk files")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, classifyUsage)
		return err
	}
	if chunksDir == "" {
		fmt.Fprint(os.Stderr, classifyUsage)
		return fmt.Errorf("-chunks is required")
	}

	chunks, err := loadChunks(context.Background(), chunksDir)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		fmt.Printf("%-8s %-24s parent=%s\n", c.Kind, c.Name, c.ParentID)
	}
	return nil
}

func cmdProject(args []string) error {
	var chunksDir string
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&chunksDir, "chunks", "", "Directory of spec-event chunk files")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, projectUsage)
		return err
	}
	if chunksDir == "" {
		fmt.Fprint(os.Stderr, projectUsage)
		return fmt.Errorf("-chunks is required")
	}

	ctx := context.Background()
	chunks, err := loadChunks(ctx, chunksDir)
	if err != nil {
		return err
	}

	start := time.Now()
	eventbus.Publish(ctx, diffevents.ProjectionBuildStart{ChunkCount: len(chunks)})
	result, err := projection.Build(ctx, chunks)
	eventbus.Publish(ctx, diffevents.ProjectionBuildFinish{
		ChunkCount:       len(chunks),
		ShapeWarnings:    len(result.ShapeWarnings),
		EndpointWarnings: len(result.EndpointWarnings),
		Duration:         time.Since(start),
		Err:              err,
	})
	if err != nil {
		return fmt.Errorf("build projection: %w", err)
	}

	fmt.Printf("shapes=%d fields=%d paths=%d requests=%d responses=%d\n",
		len(result.Shape.Shapes), len(result.Shape.Fields),
		len(result.Endpoint.Paths), len(result.Endpoint.Requests), len(result.Endpoint.Responses))
	for _, w := range result.ShapeWarnings {
		fmt.Printf("shape warning: %s\n", w.Message)
	}
	for _, w := range result.EndpointWarnings {
		fmt.Printf("endpoint warning: %s\n", w.Message)
	}
	return nil
}

func cmdDiff(args []string) error {
	var chunksDir, interactionsFile, otelEndpoint, otelService string
	otelService = "specdiff"
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&chunksDir, "chunks", "", "Directory of spec-event chunk files")
	fs.StringVar(&interactionsFile, "interactions", "", "JSON array of HTTPInteraction records")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, diffUsage)
		return err
	}
	if chunksDir == "" || interactionsFile == "" {
		fmt.Fprint(os.Stderr, diffUsage)
		return fmt.Errorf("-chunks and -interactions are required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx, _ := reqid.NewContext(context.Background())

	chunks, err := loadChunks(ctx, chunksDir)
	if err != nil {
		return err
	}

	start := time.Now()
	eventbus.Publish(ctx, diffevents.ProjectionBuildStart{ChunkCount: len(chunks)})
	result, err := projection.Build(ctx, chunks)
	eventbus.Publish(ctx, diffevents.ProjectionBuildFinish{
		ChunkCount:       len(chunks),
		ShapeWarnings:    len(result.ShapeWarnings),
		EndpointWarnings: len(result.EndpointWarnings),
		Duration:         time.Since(start),
		Err:              err,
	})
	if err != nil {
		return fmt.Errorf("build projection: %w", err)
	}

	data, err := os.ReadFile(interactionsFile)
	if err != nil {
		return fmt.Errorf("read interactions: %w", err)
	}
	var interactions []diff.HTTPInteraction
	if err := json.Unmarshal(data, &interactions); err != nil {
		return fmt.Errorf("decode interactions: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, interaction := range interactions {
		runStart := time.Now()
		eventbus.Publish(ctx, diffevents.DiffRunStart{Method: interaction.Request.Method, Path: interaction.Request.Path})
		results := diff.Run(ctx, interaction, result)
		eventbus.Publish(ctx, diffevents.DiffRunFinish{
			Method:      interaction.Request.Method,
			Path:        interaction.Request.Path,
			ResultCount: len(results),
			Duration:    time.Since(runStart),
		})
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	}
	return nil
}
