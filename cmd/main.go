package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/yggdrasil/bench"
	"github.com/aukilabs/yggdrasil/featureflag"
	"github.com/aukilabs/yggdrasil/geometry"
	ygghttp "github.com/aukilabs/yggdrasil/http"
	"github.com/aukilabs/yggdrasil/octree"
	"github.com/aukilabs/yggdrasil/snapshot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The Yggdrasil version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "yggdrasil_info",
		Help:        "Yggdrasil information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	AdminAddr    string       `cli:""        env:"YGGDRASIL_ADMIN_ADDR"    help:"Admin listening address."`
	LogLevel     string       `cli:""        env:"YGGDRASIL_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool         `cli:""        env:"YGGDRASIL_LOG_INDENT"    help:"Indent logs."`
	Seed         int64        `cli:""        env:"YGGDRASIL_SEED"          help:"The seed that feeds the body generator."`
	Rounds       int          `cli:""        env:"YGGDRASIL_ROUNDS"        help:"The number of benchmark rounds."`
	RoundStep    int          `cli:""        env:"YGGDRASIL_ROUND_STEP"    help:"The body count increment between rounds."`
	VolumeStart  float64      `cli:",hidden" env:"YGGDRASIL_VOLUME_START"  help:"The lower bound of the indexed cube on every axis."`
	VolumeEnd    float64      `cli:",hidden" env:"YGGDRASIL_VOLUME_END"    help:"The upper bound of the indexed cube on every axis."`
	MaxDepth     int          `cli:""        env:"YGGDRASIL_MAX_DEPTH"     help:"The depth where subdivision stops."`
	Relocate     bool         `cli:""        env:"YGGDRASIL_RELOCATE"      help:"Relocate resident bodies on subdivision so only leaves store bodies."`
	CheckBounds  bool         `cli:""        env:"YGGDRASIL_CHECK_BOUNDS"  help:"Reject bodies located outside the indexed volume."`
	Output       string       `cli:""        env:"YGGDRASIL_OUTPUT"        help:"The file where round results are written as JSON lines. - writes to standard output."`
	Snapshot     string       `cli:""        env:"YGGDRASIL_SNAPSHOT"      help:"The BMP file where the last tree is rendered. Empty disables rendering."`
	SnapshotSize int          `cli:",hidden" env:"YGGDRASIL_SNAPSHOT_SIZE" help:"The snapshot image size in pixels."`
	Events       eventsConfig `cli:",hidden" env:"-"                       help:"Event pusher configuration."`
	FeatureFlags []string     `cli:",hidden" env:"YGGDRASIL_FEATURE_FLAGS" help:"Comma separated feature flags"`
	Version      bool         `cli:""        env:"-"                       help:"Show version."`
	Help         bool         `cli:""        env:"-"                       help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"YGGDRASIL_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed."`
	FlushInterval time.Duration `cli:",hidden" env:"YGGDRASIL_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"YGGDRASIL_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"YGGDRASIL_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		AdminAddr:    ":18190",
		LogLevel:     logs.InfoLevel.String(),
		Seed:         1313131313,
		Rounds:       32,
		RoundStep:    64,
		VolumeStart:  0,
		VolumeEnd:    1024,
		MaxDepth:     octree.DefaultMaxDepth,
		Output:       "-",
		SnapshotSize: 1024,
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the Yggdrasil octree construction benchmark.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     metrics.HTTPTransport(http.DefaultTransport),
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "yggdrasil",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	out := io.Writer(os.Stdout)
	if conf.Output != "-" {
		f, err := os.Create(conf.Output)
		if err != nil {
			logs.Fatal(errors.New("creating the output file failed").
				WithTag("path", conf.Output).
				Wrap(err))
		}
		defer f.Close()
		out = f
	}

	flags := featureflag.New(conf.FeatureFlags)

	runner := bench.New(bench.Options{
		Volume:      geometry.Cube(conf.VolumeStart, conf.VolumeEnd),
		Seed:        conf.Seed,
		Rounds:      conf.Rounds,
		RoundStep:   conf.RoundStep,
		MaxDepth:    conf.MaxDepth,
		Relocate:    conf.Relocate,
		CheckBounds: conf.CheckBounds,
		SendResult: func(ctx context.Context, res bench.Result) error {
			body, err := json.Marshal(res)
			if err != nil {
				return errors.New("encoding the round result failed").Wrap(err)
			}
			_, err = fmt.Fprintf(out, "%s\n", body)
			return err
		},
		FeatureFlags: flags,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		results, err := runner.Run(ctx)
		if err != nil && err != context.Canceled {
			logs.Error(errors.New("running the benchmark failed").Wrap(err))
			return
		}

		logs.WithTag("run_id", runner.RunID()).
			WithTag("rounds", len(results)).
			Info("benchmark completed")

		if conf.Snapshot == "" {
			return
		}
		if err := snapshot.WriteFile(conf.Snapshot, runner.LastTree(), conf.SnapshotSize, conf.SnapshotSize); err != nil {
			logs.Warn(errors.New("rendering the last tree failed").Wrap(err))
		}
	}()

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", ygghttp.HandleHealthCheck)
	admin.HandleFunc("/version", ygghttp.HandleVersion(version))
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	admin.Handle("/debug/pprof/block", pprof.Handler("block"))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("admin_addr", conf.AdminAddr).
		WithTag("run_id", runner.RunID()).
		WithTag("feature_flags", flags.Slice()).
		Info("starting yggdrasil benchmark")

	ygghttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.AdminAddr, Handler: metrics.HTTPHandler(&admin,
			ygghttp.MetricsPathFormatter)},
	)

	wg.Wait()
}

func validateConfig(conf config) error {
	if conf.Rounds <= 0 {
		return errors.New("rounds must be positive").
			WithTag("rounds", conf.Rounds)
	}

	if conf.RoundStep <= 0 {
		return errors.New("round step must be positive").
			WithTag("round_step", conf.RoundStep)
	}

	if conf.VolumeEnd <= conf.VolumeStart {
		return errors.New("the volume end must be greater than its start").
			WithTag("volume_start", conf.VolumeStart).
			WithTag("volume_end", conf.VolumeEnd)
	}

	if conf.MaxDepth <= 0 {
		return errors.New("max depth must be positive").
			WithTag("max_depth", conf.MaxDepth)
	}

	if conf.Snapshot != "" && conf.SnapshotSize <= 0 {
		return errors.New("snapshot size must be positive").
			WithTag("snapshot_size", conf.SnapshotSize)
	}

	return nil
}
