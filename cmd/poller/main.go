package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/geo"
	"github.com/your-org/amber/internal/ner"
	"github.com/your-org/amber/internal/notify"
	"github.com/your-org/amber/internal/observability"
	"github.com/your-org/amber/internal/pipeline"
	"github.com/your-org/amber/internal/queue"
	"github.com/your-org/amber/internal/registry"
	"github.com/your-org/amber/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting amber poller",
		"interval", cfg.Polling.CycleInterval.String(),
		"registry", cfg.Registry.URL,
	)

	// Initialize ONNX Runtime. On failure the extractor falls back to
	// keyword matching, so this is not fatal.
	ort.SetSharedLibraryPath(getONNXLibPath())
	if err := ort.InitializeEnvironment(); err != nil {
		slog.Warn("onnx runtime init failed, keyword extraction only", "error", err)
	} else {
		defer ort.DestroyEnvironment()
	}

	extractor, closeExtractor := ner.Select(cfg.NER)
	defer closeExtractor()

	// Connect to Postgres
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to MinIO
	photos, err := storage.NewPhotoStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}
	if err := photos.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Push transport
	var pushClient notify.PushClient
	fcm, err := notify.NewFCMClient(ctx, cfg.Push.CredentialsFile)
	if err != nil {
		slog.Warn("fcm unavailable, push sends will be skipped", "error", err)
		pushClient = notify.NoopClient{}
	} else {
		pushClient = fcm
	}
	dispatcher := notify.NewDispatcher(pushClient, db)

	fetcher := registry.NewClient(cfg.Registry)
	geocoder := geo.NewKakaoGeocoder(cfg.Geocode)
	processor := pipeline.NewProcessor(extractor, geocoder, photos)

	poller := pipeline.NewPoller(cfg.Polling, fetcher, processor, db, dispatcher, producer)

	go func() {
		if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("poller stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		slog.Info("poller metrics listening", "addr", ":8082")
		if err := http.ListenAndServe(":8082", mux); err != nil {
			slog.Error("metrics server error", "error", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down poller...")
	cancel()
	time.Sleep(2 * time.Second)
	slog.Info("poller stopped")
}

// getONNXLibPath returns the ONNX Runtime shared library path
// based on the operating system.
func getONNXLibPath() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "linux":
		return "libonnxruntime.so"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "onnxruntime.dll"
	}
}
