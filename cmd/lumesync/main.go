// lumesync keeps a local model of networked light fixtures synchronized
// with one or more upstream controllers. Controllers only expose
// poll-read and imperative-write APIs; lumesync turns that into a
// push-based view: consumers subscribe to devices and receive real
// changes, with the engine's own writes filtered out of the poll stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lumesync/lumesync/migrations"

	"github.com/lumesync/lumesync/internal/api"
	"github.com/lumesync/lumesync/internal/hub"
	"github.com/lumesync/lumesync/internal/infrastructure/config"
	"github.com/lumesync/lumesync/internal/infrastructure/database"
	"github.com/lumesync/lumesync/internal/infrastructure/influxdb"
	"github.com/lumesync/lumesync/internal/infrastructure/logging"
	"github.com/lumesync/lumesync/internal/infrastructure/mqtt"
	"github.com/lumesync/lumesync/internal/mirror"
	"github.com/lumesync/lumesync/internal/upstream"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// startRetryInterval is the pause between retries when a hub's upstream
// is unavailable at boot.
const startRetryInterval = 30 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting lumesync",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath, "servers", len(cfg.Servers))

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	store := hub.NewStore(db.DB, log)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT mirror disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB history disabled")
	}

	// WebSocket event feed, shared between the hubs (as a tap) and the
	// API server (as the /ws endpoint).
	feed := api.NewEventHub(cfg.WebSocket, log)

	// Create one hub per configured server
	manager := hub.NewManager()
	for _, sc := range cfg.Servers {
		client := upstream.NewHTTPClient(upstream.HTTPConfig{
			URL:     sc.URL,
			Token:   sc.Token,
			Timeout: sc.Timeout(),
		})

		h := hub.New(hub.Config{
			ServerID:     sc.ID,
			Name:         sc.Name,
			PollInterval: sc.PollInterval(),
			WriteMargin:  sc.WriteMargin(),
		}, client, log)

		h.AddTap(store)
		h.AddTap(feed)
		if mqttClient != nil {
			h.AddTap(mirror.NewMQTT(mqttClient, log))
		}
		if influxClient != nil {
			h.AddTap(mirror.NewInflux(influxClient))
		}

		if addErr := manager.Add(h); addErr != nil {
			return fmt.Errorf("registering hub: %w", addErr)
		}

		go drainWarnings(ctx, h, log)
		if startErr := startHub(ctx, h, log); startErr != nil {
			return fmt.Errorf("starting hub %s: %w", sc.ID, startErr)
		}
	}
	defer manager.StopAll()

	// Start the API server
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		WS:      cfg.WebSocket,
		Logger:  log,
		Manager: manager,
		Store:   store,
		Feed:    feed,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// startHub starts one hub, retrying in the background when the upstream
// is unavailable at boot. A controller that is down at startup must not
// take the whole process (or the other hubs) down with it. Configuration
// errors are permanent and are returned rather than retried.
func startHub(ctx context.Context, h *hub.Hub, log *logging.Logger) error {
	err := h.Start(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, hub.ErrPollInterval) {
		return err
	}
	log.Warn("hub start failed, retrying in background",
		"server", h.ServerID(),
		"retry_interval", startRetryInterval,
		"error", err,
	)

	go func() {
		ticker := time.NewTicker(startRetryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := h.Start(ctx); err != nil {
					log.Warn("hub start retry failed", "server", h.ServerID(), "error", err)
					continue
				}
				log.Info("hub started after retry", "server", h.ServerID())
				return
			}
		}
	}()
	return nil
}

// drainWarnings forwards a hub's warning stream to the log until shutdown.
// Warnings are already logged at emission; this drain keeps the buffered
// channel from filling when nothing else consumes it.
func drainWarnings(ctx context.Context, h *hub.Hub, log *logging.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case w := <-h.Warnings():
			log.Debug("hub warning drained",
				"kind", w.Kind,
				"server", w.ServerID,
				"device", w.DeviceID,
			)
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses LUMESYNC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LUMESYNC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
