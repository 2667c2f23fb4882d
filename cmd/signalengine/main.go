package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"signalengine/internal/audit"
	"signalengine/internal/config"
	"signalengine/internal/dispatcher"
	"signalengine/internal/feed/binance"
	"signalengine/internal/indicators"
	"signalengine/internal/notify"
	"signalengine/internal/notify/push"
	"signalengine/internal/notify/telegram"
	"signalengine/internal/notify/webhook"
	"signalengine/internal/notify/wsbroadcast"
	"signalengine/internal/srzone"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sinks []notify.Sink

	if cfg.Alerts.EnableWebhook {
		sinks = append(sinks, webhook.New(cfg.Alerts.WebhookURL))
		log.Println("✓ webhook sink enabled")
	}
	if cfg.Alerts.EnableTelegram {
		sinks = append(sinks, telegram.New(cfg.Alerts.TelegramToken, cfg.Alerts.TelegramChatID))
		log.Println("✓ telegram sink enabled")
	}
	if cfg.Alerts.EnablePush {
		credPath := cfg.Alerts.FirebaseCreds
		if credPath == "" {
			if envPath, err := push.CredentialsFromEnv(); err != nil {
				log.Printf("push: %v, continuing without push sink", err)
			} else {
				credPath = envPath
			}
		}
		pushSink, err := push.New(credPath)
		if err != nil {
			log.Printf("push: %v, continuing without push sink", err)
		} else {
			sinks = append(sinks, pushSink)
			log.Println("✓ push sink enabled")
		}
	}

	var wsHub *wsbroadcast.Hub
	if cfg.Alerts.EnableWSBroadcast {
		wsHub = wsbroadcast.New()
		sinks = append(sinks, wsHub)
		log.Println("✓ ws broadcast sink enabled")
	}

	if cfg.Audit.Enabled {
		pool, err := audit.NewPool(ctx, cfg.Audit.DatabaseURL, audit.DefaultPoolConfig())
		if err != nil {
			log.Fatalf("audit: creating DB pool: %v", err)
		}
		defer pool.Close()
		if err := audit.Migrate(ctx, pool); err != nil {
			log.Fatalf("audit: migrate failed: %v", err)
		}
		sinks = append(sinks, audit.NewSink(pool))
		log.Println("✓ audit sink enabled")
	}

	symbols := make(map[string]bool, len(cfg.Exchange.Symbols))
	for _, s := range cfg.Exchange.Symbols {
		symbols[strings.ToUpper(s)] = true
	}

	timeframes := make([]dispatcher.TFConfig, len(cfg.Timeframes))
	for i, tf := range cfg.Timeframes {
		timeframes[i] = dispatcher.TFConfig{
			TF:                tf.TF,
			AdxTrendThreshold: tf.AdxTrendThreshold,
			ScoreThreshold:    tf.ScoreThreshold,
		}
	}

	indicatorParams := indicators.Params{
		EMAFast:    cfg.Indicators.EMAFast,
		EMASlow:    cfg.Indicators.EMASlow,
		RSILength:  cfg.Indicators.RSILength,
		MACDFast:   cfg.Indicators.MACDFast,
		MACDSlow:   cfg.Indicators.MACDSlow,
		MACDSignal: cfg.Indicators.MACDSignal,
		BBLength:   cfg.Indicators.BBLength,
		BBStd:      cfg.Indicators.BBStd,
		ATRLength:  cfg.Indicators.ATRLength,
		ADXLength:  cfg.Indicators.ADXLength,
	}
	srParams := srzone.Params{
		PivotWindow:           cfg.SR.PivotWindow,
		MergeTolerancePct:     cfg.SR.MergeTolerancePct,
		MergeToleranceATRMult: cfg.SR.MergeToleranceATRMult,
		MaxAgeBars:            cfg.SR.MaxAgeBars,
		DecayPerBar:           cfg.SR.DecayPerBar,
	}

	d := dispatcher.New(dispatcher.Config{
		Symbols:         symbols,
		Timeframes:      timeframes,
		IndicatorParams: indicatorParams,
		SRParams:        srParams,
		BufferLimit:     cfg.Buffer.Limit,
		Sink:            notify.Multi{Sinks: sinks},
	})

	if wsHub != nil {
		http.HandleFunc("/ws", wsHub.Handle)
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		addr := cfg.Alerts.WSBroadcastAddr
		if addr == "" {
			addr = ":8080"
		}
		go func() {
			log.Printf("ws broadcast listening on %s", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Printf("ws broadcast: server stopped: %v", err)
			}
		}()
	}

	src := binance.Dial(ctx, cfg.Exchange.Symbols, cfg.Exchange.MarketType)

	log.Printf("signalengine: streaming %d symbols across %d timeframes", len(symbols), len(timeframes))
	if err := d.Run(ctx, src); err != nil {
		log.Fatalf("dispatcher: %v", err)
	}
	log.Println("signalengine: shut down cleanly")
}
