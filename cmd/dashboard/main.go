package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bhanu03042005/marketwatcher/internal/alert"
	"github.com/bhanu03042005/marketwatcher/internal/chart"
	"github.com/bhanu03042005/marketwatcher/internal/config"
	"github.com/bhanu03042005/marketwatcher/internal/provider"
	"github.com/bhanu03042005/marketwatcher/internal/recorder"
	"github.com/bhanu03042005/marketwatcher/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] marketwatcher starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Data provider
	var fetcher provider.Fetcher
	var profiles provider.ProfileLookup
	if cfg.DataSource.Mock {
		mock := &provider.MockFetcher{}
		fetcher, profiles = mock, mock
	} else {
		yahoo := provider.NewYahooFetcher(cfg.DataSource.BaseURL)
		fetcher, profiles = yahoo, yahoo
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Notification transport
	var transport alert.Transport
	if cfg.SMTP.Configured() {
		transport = alert.NewSMTPTransport(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Println("[WARN] smtp not configured, alert delivery disabled")
		transport = unconfiguredTransport{}
	}

	// Audit recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	dash := &dashboard{
		cfg:       cfg,
		fetcher:   fetcher,
		profiles:  profiles,
		evaluator: alert.NewEvaluator(transport),
		renderer:  chart.NewHTMLRenderer(),
		rec:       rec,
		history:   session.NewHistory(),
		opts:      chart.DefaultOptions(),
	}

	fmt.Println("Stock Market Dashboard. Type 'help' for commands.")
	dash.run(os.Stdin, os.Stdout)

	log.Println("[INFO] marketwatcher stopped")
}

// unconfiguredTransport rejects every send so the failure reason reaches
// the user instead of silently dropping the alert.
type unconfiguredTransport struct{}

func (unconfiguredTransport) Send(_, _, _ string) error {
	return fmt.Errorf("smtp transport not configured (set SMTP_HOST, SMTP_FROM, SMTP_USERNAME, SMTP_PASSWORD)")
}
