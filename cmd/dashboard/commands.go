package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bhanu03042005/marketwatcher/internal/alert"
	"github.com/bhanu03042005/marketwatcher/internal/chart"
	"github.com/bhanu03042005/marketwatcher/internal/config"
	"github.com/bhanu03042005/marketwatcher/internal/export"
	"github.com/bhanu03042005/marketwatcher/internal/model"
	"github.com/bhanu03042005/marketwatcher/internal/provider"
	"github.com/bhanu03042005/marketwatcher/internal/recorder"
	"github.com/bhanu03042005/marketwatcher/internal/session"
)

const dateLayout = "2006-01-02"

// dashboard is the single-session interactive state. Each command runs one
// full, blocking pass; nothing is shared across interactions except the
// append-only search history and the currently loaded series.
type dashboard struct {
	cfg       *config.Config
	fetcher   provider.Fetcher
	profiles  provider.ProfileLookup
	evaluator *alert.Evaluator
	renderer  *chart.HTMLRenderer
	rec       recorder.Recorder
	history   *session.History
	opts      chart.Options

	series  *model.PriceSeries
	profile *model.CompanyProfile
}

func (d *dashboard) run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		d.dispatch(out, cmd, args)
	}
}

func (d *dashboard) dispatch(out io.Writer, cmd string, args []string) {
	switch cmd {
	case "help":
		printHelp(out)
	case "load":
		d.cmdLoad(out, args)
	case "type":
		d.cmdType(out, args)
	case "sma":
		d.cmdSMA(out, args)
	case "toggle":
		d.cmdToggle(out, args)
	case "chart":
		d.cmdChart(out, args)
	case "preview":
		d.cmdPreview(out)
	case "export":
		d.cmdExport(out, args)
	case "info":
		d.cmdInfo(out)
	case "history":
		d.cmdHistory(out)
	case "alert":
		d.cmdAlert(out, args)
	default:
		fmt.Fprintf(out, "unknown command %q, type 'help'\n", cmd)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  load SYMBOL [START] [END]        fetch daily bars (dates as 2006-01-02)
  type line|sma|candlestick        choose base chart type
  sma N                            set the SMA window
  toggle rsi|macd|bollinger|volume flip an indicator overlay
  chart [FILE]                     render the interactive chart to HTML
  preview                          show the last rows of the loaded data
  export [FILE]                    write the data (plus enabled indicators) as CSV
  info                             show company info
  history                          show recent searches
  alert EMAIL TARGET               email EMAIL if latest close <= TARGET
  quit
`)
}

func (d *dashboard) cmdLoad(out io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, "usage: load SYMBOL [START] [END]")
		return
	}
	symbol := strings.ToUpper(args[0])

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-1, 0, 0)
	var err error
	if len(args) > 1 {
		if start, err = time.ParseInLocation(dateLayout, args[1], time.UTC); err != nil {
			fmt.Fprintf(out, "bad start date %q: %v\n", args[1], err)
			return
		}
	}
	if len(args) > 2 {
		if end, err = time.ParseInLocation(dateLayout, args[2], time.UTC); err != nil {
			fmt.Fprintf(out, "bad end date %q: %v\n", args[2], err)
			return
		}
	}
	if end.Before(start) {
		fmt.Fprintln(out, "end date is before start date")
		return
	}

	bars, err := d.fetcher.FetchHistory(symbol, start, end)
	if err != nil {
		fmt.Fprintf(out, "fetch failed: %v\n", err)
		return
	}

	d.series = model.NewPriceSeries(symbol, start, end, bars)
	d.history.Add(symbol)
	if err := d.rec.RecordQuery(&recorder.QueryEvent{
		Symbol: symbol, Start: start, End: end, BarsGot: len(bars),
	}); err != nil {
		fmt.Fprintf(out, "[WARN] record query: %v\n", err)
	}

	if d.series.IsEmpty() {
		d.profile = nil
		fmt.Fprintln(out, "Warning: no data found. Check ticker or date range.")
		return
	}

	profile, err := d.profiles.LookupProfile(symbol)
	if err != nil {
		fmt.Fprintf(out, "[WARN] company info unavailable: %v\n", err)
		profile = &model.CompanyProfile{}
	}
	d.profile = profile

	fmt.Fprintf(out, "loaded %d bars for %s (%s to %s)\n",
		d.series.Len(), symbol, start.Format(dateLayout), end.Format(dateLayout))
	d.cmdPreview(out)
}

func (d *dashboard) cmdType(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(out, "chart type: %s\n", d.opts.Type)
		return
	}
	switch chart.Type(strings.ToLower(args[0])) {
	case chart.TypeLine, chart.TypeSMA, chart.TypeCandlestick:
		d.opts.Type = chart.Type(strings.ToLower(args[0]))
		fmt.Fprintf(out, "chart type set to %s\n", d.opts.Type)
	default:
		fmt.Fprintln(out, "usage: type line|sma|candlestick")
	}
}

func (d *dashboard) cmdSMA(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(out, "sma window: %d\n", d.opts.SMAWindow)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintf(out, "sma window must be a positive integer, got %q\n", args[0])
		return
	}
	d.opts.SMAWindow = n
	fmt.Fprintf(out, "sma window set to %d\n", n)
}

func (d *dashboard) cmdToggle(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: toggle rsi|macd|bollinger|volume")
		return
	}
	var flag *bool
	switch strings.ToLower(args[0]) {
	case "rsi":
		flag = &d.opts.ShowRSI
	case "macd":
		flag = &d.opts.ShowMACD
	case "bollinger":
		flag = &d.opts.ShowBollinger
	case "volume":
		flag = &d.opts.ShowVolume
	default:
		fmt.Fprintln(out, "usage: toggle rsi|macd|bollinger|volume")
		return
	}
	*flag = !*flag
	state := "off"
	if *flag {
		state = "on"
	}
	fmt.Fprintf(out, "%s is now %s\n", strings.ToLower(args[0]), state)
}

func (d *dashboard) requireData(out io.Writer) bool {
	if d.series.IsEmpty() {
		fmt.Fprintln(out, "no data loaded, use 'load SYMBOL' first")
		return false
	}
	return true
}

func (d *dashboard) cmdChart(out io.Writer, args []string) {
	if !d.requireData(out) {
		return
	}
	path := d.cfg.Chart.OutputPath
	if len(args) > 0 {
		path = args[0]
	}
	spec, err := chart.Assemble(d.series, d.opts)
	if err != nil {
		fmt.Fprintf(out, "assemble chart: %v\n", err)
		return
	}
	if err := d.renderer.RenderFile(spec, path); err != nil {
		fmt.Fprintf(out, "render chart: %v\n", err)
		return
	}
	fmt.Fprintf(out, "chart written to %s\n", path)
}

func (d *dashboard) cmdPreview(out io.Writer) {
	if !d.requireData(out) {
		return
	}
	bars := d.series.Bars
	n := 5
	if len(bars) < n {
		n = len(bars)
	}
	fmt.Fprintln(out, "Date        Open      High      Low       Close     Volume")
	for _, b := range bars[len(bars)-n:] {
		fmt.Fprintf(out, "%s  %-9.2f %-9.2f %-9.2f %-9.2f %.0f\n",
			b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}

func (d *dashboard) cmdExport(out io.Writer, args []string) {
	if !d.requireData(out) {
		return
	}
	path := fmt.Sprintf("%s_data.csv", d.series.Symbol)
	if len(args) > 0 {
		path = args[0]
	}
	spec, err := chart.Assemble(d.series, d.opts)
	if err != nil {
		fmt.Fprintf(out, "assemble export columns: %v\n", err)
		return
	}
	var derived []export.NamedSeries
	for _, t := range spec.DerivedTraces() {
		derived = append(derived, export.NamedSeries{Name: t.Name, Values: t.Values})
	}
	if err := export.WriteCSVFile(path, d.series, derived...); err != nil {
		fmt.Fprintf(out, "export csv: %v\n", err)
		return
	}
	fmt.Fprintf(out, "csv written to %s\n", path)
}

func (d *dashboard) cmdInfo(out io.Writer) {
	if !d.requireData(out) {
		return
	}
	p := d.profile
	if p == nil {
		p = &model.CompanyProfile{}
	}
	fmt.Fprintf(out, "Name:     %s\n", p.DisplayName())
	fmt.Fprintf(out, "Sector:   %s\n", p.DisplaySector())
	fmt.Fprintf(out, "Industry: %s\n", p.DisplayIndustry())
	fmt.Fprintf(out, "Website:  %s\n", p.DisplayWebsite())
}

func (d *dashboard) cmdHistory(out io.Writer) {
	recent := d.history.Recent(session.DisplayLimit)
	if len(recent) == 0 {
		fmt.Fprintln(out, "no searches yet")
		return
	}
	for _, s := range recent {
		fmt.Fprintf(out, "- %s\n", s)
	}
}

func (d *dashboard) cmdAlert(out io.Writer, args []string) {
	if !d.requireData(out) {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: alert EMAIL TARGET")
		return
	}
	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(out, "bad target price %q: %v\n", args[1], err)
		return
	}

	outcome, err := d.evaluator.Submit(d.series, alert.Rule{
		Recipient:   args[0],
		TargetPrice: target,
	})
	if err != nil {
		fmt.Fprintf(out, "alert rejected: %v\n", err)
		return
	}

	evt := &recorder.EvaluationEvent{
		Symbol:      d.series.Symbol,
		LatestClose: outcome.LatestClose,
		TargetPrice: target,
		Decision:    string(outcome.Decision),
		Delivered:   outcome.Delivered,
	}
	if outcome.DeliveryErr != nil {
		evt.Error = outcome.DeliveryErr.Error()
	}
	if err := d.rec.RecordEvaluation(evt); err != nil {
		fmt.Fprintf(out, "[WARN] record evaluation: %v\n", err)
	}

	switch {
	case outcome.Decision == alert.Hold:
		fmt.Fprintf(out, "Current price ($%.2f) is still above target.\n", outcome.LatestClose)
	case outcome.Delivered:
		fmt.Fprintf(out, "Email alert sent to %s\n", args[0])
	default:
		fmt.Fprintf(out, "Failed to send email: %v\n", outcome.DeliveryErr)
	}
}
