package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anggasct/trafficflow"
	"github.com/anggasct/trafficflow/pkg/clock"
	"github.com/anggasct/trafficflow/pkg/config"
	"github.com/anggasct/trafficflow/pkg/observers"
	"github.com/anggasct/trafficflow/pkg/vision"
	"github.com/anggasct/trafficflow/visualization"
	"github.com/sirupsen/logrus"
)

var (
	// configuration file path
	configPath = flag.String("config", "", "config file path")
	// base64 encoded configuration, used when -config is empty
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// static counts, overriding the config file
	countsFlag = flag.String("counts", "", "vehicle counts, e.g. N=10,E=4,S=0,W=6")
	fast       = flag.Bool("fast", false, "tick without waiting for the wall clock")
	dashboard  = flag.String("dashboard", "", "write an HTML dashboard to this path")
	dotPath    = flag.String("dot", "", "write the Graphviz phase plan to this path")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level (trace debug info warn error critical off)")

	log = logrus.WithField("module", "trafficflow")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})

	c, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := setLogLevel(c); err != nil {
		log.Fatalf("%v", err)
	}
	applyFlags(&c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		log.Fatalf("%v", err)
	}
}

func loadConfig() (config.Config, error) {
	switch {
	case *configPath != "":
		return config.Load(*configPath)
	case *configData != "":
		return config.DecodeBase64(*configData)
	default:
		return config.Default(), nil
	}
}

// setLogLevel prefers an explicit -log.level over the config file
func setLogLevel(c config.Config) error {
	name := *logLevel
	if !flagSet("log.level") && c.Log.Level != "" {
		name = c.Log.Level
	}
	level, ok := logLevels[name]
	if !ok {
		return fmt.Errorf("log.level must be one of trace, debug, info, warn, error, critical, off; got %q", name)
	}
	logrus.SetLevel(level)
	return nil
}

func applyFlags(c *config.Config) {
	if *fast {
		c.Clock.Fast = true
	}
	if *dashboard != "" {
		c.Output.Dashboard = *dashboard
	}
	if *dotPath != "" {
		c.Output.DOT = *dotPath
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func counter(c config.Config) (vision.Counter, error) {
	if *countsFlag != "" {
		counts, err := parseCounts(*countsFlag)
		if err != nil {
			return nil, err
		}
		return vision.Static(counts), nil
	}
	if c.HasCounts() {
		counts, err := c.VehicleCounts()
		if err != nil {
			return nil, err
		}
		return vision.Static(counts), nil
	}
	return nil, fmt.Errorf("vehicle counts must be given with -counts or in the config file")
}

func newClock(c config.Config) clock.Clock {
	interval := c.TickInterval()
	if interval == 0 {
		return clock.NewInstant()
	}
	return clock.NewTicker(interval)
}

func run(ctx context.Context, c config.Config) error {
	src, err := counter(c)
	if err != nil {
		return err
	}
	counts, err := vision.Collect(ctx, src)
	if err != nil {
		return fmt.Errorf("collect counts: %w", err)
	}

	metrics := observers.NewMetricsObserver()
	validation := observers.NewValidationObserver()
	s, err := trafficflow.NewScheduler().
		WithCounts(counts).
		WithPolicy(c.TimingPolicy()).
		WithObserver(observers.NewLoggingObserver(logrus.WithField("module", "scheduler"))).
		WithObserver(metrics).
		WithObserver(validation).
		Build()
	if err != nil {
		return err
	}
	s.AddObserver(newConsoleObserver(os.Stdout, s))

	clk := newClock(c)
	if t, ok := clk.(*clock.Ticker); ok {
		defer t.Stop()
	}

	report, err := s.Run(ctx, clk)
	if err != nil {
		return fmt.Errorf("simulation abandoned: %w", err)
	}
	if validation.HasViolations() {
		for _, v := range validation.GetViolations() {
			log.Warnf("schedule violation: %s", v)
		}
	}

	printReport(os.Stdout, report, metrics.Summary())
	return writeOutputs(c, s, report)
}

func writeOutputs(c config.Config, s *trafficflow.Scheduler, report *trafficflow.Report) error {
	if c.Output.Dashboard != "" {
		if err := visualization.NewDashboard(report).RenderToFile(c.Output.Dashboard); err != nil {
			return fmt.Errorf("write dashboard: %w", err)
		}
		log.Infof("dashboard written to %s", c.Output.Dashboard)
	}
	if c.Output.DOT != "" {
		if err := visualization.NewDOTGeneratorForState(s.State()).GenerateToFile(c.Output.DOT); err != nil {
			return fmt.Errorf("write phase plan: %w", err)
		}
		log.Infof("phase plan written to %s", c.Output.DOT)
	}
	return nil
}
