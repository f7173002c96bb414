package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	ridelogfilter "github.com/theoremus-urban-solutions/ridelog-filter"
	"github.com/theoremus-urban-solutions/ridelog-filter/config"
	"github.com/theoremus-urban-solutions/ridelog-filter/geo"
	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/schema"
	"github.com/theoremus-urban-solutions/ridelog-filter/temporal"
	"github.com/theoremus-urban-solutions/ridelog-filter/xlsx"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	cfgPath := flag.String("config", "", "config file path (default config.yml)")
	input := flag.String("input", "", "input xlsx file (oneshot)")
	output := flag.String("output", "filtered.xlsx", "output xlsx file (oneshot)")
	driver := flag.String("driver", "", "target driver name (oneshot)")
	offDate := flag.String("offDate", "", "off day, YYYY-MM-DD (oneshot)")
	breakStart := flag.String("breakStart", "", "break start, YYYY-MM-DD HH:MM:SS (oneshot)")
	breakEnd := flag.String("breakEnd", "", "break end, YYYY-MM-DD HH:MM:SS (oneshot)")
	geoFlag := flag.Bool("geo", false, "enable geospatial enrichment (oneshot)")
	flag.Parse()

	ridelogfilter.InitLogging()

	switch *mode {
	case "serve":
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		srv := ridelogfilter.NewServer(cfg)
		srv.Start()
		srv.HandleGracefulShutdown()
	case "oneshot":
		if err := runOneshot(*cfgPath, *input, *output, *driver, *offDate, *breakStart, *breakEnd, *geoFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		panic("unknown mode")
	}
}

func runOneshot(cfgPath, input, output, driver, offDate, breakStart, breakEnd string, geoOn bool) error {
	if input == "" || driver == "" {
		return fmt.Errorf("oneshot mode requires -input and -driver")
	}
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()
	sheet, err := xlsx.Read(f)
	if err != nil {
		return err
	}
	mapping, err := schema.Normalize(sheet.Headers)
	if err != nil {
		return err
	}
	table, err := ridelog.NewTable(mapping, sheet.Rows)
	if err != nil {
		return err
	}

	var directives []ridelog.Directive
	if offDate != "" {
		d, err := temporal.ParseDate(offDate)
		if err != nil {
			return fmt.Errorf("invalid -offDate: %w", err)
		}
		directives = append(directives, ridelog.Directive{Date: d, OffDay: true})
	}
	if breakStart != "" || breakEnd != "" {
		start, err := temporal.ParseTimestamp(breakStart)
		if err != nil {
			return fmt.Errorf("invalid -breakStart: %w", err)
		}
		end, err := temporal.ParseTimestamp(breakEnd)
		if err != nil {
			return fmt.Errorf("invalid -breakEnd: %w", err)
		}
		directives = append(directives, ridelog.Directive{
			Date:       temporal.Combine(start, time.Time{}),
			BreakStart: start,
			BreakEnd:   end,
		})
	}

	var enr ridelog.Enricher
	if geoOn {
		enr = geo.NewEnricher(cfg.Geo)
	} else {
		enr = geo.PickupStamp{Address: cfg.Geo.BaseAddress}
	}
	opts := ridelog.Options{Driver: driver, Directives: directives}
	if err := ridelog.Run(context.Background(), table, opts, enr); err != nil {
		return err
	}

	buf, err := xlsx.Write(table, geoOn)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(table.Records), output)
	return nil
}
