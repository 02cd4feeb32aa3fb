// Command weather looks up the current weather once and prints the display fields.
//
//	weather 東京
//	weather -here
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/ui"
)

func main() {
	here := flag.Bool("here", false, "use the configured current location")
	showHistory := flag.Bool("history", false, "print recent searches and exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if *showHistory {
		for _, name := range a.Service.History() {
			fmt.Println(name)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var res ui.Result
	if *here {
		res = a.Controller.UseCurrentLocation(ctx)
	} else {
		res = a.Controller.Search(ctx, strings.Join(flag.Args(), " "))
	}

	printFields(os.Stdout, res.Fields)
	if res.State == ui.StatusError {
		a.Close()
		os.Exit(1)
	}
}

func printFields(w io.Writer, f ui.Fields) {
	fmt.Fprintf(w, "location:    %s\n", f.Location)
	fmt.Fprintf(w, "condition:   %s\n", f.Condition)
	fmt.Fprintf(w, "temperature: %s\n", f.Temperature)
	fmt.Fprintf(w, "humidity:    %s\n", f.Humidity)
	fmt.Fprintf(w, "wind:        %s\n", f.Wind)
}
