package main

import (
	"flag"
	"log"
)

const demoTicksPerBeat = 480

var (
	configPath = flag.String("config", "", "read settings from YAML `file`")
	logLevel   = flag.String("log-level", "", "log level: debug, info, warn or error")
	view       = flag.String("view", "", "initial view: arrange or pianoroll")
)

func main() {
	flag.Parse()
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *view != "" {
		cfg.View = *view
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v\n", err)
	}
	if err := InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("%v\n", err)
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	a := cfg.Arrange
	song := DemoSong(a.Tracks, a.Bars, a.BeatsPerBar, demoTicksPerBeat)
	app := CreateApp(cfg, theme, song)
	height := max(int(a.TrackHeight)*a.Tracks, 1)
	if err := WithGL(cfg.Window.Title, cfg.Window.Width, height, app); err != nil {
		log.Fatalf("%v\n", err)
	}
}
