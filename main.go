package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"murmur/audio"
	"murmur/cmd"
	"murmur/config"
)

func main() {
	var (
		file       string
		info       bool
		server     bool
		port       int
		configPath string
	)

	flag.StringVar(&file, "file", "", "Audio file to validate")
	flag.BoolVar(&info, "info", false, "Print detailed file info and signal analysis")
	flag.BoolVar(&server, "server", false, "Start in web server mode")
	flag.IntVar(&port, "port", 0, "Port for web server mode (overrides config)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file (defaults to MURMUR_CONFIG)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	// Server mode takes precedence
	if server {
		cmd.StartWebServer(cfg)
		return
	}

	if file == "" {
		flag.Usage()
		return
	}

	validator := audio.NewValidator(audio.DefaultFormats(), cfg.Limits())

	result := validator.Validate(file)
	fmt.Println(result.Message)

	if info && result.Valid {
		fileInfo, err := validator.GetInfo(file)
		if err != nil {
			log.Fatalf("Error: %s", err)
		}

		analyzer := audio.NewAnalyzer(audio.NewFileDecoder(), cfg.Audio.FallbackSampleRate)
		analysis, err := analyzer.Analyze(file)
		if err != nil {
			fileInfo.DecodeError = err.Error()
		} else {
			fileInfo.Analysis = analysis
			fmt.Printf("Duration: %.3fs, %d Hz, %d channel(s), loaded via %s\n",
				audio.DisplayDuration(analysis.DurationSeconds),
				analysis.SampleRate, analysis.Channels, analysis.LoadMethod)
		}

		out, err := json.MarshalIndent(fileInfo, "", "  ")
		if err != nil {
			log.Fatalf("Error: %s", err)
		}
		fmt.Println(string(out))
	}

	if !result.Valid {
		os.Exit(1)
	}
}
