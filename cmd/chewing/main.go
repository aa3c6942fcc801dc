// Copyright 2026 The Chewing Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the chewing conversion server and command line
interface.

Chewing converts a buffer of Zhuyin syllables (plus literal characters)
into the best-scoring sequence of dictionary phrases, honoring user
breaks, glues, and pinned selections. It can operate as a MessagePack
IPC server for editor/input-method integrations, or as a standalone CLI
shell for interactive testing.

# Server Mode

The server loads an immutable system dictionary and a mutable user
dictionary overlay, then answers convert/convert_next requests and user
dictionary mutations over stdin/stdout.

# CLI Mode

The CLI shell reads lines of space-separated romanized syllable tokens
and prints the resulting conversion, for debugging the engine without a
full input method frontend.

# Config

In server mode, runtime configuration is loaded from a config.toml
file, which is created with default values if it does not exist.
Dictionary paths and CLI options are taken from command-line flags,
whose defaults are the built-in default configuration; they are not
read from the config file.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hanzikit/chewing/internal/cli"
	"github.com/hanzikit/chewing/internal/utils"
	"github.com/hanzikit/chewing/pkg/config"
	"github.com/hanzikit/chewing/pkg/conversion"
	"github.com/hanzikit/chewing/pkg/dictionary"
	"github.com/hanzikit/chewing/pkg/server"
)

const (
	Version = "0.1.0-beta"
	AppName = "chewing"
	gh      = "https://github.com/hanzikit/chewing"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionaries, and the engine into either the CLI
// shell or the IPC server. It does not implement their logic, only the
// flow between them.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	systemDict := flag.String("system-dict", defaultConfig.Dict.SystemDictPath, "Path to the immutable system dictionary (.trie)")
	userDict := flag.String("user-dict", defaultConfig.Dict.UserDictPath, "Path to the mutable user dictionary (.trie)")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	candidates := flag.Int("candidates", defaultConfig.CLI.DefaultCandidateCount, "Candidate count reported in the verbose CLI log; !next cycles through every alternative regardless")
	echoIntervals := flag.Bool("echo-intervals", defaultConfig.CLI.EchoIntervals, "Print interval boundaries alongside the converted text")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	resolvedSystemDict, resolvedUserDict := *systemDict, *userDict
	if resolver, err := utils.NewPathResolver(); err != nil {
		log.Debugf("path resolver unavailable, using paths as given: %v", err)
	} else {
		log.Debugf("executable: %s (in %s), config dir: %s", resolver.GetExecutablePath(), resolver.GetExecutableDir(), resolver.GetConfigDir())
		if *systemDict != "" {
			resolvedSystemDict = resolver.ResolveRelativePath(*systemDict)
			if dictDir, err := resolver.GetDictDir(filepath.Dir(*systemDict)); err == nil && utils.FileExists(dictDir) {
				log.Debugf("dictionary directory candidate: %s", dictDir)
			}
		}
		if *userDict != "" {
			resolvedUserDict = resolver.ResolveRelativePath(*userDict)
		}
	}

	log.Debugf("system dict: %s, user dict: %s", resolvedSystemDict, resolvedUserDict)

	sysDict, err := openSystemDict(resolvedSystemDict)
	if err != nil {
		log.Fatalf("failed to open system dictionary: %v", err)
	}
	userBuf, err := dictionary.OpenTrieBuf(resolvedUserDict, AppName)
	if err != nil {
		log.Fatalf("failed to open user dictionary: %v", err)
	}
	defer userBuf.Close()

	merged := dictionary.NewOverlayDictionary(sysDict, userBuf)
	engine := conversion.NewEngine()

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debugf("CLI info: candidates=%d, echoIntervals=%v", *candidates, *echoIntervals)

		inputHandler := cli.NewInputHandler(engine, merged, *echoIntervals)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Debugf("using config file: %s", configPath)

	srv := server.NewServer(engine, userBuf, appConfig, configPath)

	showStartupInfo(resolvedSystemDict, resolvedUserDict)

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openSystemDict opens the system dictionary, falling back to an empty
// in-memory dictionary (with a warning) if no file is configured, so the
// CLI and server still start for quick experimentation.
func openSystemDict(path string) (dictionary.Dictionary, error) {
	if path == "" {
		log.Warn("no system dictionary configured, starting with an empty one")
		return dictionary.NewTrieBufInMemory(dictionary.DefaultUserInfo(AppName)), nil
	}
	if dictionary.LooksLikeTrieFile(path) {
		if err := dictionary.ValidateTrieFile(path); err != nil {
			return nil, err
		}
	}
	d, err := dictionary.Open(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[chewing] Zhuyin phrase conversion engine")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use --help to see available options")
	logger.Print("")
	logger.Print("Find out more at", "gh", gh)
}

func showStartupInfo(systemDict, userDict string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" chewing ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("system dict: ( %s )", systemDict)
	log.Infof("user dict: ( %s )", userDict)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
