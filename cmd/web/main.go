// Greeting web server for go-hello
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-hello/internal/config"
	"github.com/go-while/go-hello/internal/web"
)

var (
	// command-line flags
	webhost     string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	webdebug    bool
	pprofAddr   string
)

var appVersion = "-unset-"

var Prof *prof.Profiler

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&webhost, "webhost", "", "Web server listen address (default: all interfaces)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 3000)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.BoolVar(&webdebug, "webdebug", false, "Run gin in debug mode")
	flag.StringVar(&pprofAddr, "pprof", "", "Start pprof web on this address, e.g. 127.0.0.1:51111 (default: off)")
	flag.Parse()

	mainConfig := config.NewDefaultConfig()
	webConfig := mainConfig.Web
	log.Printf("Starting go-hello: Web Server (version: %s)", appVersion)

	// Override config with command-line flags if provided
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	} else {
		log.Printf("[WEB]: No port flag provided, using default: %d", webConfig.ListenPort)
	}
	webConfig.ListenHost = webhost
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
	}
	webConfig.Debug = webdebug

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if pprofAddr != "" {
		Prof = prof.NewProf()
		go Prof.PprofWeb(pprofAddr)
		log.Printf("[WEB]: pprof web started on %s", pprofAddr)
	}

	server := web.NewServer(webConfig)

	// Bind before anything else so a busy port fails fast with a non-zero exit
	if err := server.Listen(); err != nil {
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Serve(); err != nil && err != http.ErrServerClosed {
			webServerErrChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Web server failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("[WEB]: Failed to shutdown web server: %v", err)
	}
	log.Printf("[WEB]: Graceful shutdown completed")
} // end main
