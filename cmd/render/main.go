// Static page renderer for go-hello
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"

	"github.com/go-while/go-hello/internal/config"
	"github.com/go-while/go-hello/internal/ui"
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion
	mainConfig := config.NewDefaultConfig()

	var (
		outFile  = flag.String("out", "", "Write the rendered page to this file (default: stdout)")
		hostFile = flag.String("host", "", "Host document to mount into (default: embedded index.html)")
		mountID  = flag.String("mount", mainConfig.UI.MountID, "Id of the host element to mount into")
	)
	flag.Parse()
	mainConfig.UI.HostFile = *hostFile
	mainConfig.UI.MountID = *mountID

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatalf("[RENDER]: Failed to create %s: %v", *outFile, err)
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)

	if err := render(mainConfig.UI, bw); err != nil {
		log.Fatalf("[RENDER]: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("[RENDER]: Failed to write output: %v", err)
	}
	if *outFile != "" {
		log.Printf("[RENDER]: Page written to %s", *outFile)
	}
}

func render(cfg config.UIConfig, w io.Writer) error {
	if cfg.HostFile == "" && cfg.MountID == ui.RootID {
		return ui.Render(w)
	}
	var host io.Reader
	if cfg.HostFile == "" {
		f, err := ui.EmbeddedStaticFS.Open(ui.IndexFile)
		if err != nil {
			return err
		}
		defer f.Close()
		host = f
	} else {
		f, err := os.Open(cfg.HostFile)
		if err != nil {
			return err
		}
		defer f.Close()
		host = f
	}
	return ui.Mount(host, w, cfg.MountID)
}
