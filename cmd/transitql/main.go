// Command transitql is the batch-mode transit information service of
// spec.md: by default it reads an input document from stdin, answers its
// stat_requests, and writes the output array to stdout. The "serve"
// subcommand builds the same frozen core once and exposes it read-only
// over HTTP (SPEC_FULL.md §4.8). Grounded on the teacher's main.go wiring
// style: flag/os.Getenv configuration, plain log diagnostics, explicit
// context plumbing, no config/DI framework.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/antigravity/transitql/internal/app"
	"github.com/antigravity/transitql/internal/httpapi"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServe(os.Args[2:])
		return
	}
	runBatch()
}

// runBatch is the default stdin/stdout mode; exit code 0 on success,
// non-zero on input parse failure (spec.md §6).
func runBatch() {
	output, err := app.Run(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transitql: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(output); err != nil {
		fmt.Fprintf(os.Stderr, "transitql: %v\n", err)
		os.Exit(1)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", envOr("TRANSITQL_ADDR", ":8080"), "listen address")
	input := fs.String("input", "-", "input document path, or - for stdin")
	corsOrigin := fs.String("cors-origin", envOr("TRANSITQL_CORS_ORIGIN", "*"), "allowed CORS origin")
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}

	var r *os.File
	if *input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("transitql: %v", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := app.Decode(r)
	if err != nil {
		log.Fatalf("transitql: %v", err)
	}
	core, err := app.Build(doc)
	if err != nil {
		log.Fatalf("transitql: %v", err)
	}

	router := httpapi.NewRouter(core, *corsOrigin)
	log.Printf("transitql serving on %s", *addr)
	srv := &http.Server{Addr: *addr, Handler: router}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
