// Command palette-inspect dumps the colour registry or resolves a single name
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"palette/internal/adapters/colourdb"
	"palette/internal/core/colour"
	"palette/internal/core/version"
	"palette/internal/platform/config"
	"palette/internal/platform/logger"

	"github.com/google/uuid"
)

// row is the stdout shape for one registry entry
type row struct {
	Name     string     `json:"name"`
	RGB      colour.RGB `json:"rgb"`
	Sequence int        `json:"sequence"`
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		lookup  = flag.String("lookup", "", "resolve one colour name through the JSON codec instead of dumping")
		pretty  = flag.Bool("pretty", false, "pretty-print JSON")
		showVer = flag.Bool("version", false, "print build info and exit")
	)
	flag.Parse()

	if *showVer {
		must(json.NewEncoder(os.Stdout).Encode(version.Info()))
		return
	}

	// bring up logging early, stamped with a per-run id
	opt := logger.FromEnv()
	if opt.StaticFields == nil {
		opt.StaticFields = map[string]string{}
	}
	opt.StaticFields["run_id"] = uuid.NewString()
	logger.Init(opt)
	l := logger.Get()

	// source wiring lives under PALETTE_*
	palCfg := config.New().Prefix("PALETTE_")
	src, err := colourdb.Open(colourdb.Config{
		Kind: palCfg.MayEnum("SOURCE", "builtin", "builtin", "file"),
		Path: palCfg.MayString("SOURCE_FILE", ""),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("open colour source failed")
	}
	if src != nil {
		colour.BindSource(src)
	}

	ctx := context.Background()

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	if *lookup != "" {
		// round-trip through the codec: encode the name, resolve it back
		data, err := json.Marshal(*lookup)
		if err != nil {
			l.Fatal().Err(err).Str("name", *lookup).Msg("encode lookup name failed")
		}
		c, err := colour.DecodeJSON(ctx, data)
		if err != nil {
			l.Fatal().Err(err).Str("name", *lookup).Msg("lookup failed")
		}
		must(enc.Encode(row{Name: c.Name(), RGB: c.Payload(), Sequence: c.Sequence()}))
		return
	}

	vals, err := colour.Values(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("populate colour registry failed")
	}
	rows := make([]row, 0, len(vals))
	for _, c := range vals {
		rows = append(rows, row{Name: c.Name(), RGB: c.Payload(), Sequence: c.Sequence()})
	}
	must(enc.Encode(rows))
}
