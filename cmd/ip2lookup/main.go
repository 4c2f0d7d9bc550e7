// Command ip2lookup looks up IP addresses in an IP2Location BIN database.
//
//	ip2lookup -db IP-COUNTRY.BIN [-format text|json|msgpack] 8.8.8.8 2001:4860::8888
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/log"
	"github.com/proipinfo/ip2location"
	"github.com/vmihailenco/msgpack"
)

type config struct {
	dbPath  string
	format  string
	noIndex bool
	load    string
	ips     []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("ip2lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.dbPath, "db", "", "path to the BIN database (plain or zstd compressed)")
	fs.StringVar(&cfg.format, "format", "text", "output format: text, json or msgpack")
	fs.BoolVar(&cfg.noIndex, "no-index", false, "ignore the index tables")
	fs.StringVar(&cfg.load, "load", "mmap", "how to load the database: mmap or memory")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.ips = fs.Args()
	if cfg.dbPath == "" {
		return cfg, errors.New("-db is required")
	}
	if len(cfg.ips) == 0 {
		return cfg, errors.New("no addresses given")
	}
	return cfg, nil
}

func (cfg config) options() ([]ip2location.Option, error) {
	var opts []ip2location.Option
	if cfg.noIndex {
		opts = append(opts, ip2location.WithoutIndex())
	}
	switch cfg.load {
	case "mmap":
		opts = append(opts, ip2location.WithLoadMode(ip2location.LoadMapped))
	case "memory":
		opts = append(opts, ip2location.WithLoadMode(ip2location.LoadMemory))
	default:
		return nil, fmt.Errorf("unknown load mode %q", cfg.load)
	}
	return opts, nil
}

type recordWriter func(ip string, rec *ip2location.Record) error

func newRecordWriter(format string, w io.Writer) (recordWriter, error) {
	switch format {
	case "text":
		return func(ip string, rec *ip2location.Record) error {
			return writeText(w, ip, rec)
		}, nil
	case "json":
		enc := json.NewEncoder(w)
		return func(_ string, rec *ip2location.Record) error {
			return enc.Encode(rec)
		}, nil
	case "msgpack":
		enc := msgpack.NewEncoder(w)
		return func(_ string, rec *ip2location.Record) error {
			return enc.Encode(rec)
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func writeText(w io.Writer, ip string, rec *ip2location.Record) error {
	if rec == nil {
		_, err := fmt.Fprintf(w, "%s\tnot found\n", ip)
		return err
	}
	if _, err := fmt.Fprint(w, ip); err != nil {
		return err
	}
	for f := ip2location.FieldCountryShort; f <= ip2location.FieldUsageType; f++ {
		if v, ok := rec.Value(f); ok {
			if _, err := fmt.Fprintf(w, "\t%s=%s", f, v); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	write, err := newRecordWriter(cfg.format, stdout)
	if err != nil {
		return err
	}
	db, err := ip2location.Open(cfg.dbPath, opts...)
	if err != nil {
		return err
	}
	defer db.Close()

	var failed int
	for _, ip := range cfg.ips {
		rec, err := db.Lookup(ip)
		if err != nil {
			log.Error.Printf("%s: %v", ip, err)
			failed++
			continue
		}
		if err := write(ip, rec); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(cfg.ips))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
