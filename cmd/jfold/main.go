package main

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
	"pkt.systems/jfold"
	"sigs.k8s.io/yaml"
)

var version = "dev"

const defaultAcceptHeader = "application/json"

// decMode decodes standard CBOR with any-typed targets materialized as
// map[string]any so the folded output can round-trip through encoding/json.
var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("jfold: CBOR decoder initialization failed: " + err.Error())
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	opts      jfold.Options
	input     string
	insecure  bool
	acceptAll bool
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("jfold", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	var cfg config
	fs.IntVarP(&cfg.opts.Depth, "depth", "d", jfold.DefaultOptions.Depth, "nesting levels rendered one element per line before folding inline")
	fs.StringVarP(&cfg.opts.Palette, "palette", "p", "", `colour palette (see --list-palettes); "none" disables colour`)
	fs.BoolVar(&cfg.opts.ForceColor, "force-color", false, "colourize even when stdout is not a terminal")
	fs.StringVarP(&cfg.input, "input", "i", "json", "input format: json, cbor or yaml")
	fs.BoolVarP(&cfg.insecure, "insecure", "k", false, "skip TLS certificate verification for https inputs")
	fs.BoolVar(&cfg.acceptAll, "accept-all", false, "send Accept: */* when fetching URLs")
	listPalettes := fs.Bool("list-palettes", false, "list available palettes and exit")
	showVersion := fs.BoolP("version", "V", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: jfold [flags] [file|URL|-]...\n\nRe-renders JSON (or CBOR/YAML) with depth-bounded pretty printing: the\nfirst --depth levels get one element per line, deeper structure folds\nonto a single line. With no arguments input is read from stdin.\n\nFlags:\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, "jfold "+version)
		return 0
	}
	if *listPalettes {
		for _, name := range jfold.PaletteNames() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	fold, err := folderFor(cfg.input)
	if err != nil {
		fmt.Fprintf(stderr, "jfold: %v\n", err)
		return 2
	}

	args := fs.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		data, err := readInput(arg, stdin, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "jfold: %v\n", err)
			return 1
		}
		if err := fold(stdout, data, &cfg.opts); err != nil {
			fmt.Fprintf(stderr, "jfold: %s: %v\n", arg, err)
			return 1
		}
	}
	return 0
}

func folderFor(format string) (func(io.Writer, []byte, *jfold.Options) error, error) {
	switch strings.ToLower(format) {
	case "json":
		return jfold.FoldTo, nil
	case "cbor":
		return foldCBOR, nil
	case "yaml", "yml":
		return foldYAML, nil
	default:
		return nil, fmt.Errorf("unknown input format %q (use json, cbor or yaml)", format)
	}
}

// foldCBOR re-renders a stream of CBOR documents. Non-JSON constructs that
// survive decoding (byte strings, tags) render the way encoding/json
// marshals their decoded Go values.
func foldCBOR(w io.Writer, data []byte, opts *jfold.Options) error {
	dec := decMode.NewDecoder(bytes.NewReader(data))
	enc := jfold.NewEncoder(w, opts)
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}

func foldYAML(w io.Writer, data []byte, opts *jfold.Options) error {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return err
	}
	return jfold.FoldTo(w, j, opts)
}

func readInput(arg string, stdin io.Reader, cfg config) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(stdin)
	}
	u, isURL, err := parseHTTPURL(arg)
	if err != nil {
		return nil, err
	}
	if isURL {
		reader, closer, err := openURL(u, urlOptions{
			accept:    acceptHeaderFor(cfg.input),
			acceptAll: cfg.acceptAll,
			insecure:  cfg.insecure,
		})
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		return io.ReadAll(reader)
	}
	return os.ReadFile(arg)
}

func parseHTTPURL(arg string) (*url.URL, bool, error) {
	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		return nil, false, nil
	}
	u, err := url.Parse(arg)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

type urlOptions struct {
	accept    string
	acceptAll bool
	insecure  bool
}

func acceptHeaderFor(format string) string {
	switch strings.ToLower(format) {
	case "cbor":
		return "application/cbor"
	case "yaml", "yml":
		return "application/yaml"
	default:
		return defaultAcceptHeader
	}
}

func openURL(u *url.URL, opts urlOptions) (io.Reader, io.Closer, error) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, err
	}
	accept := opts.accept
	if accept == "" {
		accept = defaultAcceptHeader
	}
	if opts.acceptAll {
		accept = "*/*"
	}
	req.Header.Set("Accept", accept)

	client := http.DefaultClient
	if opts.insecure {
		client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("%s: %s", u.Redacted(), resp.Status)
	}
	return resp.Body, resp.Body, nil
}
