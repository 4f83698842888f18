// Command acacia is the CLI for the Acacia Bible reference resolver.
// It parses citations, resolves them against a local corpus, and serves the
// REST API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
	"github.com/FocuswithJustin/AcaciaBible/core/ref"
	"github.com/FocuswithJustin/AcaciaBible/core/resolve"
	"github.com/FocuswithJustin/AcaciaBible/internal/api"
	"github.com/FocuswithJustin/AcaciaBible/internal/fetch"
	"github.com/FocuswithJustin/AcaciaBible/internal/fileutil"
	"github.com/FocuswithJustin/AcaciaBible/internal/logging"
	"github.com/FocuswithJustin/AcaciaBible/internal/storage"
)

const version = "0.1.0"

// CLI defines the command-line interface for acacia.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"json,text" help:"Log output format"`

	Parse   ParseCmd    `cmd:"" help:"Parse a citation and print its canonical form"`
	Resolve ResolveCmd  `cmd:"" help:"Resolve a citation to passage text"`
	Books   BooksCmd    `cmd:"" help:"List the canonical books"`
	Corpus  CorpusGroup `cmd:"" help:"Corpus operations (import, export, info)"`
	Serve   ServeCmd    `cmd:"" help:"Start REST API server"`
	Version VersionCmd  `cmd:"" help:"Print version information"`
}

// CorpusGroup contains corpus lifecycle operations.
type CorpusGroup struct {
	Import ImportCmd `cmd:"" help:"Import a corpus payload into the database"`
	Export ExportCmd `cmd:"" help:"Export the database as a structured JSON payload"`
	Info   InfoCmd   `cmd:"" help:"Show database statistics"`
}

// initLogging applies the global logging flags.
func initLogging() {
	level := map[string]logging.Level{
		"debug": logging.LevelDebug,
		"info":  logging.LevelInfo,
		"warn":  logging.LevelWarn,
		"error": logging.LevelError,
	}[CLI.LogLevel]
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

// ParseCmd parses a citation without resolving content.
type ParseCmd struct {
	Reference []string `arg:"" help:"Citation text, e.g. 'Jn 3:16' or 'Philippians 1:27-2:11'"`
	JSON      bool     `help:"Print the parsed locator as JSON"`
}

func (c *ParseCmd) Run() error {
	text := strings.Join(c.Reference, " ")
	loc := ref.Parse(text)
	if loc == nil {
		return fmt.Errorf("cannot parse %q as a reference", text)
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(loc)
	}
	fmt.Println(loc.String())
	return nil
}

// ResolveCmd resolves a citation against the corpus.
type ResolveCmd struct {
	Reference []string `arg:"" help:"Citation text to resolve"`
	Corpus    string   `help:"Corpus payload file to load (JSON or XML, optionally gzip/xz)" type:"existingfile"`
	Database  string   `help:"SQLite corpus database path" type:"path"`
	APIURL    string   `name:"api-url" help:"Remote passage API base URL"`
	APIToken  string   `name:"api-token" env:"ACACIA_API_TOKEN" help:"Remote passage API token"`
	JSON      bool     `help:"Print the full result as JSON"`
}

func (c *ResolveCmd) Run() error {
	store, err := buildStore(c.Corpus, c.Database)
	if err != nil {
		return err
	}

	var opts []resolve.Option
	if c.APIURL != "" {
		opts = append(opts, resolve.WithFetcher(fetch.New(fetch.Config{
			BaseURL: c.APIURL,
			Token:   c.APIToken,
		})))
	}
	resolver := resolve.New(store, opts...)

	result := resolver.GetContent(context.Background(), strings.Join(c.Reference, " "))

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if !result.Found() {
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	}
	fmt.Printf("%s\n%s\n", result.Passage.Reference.String(), result.Passage.Text())
	return nil
}

// BooksCmd lists the canonical books with chapter counts.
type BooksCmd struct{}

func (c *BooksCmd) Run() error {
	for i, name := range canon.BookOrder() {
		fmt.Printf("%2d  %-20s %3d chapters\n", i+1, name, canon.ChapterCount(name))
	}
	return nil
}

// ImportCmd imports a corpus payload into the SQLite database.
type ImportCmd struct {
	Path     string `arg:"" help:"Corpus payload file" type:"existingfile"`
	Database string `required:"" help:"SQLite corpus database path" type:"path"`
}

func (c *ImportCmd) Run() error {
	payload, err := fileutil.ReadPayload(c.Path)
	if err != nil {
		return err
	}

	converted, shape, err := corpus.Convert(payload)
	if err != nil {
		return err
	}

	st, err := storage.Open(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(context.Background(), converted); err != nil {
		return err
	}

	verses := converted.VerseCount()
	logging.CorpusLoad(shape, verses, "database", c.Database)
	fmt.Printf("imported %d verses (%s) into %s\n", verses, shape, c.Database)
	return nil
}

// ExportCmd writes the database back out as a structured JSON payload.
type ExportCmd struct {
	Database string `arg:"" help:"SQLite corpus database path" type:"existingfile"`
	Out      string `help:"Output file (default stdout)" type:"path"`
}

func (c *ExportCmd) Run() error {
	st, err := storage.Open(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	loaded, err := st.Load(context.Background())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(loaded, "", "  ")
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(c.Out, data, 0644)
}

// InfoCmd prints database statistics.
type InfoCmd struct {
	Database string `arg:"" help:"SQLite corpus database path" type:"existingfile"`
}

func (c *InfoCmd) Run() error {
	st, err := storage.Open(c.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	n, err := st.VerseCount(ctx)
	if err != nil {
		return err
	}
	loaded, err := st.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("driver:  %s (%s)\n", storage.DriverName(), storage.DriverType())
	fmt.Printf("books:   %d\n", len(loaded))
	fmt.Printf("verses:  %d\n", n)
	return nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port              int      `help:"HTTP server port" default:"8081"`
	Database          string   `help:"SQLite corpus database path" type:"path"`
	Corpus            string   `help:"Corpus payload file to load at startup" type:"existingfile"`
	APIURL            string   `name:"api-url" help:"Remote passage API base URL"`
	APIToken          string   `name:"api-token" env:"ACACIA_API_TOKEN" help:"Remote passage API token"`
	APIKey            string   `name:"api-key" env:"ACACIA_API_KEY" help:"Require this key in X-API-Key (empty = no auth)"`
	RateLimit         int      `name:"rate-limit" help:"Requests per minute per IP (0 = disabled)"`
	RateLimitBurst    int      `name:"rate-limit-burst" help:"Rate limit burst size" default:"10"`
	TLSCert           string   `name:"tls-cert" help:"TLS certificate file" type:"path"`
	TLSKey            string   `name:"tls-key" help:"TLS private key file" type:"path"`
	AllowedOrigins    []string `name:"allowed-origins" help:"CORS allowed origins (empty = allow all)"`
}

func (c *ServeCmd) Run() error {
	store := corpus.NewStore()
	if c.Corpus != "" {
		payload, err := fileutil.ReadPayload(c.Corpus)
		if err != nil {
			return err
		}
		if err := store.Load(payload); err != nil {
			return err
		}
	}

	var opts []resolve.Option
	if c.APIURL != "" {
		opts = append(opts, resolve.WithFetcher(fetch.New(fetch.Config{
			BaseURL: c.APIURL,
			Token:   c.APIToken,
		})))
	}
	resolver := resolve.New(store, opts...)

	cfg := api.Config{
		Port:              c.Port,
		DatabasePath:      c.Database,
		RateLimitRequests: c.RateLimit,
		RateLimitBurst:    c.RateLimitBurst,
		Auth: api.AuthConfig{
			Enabled: c.APIKey != "",
			APIKey:  c.APIKey,
		},
		TLS: api.TLSConfig{
			Enabled:  c.TLSCert != "" && c.TLSKey != "",
			CertFile: c.TLSCert,
			KeyFile:  c.TLSKey,
		},
		AllowedOrigins: c.AllowedOrigins,
	}
	return api.Start(cfg, resolver)
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("acacia version %s\n", version)
	return nil
}

// buildStore assembles the in-memory store from an optional payload file and
// an optional database, database first so a fresher payload wins collisions.
func buildStore(corpusPath, dbPath string) (*corpus.Store, error) {
	store := corpus.NewStore()

	if dbPath != "" {
		st, err := storage.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		saved, err := st.Load(context.Background())
		if err != nil {
			return nil, err
		}
		store.Replace(saved)
	}

	if corpusPath != "" {
		payload, err := fileutil.ReadPayload(corpusPath)
		if err != nil {
			return nil, err
		}
		converted, _, err := corpus.Convert(payload)
		if err != nil {
			return nil, err
		}
		store.Merge(converted)
	}

	return store, nil
}

func main() {
	parsed := kong.Parse(&CLI,
		kong.Name("acacia"),
		kong.Description("Acacia Bible - reference resolution and corpus tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := parsed.Run(parsed)
	parsed.FatalIfErrorf(err)
}
