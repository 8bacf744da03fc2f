// Command greina parses text from a file or stdin, printing the parse
// tree of each sentence and the accumulated job statistics. Parsed
// sentences can optionally be saved to a SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/teksti/greina/pkg/greina"
	"github.com/teksti/greina/pkg/greina/config"
	"github.com/teksti/greina/pkg/greina/store/sqlite"
)

func main() {
	var (
		inPath     = flag.String("in", "", "input file (default stdin)")
		langPath   = flag.String("lang", "", "language config YAML (default embedded)")
		paragraphs = flag.Bool("paragraphs", false, "treat newlines as paragraph boundaries")
		maxTokens  = flag.Int("max-tokens", 0, "max sentence length in tokens (0 = default, -1 = unlimited)")
		progress   = flag.Bool("progress", false, "print parsing progress")
		dbPath     = flag.String("db", "", "save parsed sentences to this SQLite database")
		foreign    = flag.Bool("foreign", false, "attempt to parse foreign-looking sentences")
	)
	flag.Parse()

	var lang *config.Language
	if *langPath != "" {
		var err error
		lang, err = config.Load(*langPath)
		if err != nil {
			log.Fatalf("loading language config: %v", err)
		}
	}

	g, err := greina.New(greina.Options{Language: lang, ParseForeignSentences: *foreign})
	if err != nil {
		log.Fatalf("initializing: %v", err)
	}
	defer g.Cleanup()

	text, err := readInput(*inPath)
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	opts := greina.SubmitOptions{
		Parse:           true,
		SplitParagraphs: *paragraphs,
		MaxSentTokens:   *maxTokens,
	}
	if *progress {
		opts.Progress = func(p float64) {
			fmt.Fprintf(os.Stderr, "\rprogress: %5.1f%%", p*100)
			if p >= 1 {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	job, err := g.Submit(text, opts)
	if err != nil {
		log.Fatalf("submitting job: %v", err)
	}

	ctx := context.Background()
	var db interface {
		Close() error
	}
	var save func(s *greina.Sentence)
	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		db = st
		save = func(s *greina.Sentence) {
			id, err := g.SaveSentence(ctx, st, s)
			if err != nil {
				log.Printf("saving sentence: %v", err)
				return
			}
			fmt.Printf("  saved as %s\n", id)
		}
		defer db.Close()
	}

	for sent := range job.Sentences() {
		fmt.Println(sent.Text())
		if sent.Parse() {
			fmt.Printf("  %s\n", sent.FlatTree())
			if save != nil {
				save(sent)
			}
		} else if e := sent.Error(); e != nil {
			fmt.Printf("  parse failed at token %d: %s\n", sent.ErrIndex(), e.Error())
		} else {
			fmt.Println("  parse failed")
		}
	}

	fmt.Printf("\nsentences: %d  parsed: %d  tokens: %d  combinations: %d\n",
		job.NumSentences(), job.NumParsed(), job.NumTokens(), job.NumCombinations())
	fmt.Printf("ambiguity: %.3f  parse time: %s  reduce time: %s\n",
		job.Ambiguity(), job.ParseTime(), job.ReduceTime())
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
