// Command greina-server exposes the parsing pipeline as a JSON REST API.
//
// Endpoints:
//
//	POST /api/parse            body: {"text":"..."}
//	GET  /api/parse/single?text=...
//	GET  /api/nounphrase?text=...[&number=et|ft]
//	GET  /api/lemmatize?text=...[&all=true]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/teksti/greina/pkg/greina"
	"github.com/teksti/greina/pkg/greina/config"
	"github.com/teksti/greina/pkg/greina/lemma"
)

// ---- JSON response types ------------------------------------------------

type sentenceJSON struct {
	Text      string            `json:"text"`
	TidyText  string            `json:"tidy_text"`
	Parsed    bool              `json:"parsed"`
	Tree      string            `json:"tree,omitempty"`
	Terminals []greina.Terminal `json:"terminals,omitempty"`
	Lemmas    []string          `json:"lemmas,omitempty"`
	ErrIndex  *int              `json:"err_index,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type parseResponse struct {
	Sentences       []sentenceJSON `json:"sentences"`
	NumSentences    int            `json:"num_sentences"`
	NumParsed       int            `json:"num_parsed"`
	NumTokens       int            `json:"num_tokens"`
	NumCombinations int64          `json:"num_combinations"`
	Ambiguity       float64        `json:"ambiguity"`
	ParseTimeMs     int64          `json:"parse_time_ms"`
	ReduceTimeMs    int64          `json:"reduce_time_ms"`
}

type nounPhraseJSON struct {
	Text       string `json:"text"`
	Parsed     bool   `json:"parsed"`
	Nominative string `json:"nominative,omitempty"`
	Accusative string `json:"accusative,omitempty"`
	Dative     string `json:"dative,omitempty"`
	Genitive   string `json:"genitive,omitempty"`
	Indefinite string `json:"indefinite,omitempty"`
	Canonical  string `json:"canonical,omitempty"`
}

type server struct {
	g *greina.Greina
}

func main() {
	var (
		addr     = flag.String("addr", ":8090", "listen address")
		langPath = flag.String("lang", "", "language config YAML (default embedded)")
		origin   = flag.String("origin", "*", "allowed CORS origin")
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
	g, err := greina.New(greina.Options{Language: lang})
	if err != nil {
		log.Fatalf("initializing: %v", err)
	}
	defer g.Cleanup()

	s := &server{g: g}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse", s.handleParse)
	mux.HandleFunc("GET /api/parse/single", s.handleParseSingle)
	mux.HandleFunc("GET /api/nounphrase", s.handleNounPhrase)
	mux.HandleFunc("GET /api/lemmatize", s.handleLemmatize)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{*origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	log.Printf("listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, c.Handler(mux)))
}

func (s *server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text          string `json:"text"`
		Paragraphs    bool   `json:"paragraphs"`
		MaxSentTokens int    `json:"max_sent_tokens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body: %v", err)
		return
	}
	res, err := s.g.Parse(req.Text, greina.SubmitOptions{
		SplitParagraphs: req.Paragraphs,
		MaxSentTokens:   req.MaxSentTokens,
	})
	if err != nil {
		httpError(w, http.StatusInternalServerError, "parse failed: %v", err)
		return
	}
	resp := parseResponse{
		NumSentences:    res.NumSentences,
		NumParsed:       res.NumParsed,
		NumTokens:       res.NumTokens,
		NumCombinations: res.NumCombinations,
		Ambiguity:       res.Ambiguity,
		ParseTimeMs:     res.ParseTime.Milliseconds(),
		ReduceTimeMs:    res.ReduceTime.Milliseconds(),
	}
	for _, sent := range res.Sentences {
		resp.Sentences = append(resp.Sentences, sentenceToJSON(sent))
	}
	writeJSON(w, resp)
}

func (s *server) handleParseSingle(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		httpError(w, http.StatusBadRequest, "missing text parameter")
		return
	}
	sent, err := s.g.ParseSingle(text, 0)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "parse failed: %v", err)
		return
	}
	if sent == nil {
		httpError(w, http.StatusNotFound, "no sentence found in input")
		return
	}
	writeJSON(w, sentenceToJSON(sent))
}

func (s *server) handleNounPhrase(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	if text == "" {
		httpError(w, http.StatusBadRequest, "missing text parameter")
		return
	}
	np, err := s.g.ParseNounPhrase(text, q.Get("number"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "%v", err)
		return
	}
	if np == nil {
		httpError(w, http.StatusNotFound, "no noun phrase found in input")
		return
	}
	resp := nounPhraseJSON{Text: np.Text(), Parsed: np.Tree() != nil}
	resp.Nominative, _ = np.Nominative()
	resp.Accusative, _ = np.Accusative()
	resp.Dative, _ = np.Dative()
	resp.Genitive, _ = np.Genitive()
	resp.Indefinite, _ = np.Indefinite()
	resp.Canonical, _ = np.Canonical()
	writeJSON(w, resp)
}

func (s *server) handleLemmatize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	if text == "" {
		httpError(w, http.StatusBadRequest, "missing text parameter")
		return
	}
	if q.Get("all") == "true" {
		all := s.g.LemmatizeAll(text, func(p lemma.Pair) string { return p.Lemma })
		writeJSON(w, map[string]any{"lemmas": all})
		return
	}
	writeJSON(w, map[string]any{"lemmas": s.g.Lemmatize(text)})
}

func sentenceToJSON(sent *greina.Sentence) sentenceJSON {
	out := sentenceJSON{
		Text:     sent.Text(),
		TidyText: sent.TidyText(),
		Parsed:   sent.Parse(),
	}
	if out.Parsed {
		out.Tree = sent.FlatTree()
		out.Terminals = sent.Terminals()
		out.Lemmas = sent.Lemmas()
	} else {
		if e := sent.Error(); e != nil {
			out.Error = e.Error()
		}
		if idx := sent.ErrIndex(); idx >= 0 {
			out.ErrIndex = &idx
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func httpError(w http.ResponseWriter, code int, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf(format, args...)})
}
