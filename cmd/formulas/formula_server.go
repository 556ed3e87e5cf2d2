package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/formula-lang/formula-api/shared"
	"github.com/formula-lang/formula-api/util"
	"github.com/gorilla/mux"
)

// FormulaServer exposes formula parsing, reconstruction, translation and
// key counting as JSON endpoints. It holds no state between requests.
type FormulaServer struct {
	influxDbClient *util.InfluxDbClient
}

func NewFormulaServer(influxDbClient *util.InfluxDbClient) *FormulaServer {
	return &FormulaServer{
		influxDbClient: influxDbClient,
	}
}

type formulaRequest struct {
	Formula string `json:"formula"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Label   string `json:"label,omitempty"`
}

func (s *FormulaServer) countRequest(op string) {
	if s.influxDbClient != nil {
		s.influxDbClient.Write("formula_requests", map[string]string{"op": op}, 1)
	}
}

// decodeRequest reads the JSON request body, answering false after writing
// an error response if the body is unusable.
func decodeRequest(w http.ResponseWriter, req *http.Request) (formulaRequest, bool) {
	var r formulaRequest
	if req.Method != http.MethodPost {
		util.WriteHttpMethodNotAllowed(w)
		return r, false
	}
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		util.WriteJsonError(w, http.StatusBadRequest, "invalid JSON body")
		return r, false
	}
	if r.Formula == "" {
		util.WriteJsonError(w, http.StatusBadRequest, "missing formula")
		return r, false
	}
	return r, true
}

// writeFormulaError maps the library's error kinds to HTTP responses.
func writeFormulaError(w http.ResponseWriter, err error) {
	var malformed *shared.MalformedFormulaError
	var unrecognized *shared.UnrecognizedExpressionError
	var invalidRef *shared.InvalidReferenceError
	switch {
	case errors.As(err, &malformed), errors.As(err, &unrecognized), errors.As(err, &invalidRef):
		util.WriteJsonError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		util.WriteHttpInternalServerError(w)
	}
}

func (s *FormulaServer) ParseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		parser, err := shared.NewParser(r.Formula)
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		structured, err := parser.ToStructured()
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		s.countRequest("parse")
		util.WriteJsonResponse(w, structured)
	})
}

func (s *FormulaServer) ReconstructHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		parser, err := shared.NewParser(r.Formula)
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		formula, err := parser.ReconstructedFormula()
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		s.countRequest("reconstruct")
		util.WriteJsonResponse(w, map[string]string{"formula": formula})
	})
}

func (s *FormulaServer) TranslateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		if r.From == "" || r.To == "" {
			util.WriteJsonError(w, http.StatusBadRequest, "missing from/to cell")
			return
		}
		parser, err := shared.NewParser(r.Formula)
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		if _, err := parser.Translate(r.From, r.To); err != nil {
			writeFormulaError(w, err)
			return
		}
		formula, err := parser.ReconstructedFormula()
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		structured, err := parser.ToStructured()
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		s.countRequest("translate")
		util.WriteJsonResponse(w, map[string]any{
			"formula":    formula,
			"structured": structured,
		})
	})
}

func (s *FormulaServer) KeysHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		parser, err := shared.NewParser(r.Formula)
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		structured, err := parser.ToStructured()
		if err != nil {
			writeFormulaError(w, err)
			return
		}
		s.countRequest("keys")
		util.WriteJsonResponse(w, shared.KeyCounts(structured, r.Label))
	})
}

func (s *FormulaServer) Run(port int) {
	router := mux.NewRouter()
	router.Handle("/v1/formulas/parse", s.ParseHandler())
	router.Handle("/v1/formulas/reconstruct", s.ReconstructHandler())
	router.Handle("/v1/formulas/translate", s.TranslateHandler())
	router.Handle("/v1/formulas/keys", s.KeysHandler())
	router.NotFoundHandler = http.HandlerFunc(util.HandleNotFound)
	log.Printf("Listening on port %d", port)
	http.ListenAndServe(fmt.Sprintf(":%d", port), util.CORSHandler(router))
}
