// graphqlcore-server is a minimal demonstration host for the engine in
// internal/execute: it loads an SDL schema and an optional YAML data
// fixture, then serves POST /query, streaming @defer/@stream payloads as a
// multipart/mixed response when the operation produced any.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/goccy/go-yaml"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/kadenrun/gqlengine/internal/execute"
	enginegraphql "github.com/kadenrun/gqlengine/internal/graphql"
)

func main() {
	if err := realMain(); err != nil {
		log.Fatal(err)
	}
}

func realMain() error {
	schemaPath := flag.String("schema", "schema.graphqls", "path to the SDL schema file to serve")
	dataPath := flag.String("data", "", "path to a YAML fixture providing the root value")
	flag.Parse()

	logger := stdr.New(log.Default())

	schemaBytes, err := os.ReadFile(*schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{Name: *schemaPath, Input: string(schemaBytes)})
	if gErr != nil {
		return gErr
	}
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	if gErr != nil {
		return gErr
	}
	enginegraphql.RegisterIncrementalDirectives(schema)
	enginegraphql.LexicographicSortSchema(schema)

	var rootValue map[string]interface{}
	if *dataPath != "" {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			return fmt.Errorf("reading data fixture: %w", err)
		}
		rootValue = map[string]interface{}{}
		if err := yaml.Unmarshal(b, &rootValue); err != nil {
			return fmt.Errorf("parsing data fixture: %w", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("graphqlcore", "/query"))
	mux.HandleFunc("/query", newQueryHandler(schema, rootValue))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("listening", "addr", addr)

	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logr.NewContext(r.Context(), logger))
		mux.ServeHTTP(w, r)
	}))
}

type requestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func newQueryHandler(schema *ast.Schema, rootValue map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logr.FromContextOrDiscard(r.Context())

		if r.Method != http.MethodPost {
			http.Error(w, "graphqlcore-server only accepts POST", http.StatusMethodNotAllowed)
			return
		}

		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		document, gErr := parser.ParseQuery(&ast.Source{Name: "query", Input: body.Query})
		if gErr != nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{"errors": gqlerror.List{gqlerror.Wrap(gErr)}})
			return
		}
		if gErrs := validator.Validate(schema, document); len(gErrs) != 0 {
			writeJSON(w, http.StatusOK, map[string]interface{}{"errors": gErrs})
			return
		}

		result, iterator, err := execute.Execute(r.Context(), &execute.ExecutionArgs{
			Schema:         schema,
			Document:       document,
			RootValue:      rootValue,
			VariableValues: body.Variables,
			OperationName:  body.OperationName,
		})
		if err != nil {
			logger.Error(err, "request did not reach field execution")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if iterator == nil {
			writeJSON(w, http.StatusOK, result)
			return
		}

		serveIncremental(w, result, iterator, logger)
	}
}

// serveIncremental streams the initial payload and every subsequent
// @defer/@stream payload as successive parts of a multipart/mixed
// response, the same framing graphql-js's own incremental delivery
// transport uses, so a client that already knows that convention needs no
// special handling for this server.
func serveIncremental(w http.ResponseWriter, result *execute.ExecutionResult, iterator *execute.SubsequentIterator, logger logr.Logger) {
	mw := multipart.NewWriter(w)
	w.Header().Set("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%s", mw.Boundary()))
	w.WriteHeader(http.StatusOK)

	if err := writePart(mw, result); err != nil {
		logger.Error(err, "writing initial incremental part")
		return
	}
	if f, ok := w.(flusher); ok {
		f.Flush()
	}

	for {
		payload, hasNext := iterator.Next()
		chunk := map[string]interface{}{"hasNext": hasNext}
		if payload != nil {
			chunk["incremental"] = []interface{}{payload}
		}
		if err := writePart(mw, chunk); err != nil {
			logger.Error(err, "writing incremental part")
			return
		}
		if f, ok := w.(flusher); ok {
			f.Flush()
		}
		if !hasNext {
			break
		}
	}
	mw.Close()
}

type flusher interface {
	Flush()
}

func writePart(mw *multipart.Writer, v interface{}) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json"}})
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(part)
	if _, err := bw.Write(b); err != nil {
		return err
	}
	return bw.Flush()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
