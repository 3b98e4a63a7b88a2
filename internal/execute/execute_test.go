package execute

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"path"
	"strings"
	"testing"

	testlogr "github.com/go-logr/logr/testing"
	"github.com/kadenrun/gqlengine/internal/graphql"
	"github.com/kadenrun/gqlengine/internal/log"
	"github.com/kadenrun/gqlengine/internal/testutils"
	"github.com/stretchr/testify/require"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// TestExecute runs every *.graphql fixture under _testdata/assets against
// its declared schema, data and variables files and checks the resulting
// response (after draining any @defer/@stream payloads through
// ExecuteSync) two ways: a golden-file diff in the manner of the engine's
// other fixture-driven tests, and an explicit per-fixture assertion in
// assertFixtureExpectations below, since a golden file that has never been
// reviewed by a person offers no protection against a wrong response
// shape being committed as its own baseline.
func TestExecute(t *testing.T) {
	const testFileDir = "./_testdata/assets"
	const expectFileDir = "./_testdata/expected"

	files, err := ioutil.ReadDir(testFileDir)
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !strings.HasSuffix(file.Name(), ".graphql") {
			continue
		}

		t.Run(file.Name(), func(t *testing.T) {
			ctx := context.Background()
			ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

			b1, err := ioutil.ReadFile(path.Join(testFileDir, file.Name()))
			if err != nil {
				t.Fatal(err)
			}
			rawQuery := string(b1)

			operationName := testutils.FindOptionString(t, "operationName", rawQuery)

			document, gErr := parser.ParseQuery(&ast.Source{
				Name:  file.Name(),
				Input: rawQuery,
			})
			if gErr != nil {
				t.Fatal(gErr)
			}

			schemaFile := testutils.FindSchemaFileName(t, rawQuery)
			b2, err := ioutil.ReadFile(path.Join(testFileDir, schemaFile))
			if err != nil {
				t.Fatal(err)
			}

			schemaDoc, gErr := parser.ParseSchemas(
				validator.Prelude,
				&ast.Source{
					Name:  schemaFile,
					Input: string(b2),
				},
			)
			if gErr != nil {
				t.Fatal(gErr)
			}

			schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
			if gErr != nil {
				t.Fatal(gErr)
			}
			graphql.RegisterIncrementalDirectives(schema)
			graphql.LexicographicSortSchema(schema)

			gErrs := validator.Validate(schema, document)
			if len(gErrs) != 0 {
				t.Fatal(gErrs)
			}

			dataFile := testutils.FindOptionString(t, "data", rawQuery)
			data := map[string]interface{}{}
			if dataFile != "" {
				b3, err := ioutil.ReadFile(path.Join(testFileDir, dataFile))
				if err != nil {
					t.Fatal(err)
				}
				if err := json.Unmarshal(b3, &data); err != nil {
					t.Fatal(err)
				}
			}

			variablesFile := testutils.FindOptionString(t, "variables", rawQuery)
			variables := map[string]interface{}{}
			if variablesFile != "" {
				b4, err := ioutil.ReadFile(path.Join(testFileDir, variablesFile))
				if err != nil {
					t.Fatal(err)
				}
				if err := json.Unmarshal(b4, &variables); err != nil {
					t.Fatal(err)
				}
			}

			t.Logf("schema: %s, operation: %s, operationName: %s, dataFile: %s, variableFile: %s", schemaFile, file.Name(), operationName, dataFile, variablesFile)

			result, err := ExecuteSync(ctx, &ExecutionArgs{
				Schema:         schema,
				Document:       document,
				RootValue:      data,
				VariableValues: variables,
				OperationName:  operationName,
				FieldResolver:  defaultFieldResolver,
				TypeResolver:   defaultTypeResolver,
			})
			if err != nil {
				t.Fatal(err)
			}

			assertFixtureExpectations(t, file.Name(), result)

			responseBytes, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				t.Fatal(err)
			}

			fileName := file.Name()[:len(file.Name())-len(".graphql")]

			testutils.CheckGoldenFile(t, responseBytes, path.Join(expectFileDir, fileName+".response.json"))
		})
	}
}

// assertFixtureExpectations pins down the exact response shape each fixture
// under _testdata/assets must produce, so a regression in value completion
// or incremental delivery fails this test regardless of whether a golden
// file happens to already agree with the wrong output.
func assertFixtureExpectations(t *testing.T, fixtureName string, result *ExecutionResult) {
	t.Helper()

	getMap := func(m *OrderedMap, key string) *OrderedMap {
		v, ok := m.Get(key)
		require.Truef(t, ok, "missing key %q", key)
		om, ok := v.(*OrderedMap)
		require.Truef(t, ok, "key %q is not an object: %T", key, v)
		return om
	}

	switch fixtureName {
	case "basic.graphql":
		require.Empty(t, result.Errors)
		require.NotNil(t, result.Data)

		books, ok := result.Data.Get("books")
		require.True(t, ok)
		list, ok := books.([]interface{})
		require.True(t, ok)
		require.Len(t, list, 2)

		b0 := list[0].(*OrderedMap)
		id, _ := b0.Get("id")
		title, _ := b0.Get("title")
		require.Equal(t, "b1", id)
		require.Equal(t, "Dune", title)
		author0 := getMap(b0, "author")
		name0, _ := author0.Get("name")
		require.Equal(t, "Frank Herbert", name0)

		b1 := list[1].(*OrderedMap)
		id1, _ := b1.Get("id")
		title1, _ := b1.Get("title")
		require.Equal(t, "b2", id1)
		require.Equal(t, "Hyperion", title1)
		author1 := getMap(b1, "author")
		name1, _ := author1.Get("name")
		require.Equal(t, "Dan Simmons", name1)

	case "abstract.graphql":
		require.Empty(t, result.Errors)
		search, ok := result.Data.Get("search")
		require.True(t, ok)
		list, ok := search.([]interface{})
		require.True(t, ok)
		require.Len(t, list, 2)

		book := list[0].(*OrderedMap)
		typename, _ := book.Get("__typename")
		title, _ := book.Get("title")
		require.Equal(t, "Book", typename)
		require.Equal(t, "Dune", title)
		_, hasName := book.Get("name")
		require.False(t, hasName)

		author := list[1].(*OrderedMap)
		typename2, _ := author.Get("__typename")
		name, _ := author.Get("name")
		require.Equal(t, "Author", typename2)
		require.Equal(t, "Frank Herbert", name)
		_, hasTitle := author.Get("title")
		require.False(t, hasTitle)

	case "nonnull_bubble.graphql":
		require.Nil(t, result.Data)
		require.Len(t, result.Errors, 1)
		require.Contains(t, result.Errors[0].Message, "Book.title")
		require.Equal(t, ast.Path{ast.PathName("books"), ast.PathIndex(0), ast.PathName("title")}, result.Errors[0].Path)

	case "nullable_list_item.graphql":
		require.Len(t, result.Errors, 1)
		require.Equal(t, ast.Path{ast.PathName("numbers"), ast.PathIndex(1)}, result.Errors[0].Path)
		numbers, ok := result.Data.Get("numbers")
		require.True(t, ok)
		list, ok := numbers.([]interface{})
		require.True(t, ok)
		require.Equal(t, []interface{}{1, nil, 3}, list)

	case "defer.graphql":
		require.Empty(t, result.Errors)
		books, ok := result.Data.Get("books")
		require.True(t, ok)
		list, ok := books.([]interface{})
		require.True(t, ok)
		require.Len(t, list, 2)

		b0 := list[0].(*OrderedMap)
		id, _ := b0.Get("id")
		title, _ := b0.Get("title")
		require.Equal(t, "b1", id)
		require.Equal(t, "Dune", title)
		author0 := getMap(b0, "author")
		name0, _ := author0.Get("name")
		require.Equal(t, "Frank Herbert", name0)

		b1 := list[1].(*OrderedMap)
		id1, _ := b1.Get("id")
		title1, _ := b1.Get("title")
		require.Equal(t, "b2", id1)
		require.Equal(t, "Hyperion", title1)
		author1 := getMap(b1, "author")
		name1, _ := author1.Get("name")
		require.Equal(t, "Dan Simmons", name1)

	case "stream.graphql":
		require.Empty(t, result.Errors)
		books, ok := result.Data.Get("books")
		require.True(t, ok)
		list, ok := books.([]interface{})
		require.True(t, ok)
		require.Len(t, list, 2)

		b0 := list[0].(*OrderedMap)
		id0, _ := b0.Get("id")
		title0, _ := b0.Get("title")
		require.Equal(t, "b1", id0)
		require.Equal(t, "Dune", title0)

		b1 := list[1].(*OrderedMap)
		id1, _ := b1.Get("id")
		title1, _ := b1.Get("title")
		require.Equal(t, "b2", id1)
		require.Equal(t, "Hyperion", title1)

	case "stream_multi.graphql":
		require.Empty(t, result.Errors)
		numbers, ok := result.Data.Get("streamNumbers")
		require.True(t, ok)
		list, ok := numbers.([]interface{})
		require.True(t, ok)
		require.Equal(t, []interface{}{10, 20, 30, 40}, list)
	}
}
