package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// webTestServer provides a test server for the spectator pages
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:         app.Logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// get makes a GET request and returns the response
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createGame starts a game through the controller and returns its id
func (ts *webTestServer) createGame(side model.Side, layout string) model.SessionID {
	ts.t.Helper()
	result, err := ts.app.GameController.CreateGame(ts.t.Context(), side, model.MustParseBoard(layout))
	require.NoError(ts.t, err)
	return result.ID
}

// parseHTML parses the response body as HTML
func parseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
