package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// ArrRequest records one request received by a FakeArr.
type ArrRequest struct {
	Method   string
	Path     string
	RawQuery string
	APIKey   string
	Body     map[string]any
}

// FakeArr emulates the Sonarr/Radarr v3 endpoints used by arrtag. Collection
// is "series" or "movie".
type FakeArr struct {
	Server *httptest.Server

	collection string
	apiKey     string

	mu           sync.Mutex
	listBody     string
	listStatus   int
	updateStatus map[int64]int
	requests     []ArrRequest
}

// NewFakeArr starts a server answering list calls with listBody.
func NewFakeArr(t testing.TB, collection, apiKey, listBody string) *FakeArr {
	t.Helper()
	f := &FakeArr{
		collection:   collection,
		apiKey:       apiKey,
		listBody:     listBody,
		listStatus:   http.StatusOK,
		updateStatus: map[int64]int{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server base URL.
func (f *FakeArr) URL() string { return f.Server.URL }

// SetListStatus makes the list endpoint answer with code.
func (f *FakeArr) SetListStatus(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listStatus = code
}

// SetUpdateStatus makes updates of entry id answer with code.
func (f *FakeArr) SetUpdateStatus(id int64, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateStatus[id] = code
}

// Requests returns every request received so far.
func (f *FakeArr) Requests() []ArrRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ArrRequest(nil), f.requests...)
}

// Updates returns only the PUT requests.
func (f *FakeArr) Updates() []ArrRequest {
	var out []ArrRequest
	for _, req := range f.Requests() {
		if req.Method == http.MethodPut {
			out = append(out, req)
		}
	}
	return out
}

func (f *FakeArr) serve(w http.ResponseWriter, r *http.Request) {
	rec := ArrRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		APIKey:   r.Header.Get("X-Api-Key"),
	}
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	listStatus := f.listStatus
	listBody := f.listBody
	f.mu.Unlock()

	if f.apiKey != "" && rec.APIKey != f.apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	base := "/api/v3/" + f.collection
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v3/system/status":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"appName":"Fake` + f.collection + `","version":"4.0.0"}`))
	case r.Method == http.MethodGet && r.URL.Path == base:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(listStatus)
		_, _ = w.Write([]byte(listBody))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, base+"/"):
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, base+"/"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.mu.Lock()
		code, ok := f.updateStatus[id]
		f.mu.Unlock()
		if !ok {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		if code >= http.StatusBadRequest {
			_, _ = w.Write([]byte(`[{"propertyName":"Path","errorMessage":"rejected"}]`))
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
