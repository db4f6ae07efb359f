package screen

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/session"
)

// fakeService is a stand-in for the remote API that counts calls per
// method and path.
type fakeService struct {
	mux   *http.ServeMux
	calls map[string]int
}

func newFakeService() *fakeService {
	return &fakeService{mux: http.NewServeMux(), calls: map[string]int{}}
}

func (f *fakeService) handle(method, path, body string) {
	f.mux.HandleFunc(method+" /api/v1"+path, func(w http.ResponseWriter, r *http.Request) {
		f.calls[method+" "+path]++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func (f *fakeService) handleFunc(method, path string, fn http.HandlerFunc) {
	f.mux.HandleFunc(method+" /api/v1"+path, func(w http.ResponseWriter, r *http.Request) {
		f.calls[method+" "+path]++
		fn(w, r)
	})
}

func (f *fakeService) count(method, path string) int {
	return f.calls[method+" "+path]
}

func newTestClient(t *testing.T, svc *fakeService) *api.Client {
	t.Helper()
	srv := httptest.NewServer(svc.mux)
	t.Cleanup(srv.Close)
	sess, err := session.Open(":memory:")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return api.New(api.DefaultConfig(srv.URL), sess)
}
