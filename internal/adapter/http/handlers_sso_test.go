package adapthttp_test

import (
	"net/http"
	"testing"
)

func TestSSORoutesDisabledWithoutConfig(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	for _, p := range []string{"/api/auth/sso/login", "/api/auth/sso/callback"} {
		resp, err := client.Get(ts.URL + p)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", p, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["success"] != false {
			t.Fatalf("%s: expected failure envelope, got %v", p, body)
		}
	}
}
