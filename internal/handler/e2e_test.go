package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

const e2eBaseURL = "http://example.test"

// localClient 在进程内驱动 handler，并可选地通过 cookie jar 保持会话
type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) *http.Response {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp
}

func mustRequest(t *testing.T, client *localClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e2eBaseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return client.Do(req)
}

func mustRequestJSON(t *testing.T, client *localClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return mustRequest(t, client, method, path, bytes.NewReader(data), map[string]string{"Content-Type": "application/json"})
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, data)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, data)
	}
}

func createdID(t *testing.T, resp *http.Response, key string) float64 {
	t.Helper()
	expectStatus(t, resp, http.StatusCreated)
	var body map[string]map[string]interface{}
	decodeJSON(t, resp, &body)
	id, ok := body[key]["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("response has no %s id: %v", key, body)
	}
	return id
}

func TestE2E_AdminBuildsAndRetiresLandingPage(t *testing.T) {
	s := setupServer(t)
	public := newLocalClient(s.engine, false)
	admin := newLocalClient(s.engine, true)

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	resp := mustRequest(t, admin, http.MethodPost, "/admin/api/login", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	expectStatus(t, resp, http.StatusOK)

	createdID(t, mustRequestJSON(t, admin, http.MethodPost, "/admin/api/communities", map[string]interface{}{
		"name": "Golden Grove", "city": "Golden", "cluster": "west-metro",
	}), "community")
	createdID(t, mustRequestJSON(t, admin, http.MethodPost, "/admin/api/care-types", map[string]interface{}{
		"name": "Memory Care",
	}), "careType")
	templateID := createdID(t, mustRequestJSON(t, admin, http.MethodPost, "/admin/api/templates", map[string]interface{}{
		"urlPattern":             "/:careLevel/:city",
		"title":                  "{careType} in {city}",
		"cities":                 []string{"golden"},
		"showRelatedCommunities": true,
	}), "template")
	createdID(t, mustRequestJSON(t, admin, http.MethodPost, "/admin/api/sections", map[string]interface{}{
		"landingPageTemplateId": templateID,
		"sectionKey":            "intro",
		"content":               map[string]interface{}{"body": "Welcome to **Golden**"},
	}), "section")

	var page struct {
		Text struct {
			Title string `json:"title"`
		} `json:"text"`
		RelatedCommunities []struct {
			Name string `json:"name"`
		} `json:"relatedCommunities"`
		Sections []struct {
			SectionKey string                 `json:"sectionKey"`
			Content    map[string]interface{} `json:"content"`
		} `json:"sections"`
	}
	resp = mustRequest(t, public, http.MethodGet, "/memory-care/golden", nil, nil)
	expectStatus(t, resp, http.StatusOK)
	decodeJSON(t, resp, &page)

	if page.Text.Title != "Memory Care in Golden" {
		t.Fatalf("unexpected title %q", page.Text.Title)
	}
	if len(page.RelatedCommunities) != 1 || page.RelatedCommunities[0].Name != "Golden Grove" {
		t.Fatalf("unexpected related communities %v", page.RelatedCommunities)
	}
	var intro map[string]interface{}
	var keys []string
	for _, section := range page.Sections {
		keys = append(keys, section.SectionKey)
		if section.SectionKey == "intro" {
			intro = section.Content
		}
	}
	if intro == nil {
		t.Fatalf("intro section missing, got %v", keys)
	}
	if html, _ := intro["bodyHtml"].(string); !strings.Contains(html, "<strong>Golden</strong>") {
		t.Fatalf("unexpected rendered body %q", html)
	}

	resp = mustRequest(t, admin, http.MethodDelete, "/admin/api/templates/"+formatID(templateID), nil, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = mustRequest(t, public, http.MethodGet, "/memory-care/golden", nil, nil)
	expectStatus(t, resp, http.StatusNotFound)

	var sections map[string][]interface{}
	resp = mustRequest(t, admin, http.MethodGet, "/admin/api/sections", nil, nil)
	expectStatus(t, resp, http.StatusOK)
	decodeJSON(t, resp, &sections)
	if len(sections["sections"]) != 0 {
		t.Fatalf("template sections should be removed with the template, got %v", sections["sections"])
	}

	resp = mustRequest(t, admin, http.MethodPost, "/admin/api/logout", nil, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = mustRequest(t, admin, http.MethodGet, "/admin/api/templates", nil, nil)
	expectStatus(t, resp, http.StatusUnauthorized)
}

func formatID(id float64) string {
	return strconv.FormatUint(uint64(id), 10)
}
