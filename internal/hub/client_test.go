package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(Page[Task]{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL).WithToken("secret-token")
	if _, err := client.ListTasks(context.Background(), Params{}); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("got Authorization %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("got Accept %q", gotAccept)
	}
}

func TestAPIErrorParsesFieldLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"name": ["This field is required.", "Ensure this field has no more than 64 characters."]}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetRepository(context.Background(), "abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("got status %d", apiErr.StatusCode)
	}
	if got := apiErr.Fields["name"]; len(got) != 2 {
		t.Fatalf("got field messages %v", got)
	}
	msg := apiErr.FieldMessage()
	if !strings.Contains(msg, "This field is required.") {
		t.Errorf("FieldMessage %q missing list entry", msg)
	}
}

func TestAPIErrorParsesDetailString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Not found."}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTask(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if got := apiErr.Fields["detail"]; len(got) != 1 || got[0] != "Not found." {
		t.Errorf("got detail %v", got)
	}
	if want := "404 Not Found: Not found."; apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestAPIErrorUnstructuredBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream down</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTask(context.Background(), "abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Fields != nil {
		t.Errorf("expected nil Fields for HTML body, got %v", apiErr.Fields)
	}
	if !strings.Contains(apiErr.Body, "upstream down") {
		t.Errorf("Body %q missing raw content", apiErr.Body)
	}
	if apiErr.Error() != "502 Bad Gateway" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestCancelTaskPatchesCanceledState(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Task{PulpHref: "/pulp/api/v3/tasks/abc/", State: TaskCanceled})
	}))
	defer srv.Close()

	task, err := NewClient(srv.URL).CancelTask(context.Background(), "abc")
	if err != nil {
		t.Fatalf("CancelTask: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("got method %q, want PATCH", gotMethod)
	}
	if gotBody["state"] != "canceled" {
		t.Errorf("got body %v", gotBody)
	}
	if task.State != TaskCanceled {
		t.Errorf("got state %q", task.State)
	}
}

func TestListAllRepositoriesWalksPages(t *testing.T) {
	const total = 250
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		page := Page[Repository]{Count: total}
		for i := offset; i < total && i < offset+limit; i++ {
			page.Results = append(page.Results, Repository{Name: fmt.Sprintf("repo-%d", i)})
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL).ListAllRepositories(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListAllRepositories: %v", err)
	}
	if len(repos) != total {
		t.Errorf("got %d repositories, want %d", len(repos), total)
	}
	if requests != 3 {
		t.Errorf("got %d page requests, want 3", requests)
	}
	if repos[0].Name != "repo-0" || repos[total-1].Name != fmt.Sprintf("repo-%d", total-1) {
		t.Error("pages concatenated out of order")
	}
}

func TestListAllRepositoriesCapsPages(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Claim an endless result set.
		page := Page[Repository]{Count: 1 << 20}
		for i := 0; i < 100; i++ {
			page.Results = append(page.Results, Repository{Name: "repo"})
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL).ListAllRepositories(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListAllRepositories: %v", err)
	}
	if requests != 10 {
		t.Errorf("got %d page requests, want the 10-page cap", requests)
	}
	if len(repos) != 1000 {
		t.Errorf("got %d repositories, want 1000", len(repos))
	}
}

func TestParamsValues(t *testing.T) {
	p := Params{
		Offset:  50,
		Limit:   25,
		Sort:    "-pulp_created",
		Filters: map[string]string{"name": "community", "empty": ""},
	}
	v := p.Values()
	if v.Get("offset") != "50" || v.Get("limit") != "25" {
		t.Errorf("pagination encoded as %v", v)
	}
	if v.Get("ordering") != "-pulp_created" {
		t.Errorf("sort encoded as %q, want ordering parameter", v.Get("ordering"))
	}
	if v.Get("name") != "community" {
		t.Errorf("filter encoded as %q", v.Get("name"))
	}
	if _, ok := v["empty"]; ok {
		t.Error("empty filter values must be dropped")
	}
	if _, ok := v["sort"]; ok {
		t.Error("sort must not leak through as its own parameter")
	}
}

func TestParamsSortStripsExplicitAscendingPrefix(t *testing.T) {
	v := Params{Sort: "+name"}.Values()
	if v.Get("ordering") != "name" {
		t.Errorf("got ordering %q, want %q", v.Get("ordering"), "name")
	}
}

func TestPulpIDFromHref(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"/pulp/api/v3/tasks/0be64cb2-aaaa-bbbb-cccc-ddddeeeeffff/", "0be64cb2-aaaa-bbbb-cccc-ddddeeeeffff"},
		{"/pulp/api/v3/repositories/ansible/ansible/abc123/", "abc123"},
		{"abc123", "abc123"},
		{"", ""},
		{"///", ""},
	}
	for _, tc := range cases {
		if got := PulpIDFromHref(tc.href); got != tc.want {
			t.Errorf("PulpIDFromHref(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestPulpIDFromHrefRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("the id survives embedding into a pulp href", prop.ForAll(
		func(id string) bool {
			href := "/pulp/api/v3/tasks/" + id + "/"
			return PulpIDFromHref(href) == id
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestFieldMessageOrdersFieldsByName(t *testing.T) {
	apiErr := &APIError{
		StatusCode: 400,
		StatusText: "Bad Request",
		Fields: map[string][]string{
			"url":               {"Enter a valid URL."},
			"name":              {"This field is required."},
			"requirements_file": {"Invalid YAML."},
		},
	}
	want := "This field is required. Invalid YAML. Enter a valid URL."
	for i := 0; i < 20; i++ {
		if got := apiErr.FieldMessage(); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}
