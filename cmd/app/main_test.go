package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Deymos01/pr-auto-reviewer/internal/bitbucket"
	"github.com/Deymos01/pr-auto-reviewer/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHosts serves both the Bitbucket API and the Gemini API from one router.
type fakeHosts struct {
	mu       sync.Mutex
	comments map[string][]string
	updates  map[string]map[string]string
}

func (f *fakeHosts) snapshot() (map[string][]string, map[string]map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.comments, f.updates
}

func newFakeHosts(
	t *testing.T,
	prs string,
	diffs map[string]int,
	answers map[string]string,
) (*httptest.Server, *fakeHosts) {
	t.Helper()

	f := &fakeHosts{comments: map[string][]string{}, updates: map[string]map[string]string{}}

	const prefix = "/2.0/repositories/acme/backend/pullrequests"

	router := chi.NewRouter()
	router.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, prs)
	})
	router.Get(prefix+"/{id}/diff", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if status, ok := diffs[id]; ok && status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = io.WriteString(w, "diff-"+id)
	})
	router.Post(prefix+"/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content struct {
				Raw string `json:"raw"`
			} `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.comments[chi.URLParam(r, "id")] = append(f.comments[chi.URLParam(r, "id")], body.Content.Raw)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	})
	router.Put(prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.updates[chi.URLParam(r, "id")] = body
		f.mu.Unlock()

		_, _ = io.WriteString(w, `{}`)
	})
	router.Post("/v1beta/*", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		answer := ""
		for diff, a := range answers {
			if strings.Contains(string(raw), diff) {
				answer = a
			}
		}

		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": answer}},
					},
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, f
}

func testConfig(srv *httptest.Server) *config.Config {
	return &config.Config{
		Env: envProd,
		BitbucketConfig: config.BitbucketConfig{
			BaseURL:     srv.URL + "/2.0",
			Username:    "bot",
			AppPassword: "secret",
			Workspace:   "acme",
			RepoSlug:    "backend",
		},
		AssistantConfig: config.AssistantConfig{
			APIKey:  "key",
			Model:   "gemini-2.5-flash",
			BaseURL: srv.URL,
		},
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) error {
	t.Helper()

	cmd := newRootCmd(cfg, discardLogger())
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	return cmd.ExecuteContext(context.Background())
}

func TestRootCmd_ReviewsEveryOpenPullRequest(t *testing.T) {
	prs := `{"values":[` +
		`{"id":1,"title":"PR one","description":"first","state":"OPEN"},` +
		`{"id":2,"title":"PR two","description":"second","state":"OPEN"}]}`

	srv, f := newFakeHosts(t, prs, nil, map[string]string{
		"diff-1": "Issue A\nIssue B\n",
		"diff-2": "",
	})

	require.NoError(t, execute(t, testConfig(srv)))

	comments, updates := f.snapshot()
	require.Equal(t, []string{"Issue A", "Issue B"}, comments["1"])
	require.Empty(t, comments["2"])
	require.Equal(t, map[string]string{"title": "PR one", "description": "first", "state": "OPEN"}, updates["1"])
	require.Equal(t, map[string]string{"title": "PR two", "description": "second", "state": "OPEN"}, updates["2"])
}

func TestRootCmd_DiffFailureAbortsRun(t *testing.T) {
	prs := `{"values":[{"id":1,"title":"PR one","description":"","state":"OPEN"}]}`

	srv, f := newFakeHosts(t, prs, map[string]int{"1": http.StatusNotFound}, nil)

	err := execute(t, testConfig(srv))
	require.ErrorIs(t, err, bitbucket.ErrNotFound)

	comments, updates := f.snapshot()
	require.Empty(t, comments)
	require.Empty(t, updates)
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	srv, _ := newFakeHosts(t, `{"values":[]}`, nil, nil)

	err := execute(t, testConfig(srv), "extra")
	require.Error(t, err)
}

func TestRootCmd_EmptyListNeedsNoAssistantKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	srv, f := newFakeHosts(t, `{"values":[]}`, nil, nil)

	cfg := testConfig(srv)
	cfg.AssistantConfig.APIKey = ""

	require.NoError(t, execute(t, cfg))

	comments, updates := f.snapshot()
	require.Empty(t, comments)
	require.Empty(t, updates)
}

func TestRun_ExitCode(t *testing.T) {
	type testCase struct {
		name     string
		prs      string
		diffs    map[string]int
		args     []string
		wantCode int
		wantLog  []string
	}

	cases := []testCase{
		{
			name:     "Success",
			prs:      `{"values":[{"id":1,"title":"PR one","description":"","state":"OPEN"}]}`,
			wantCode: 0,
		},
		{
			name:     "Diff not found",
			prs:      `{"values":[{"id":1,"title":"PR one","description":"","state":"OPEN"}]}`,
			diffs:    map[string]int{"1": http.StatusNotFound},
			wantCode: 1,
			wantLog:  []string{`"level":"ERROR"`, `"msg":"review run failed"`, "not found"},
		},
		{
			name:     "Unexpected argument",
			prs:      `{"values":[]}`,
			args:     []string{"extra"},
			wantCode: 1,
			wantLog:  []string{`"level":"ERROR"`, `"msg":"review run failed"`},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newFakeHosts(t, tc.prs, tc.diffs, map[string]string{"diff-1": ""})

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			args := tc.args
			if args == nil {
				args = []string{}
			}

			code := run(context.Background(), testConfig(srv), log, args)
			require.Equal(t, tc.wantCode, code)

			for _, want := range tc.wantLog {
				require.Contains(t, buf.String(), want)
			}
			if tc.wantCode == 0 {
				require.NotContains(t, buf.String(), `"level":"ERROR"`)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "unknown"} {
		require.NotNil(t, setupLogger(env), env)
	}
}
