/*
main.go - Terminal client for the HR list views

PURPOSE:
  Renders any registered view against a running backend. Useful for smoke
  testing the backend and for scripted CSV pulls without the web client.

USAGE:
  # Render the claims table as HTML
  hrview -view claims -user hr.admin -pass hunter2

  # Filter and export the roster to CSV
  hrview -view employees -filter status=Active -csv -out roster.csv

  # List available views
  hrview -list

FLAGS:
  -base     Backend base URL (default http://localhost:8080/api)
  -view     View name to render
  -list     Print registered view names and exit
  -user     Login username (obtains a token via /api/login)
  -pass     Login password
  -token    Pre-issued bearer token (skips login)
  -filter   key=value filter, repeatable
  -search   Search term
  -csv      Export CSV instead of rendering HTML
  -out      Output file (default stdout)
  -yes      Auto-confirm prompts (needed for delete/purge actions)
  -action   Row action to run, as action:id (e.g. delete:e-2)

SEE ALSO:
  - listview/controller.go: The engine this drives
  - api/server.go: The backend it talks to
*/
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "github.com/carelink/hrview/employees"
	_ "github.com/carelink/hrview/hmo"
	"github.com/carelink/hrview/listview"
	_ "github.com/carelink/hrview/notifications"
	_ "github.com/carelink/hrview/payroll"
)

// multiFlag collects repeated -filter values.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// termHost adapts the terminal to the controller's host surface.
type termHost struct {
	log     *logrus.Logger
	out     *bytes.Buffer
	autoYes bool
}

func (h *termHost) SetContent(html template.HTML) {
	h.out.Reset()
	h.out.WriteString(string(html))
}

func (h *termHost) Notify(level listview.NotifyLevel, msg string) {
	switch level {
	case listview.NotifyError:
		h.log.Error(msg)
	case listview.NotifyWarning:
		h.log.Warn(msg)
	default:
		h.log.Info(msg)
	}
}

func (h *termHost) Confirm(msg string) bool {
	if h.autoYes {
		return true
	}
	h.log.Warnf("%s (re-run with -yes to confirm)", msg)
	return false
}

func (h *termHost) RedirectToLogin() {
	h.log.Error("session expired, log in again")
}

func main() {
	_ = godotenv.Load()

	var filters multiFlag
	base := flag.String("base", "http://localhost:8080/api", "backend base URL")
	view := flag.String("view", "", "view name to render")
	list := flag.Bool("list", false, "list registered views")
	user := flag.String("user", os.Getenv("HRVIEW_USER"), "login username")
	pass := flag.String("pass", os.Getenv("HRVIEW_PASS"), "login password")
	token := flag.String("token", os.Getenv("HRVIEW_TOKEN"), "bearer token")
	search := flag.String("search", "", "search term")
	csvOut := flag.Bool("csv", false, "export CSV instead of HTML")
	outPath := flag.String("out", "", "output file (default stdout)")
	yes := flag.Bool("yes", false, "auto-confirm prompts")
	action := flag.String("action", "", "row action as action:id")
	flag.Var(&filters, "filter", "key=value filter, repeatable")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if *list {
		for _, name := range listview.ViewNames() {
			fmt.Println(name)
		}
		return
	}
	if *view == "" {
		log.Fatal("missing -view (use -list to see available views)")
	}

	bearer := *token
	if bearer == "" && *user != "" {
		t, err := login(*base, *user, *pass)
		if err != nil {
			log.WithError(err).Fatal("login failed")
		}
		bearer = t
	}

	gw := listview.NewGateway(*base,
		listview.WithTokenSource(func() string { return bearer }))

	host := &termHost{log: log, out: &bytes.Buffer{}, autoYes: *yes}
	ctrl, err := listview.BuildView(*view, gw, host)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctrl.Display(ctx); err != nil {
		log.WithError(err).Fatal("failed to load view")
	}

	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			log.Fatalf("bad -filter %q, expected key=value", f)
		}
		if err := ctrl.SetFilter(key, value); err != nil {
			log.Fatal(err)
		}
	}
	if *search != "" {
		// Flush so the search lands before output is captured; without it
		// the debounced filter would fire after (or never, on exit).
		ctrl.Search(*search)
		ctrl.FlushSearch()
	}

	if *action != "" {
		name, id, ok := strings.Cut(*action, ":")
		if !ok {
			log.Fatalf("bad -action %q, expected action:id", *action)
		}
		if err := ctrl.HandleAction(ctx, name, id); err != nil {
			log.WithError(err).Fatal("action failed")
		}
	}

	var data []byte
	if *csvOut {
		dl, err := ctrl.ExportCSV()
		if err != nil {
			log.WithError(err).Fatal("export failed")
		}
		data = dl.Data
		if *outPath == "" {
			*outPath = dl.Filename
		}
	} else {
		data = host.out.Bytes()
	}

	if *outPath == "" || *outPath == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.WithError(err).Fatal("failed to write output")
	}
	log.WithField("path", *outPath).Info("written")
}

// login obtains a bearer token from the backend.
func login(base, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := http.Post(strings.TrimSuffix(base, "/")+"/login",
		"application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if !decoded.Success {
		if decoded.Message != "" {
			return "", fmt.Errorf("login rejected: %s", decoded.Message)
		}
		return "", fmt.Errorf("login rejected (HTTP %d)", resp.StatusCode)
	}
	return decoded.Data.Token, nil
}
