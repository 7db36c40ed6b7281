package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/salesqueen/internal/config"
	"github.com/nao1215/salesqueen/internal/export"
	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/project"
)

const testConfig = `storage:
  backend: sqlite
pricing:
  strategy: catalog
geo:
  provider: mock
report:
  format: text
`

// cli runs commands against a project stored in its own temporary directory.
type cli struct {
	t      *testing.T
	dir    string
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte(testConfig), 0600); err != nil {
		t.Fatal(err)
	}
	return &cli{t: t, dir: dir, config: path}
}

// run executes args and returns stdout and stderr.
func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	return c.runWithInput("", args...)
}

func (c *cli) runWithInput(input string, args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", c.config, "--data-dir", c.dir}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun executes args and fails the test on error.
func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, stderr, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%s: unexpected error: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func TestEstimateCmd(t *testing.T) {
	t.Parallel()

	t.Run("prices the selection and warns over budget", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out := c.mustRun("estimate", "--type", "business", "--add", "cms,payments", "--budget", "30000")
		if !strings.Contains(out, "₹43,660") {
			t.Errorf("expected total ₹43,660:\n%s", out)
		}
		if !strings.Contains(out, "exceed your budget by ₹13,660") {
			t.Errorf("expected budget warning:\n%s", out)
		}
	})

	t.Run("selection is saved between runs", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("estimate", "--type", "portfolio", "--timeline", "flex")
		out := c.mustRun("estimate")
		// 15000 * 0.9 = 13500, plus 18% GST = 15930
		if !strings.Contains(out, "₹15,930") {
			t.Errorf("expected saved total ₹15,930:\n%s", out)
		}
	})

	t.Run("removing a feature", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("estimate", "--type", "blog", "--add", "cms")
		out := c.mustRun("estimate", "--remove", "cms", "--format", "json")

		var b struct {
			Total int64 `json:"total"`
		}
		if err := json.Unmarshal([]byte(out), &b); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if b.Total != 23600 {
			t.Errorf("expected total 23600, got %d", b.Total)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, _, err := c.run("estimate", "--type", "spaceship")
		if !errors.Is(err, project.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("asks for a type when none is selected", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, stderr, err := c.run("estimate")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, notify.MsgSelectType) {
			t.Errorf("expected %q, got stderr:\n%s", notify.MsgSelectType, stderr)
		}
	})

	t.Run("lists the catalog", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out := c.mustRun("estimate", "--list")
		for _, want := range []string{"ecommerce", "₹50,000", "chatbot", "rush"} {
			if !strings.Contains(out, want) {
				t.Errorf("catalog missing %q:\n%s", want, out)
			}
		}
	})
}

func TestQuoteCmd(t *testing.T) {
	t.Parallel()

	t.Run("submits the page quote", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out := c.mustRun("quote", "--pages", "5", "--ecommerce", "basic", "--seo", "plus", "--weeks", "3")
		if !strings.Contains(out, "$3,563") {
			t.Errorf("expected total $3,563:\n%s", out)
		}

		progress := c.mustRun("progress")
		if !strings.Contains(progress, "quote   complete") {
			t.Errorf("expected quote stage complete:\n%s", progress)
		}
	})

	t.Run("keeps saved values for omitted flags", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("quote", "--pages", "5", "--ecommerce", "basic", "--seo", "plus", "--weeks", "3")
		out := c.mustRun("quote", "--maintenance")
		if !strings.Contains(out, "$3,563") {
			t.Errorf("expected unchanged total $3,563:\n%s", out)
		}
		if !strings.Contains(out, "$120") {
			t.Errorf("expected monthly maintenance:\n%s", out)
		}
	})

	t.Run("rejects an invalid form", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, _, err := c.run("quote", "--pages", "0", "--weeks", "2")
		if !errors.Is(err, project.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestProgressCmd(t *testing.T) {
	t.Parallel()
	c := newCLI(t)

	out := c.mustRun("progress")
	if !strings.Contains(out, "Overall: 0%") {
		t.Errorf("expected 0%% on a new project:\n%s", out)
	}

	out = c.mustRun("progress", "set", "design", "in-progress")
	// in-progress counts half of one of three stages
	if !strings.Contains(out, "Overall: 17%") {
		t.Errorf("expected 17%%:\n%s", out)
	}

	if _, _, err := c.run("progress", "set", "launch", "complete"); err == nil {
		t.Error("expected error for unknown stage")
	}
	if _, _, err := c.run("progress", "set", "lead", "done"); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestLeadCmd(t *testing.T) {
	t.Parallel()

	t.Run("captures and merges fields", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("lead", "set", "--business-name", "  Acme Bakery  ", "--email", "owner@acme.test")
		out := c.mustRun("lead", "set", "--phone", "+91 98765 43210")

		for _, want := range []string{"Acme Bakery", "owner@acme.test", "+91 98765 43210"} {
			if !strings.Contains(out, want) {
				t.Errorf("lead missing %q:\n%s", want, out)
			}
		}
		if !strings.Contains(out, "Acme Bakery\n") {
			t.Errorf("value was not trimmed:\n%s", out)
		}
	})

	t.Run("rejects an invalid lead", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, _, err := c.run("lead", "set", "--business-name", "Acme", "--email", "not-an-email")
		if !errors.Is(err, project.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		out := c.mustRun("lead")
		if strings.Contains(out, "Acme") {
			t.Errorf("rejected lead was saved:\n%s", out)
		}
	})

	t.Run("requires a field", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		if _, _, err := c.run("lead", "set"); err == nil {
			t.Error("expected error without fields")
		}
	})
}

func TestFindCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists and claims a business", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out, stderr, err := c.run("find", "Pune", "--industry", "bakery", "--claim", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "1. Sunrise Bakery") {
			t.Errorf("expected bakery result:\n%s", out)
		}
		if !strings.Contains(stderr, notify.MsgBusinessClaimed) {
			t.Errorf("expected claim notice, got stderr:\n%s", stderr)
		}

		lead := c.mustRun("lead")
		if !strings.Contains(lead, "Sunrise Bakery") || !strings.Contains(lead, "Market Road") {
			t.Errorf("claimed business not captured:\n%s", lead)
		}
	})

	t.Run("repeats the last query", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("find", "Mumbai")
		out := c.mustRun("find", "--format", "json")

		var res struct {
			Query  string        `json:"query"`
			Places []model.Place `json:"places"`
		}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if res.Query != "Mumbai" {
			t.Errorf("expected query Mumbai, got %q", res.Query)
		}
		if len(res.Places) == 0 {
			t.Error("expected places")
		}
	})

	t.Run("refers a business", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, stderr, err := c.run("find", "Delhi", "--refer", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, notify.MsgReferral) {
			t.Errorf("expected referral notice, got stderr:\n%s", stderr)
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, stderr, err := c.run("find", "Atlantis")
		if !errors.Is(err, geo.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if !strings.Contains(stderr, notify.MsgLocationMissing) {
			t.Errorf("expected location notice, got stderr:\n%s", stderr)
		}
	})

	t.Run("claim out of range", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		if _, _, err := c.run("find", "Pune", "--industry", "bakery", "--claim", "5"); err == nil {
			t.Error("expected error for missing result")
		}
	})

	t.Run("watch searches the settled query", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out, _, err := c.runWithInput("Pu\nPun\nPune\n", "find", "--watch")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Near Pune") {
			t.Errorf("expected Pune results:\n%s", out)
		}
	})
}

func TestDesignCmd(t *testing.T) {
	t.Parallel()
	c := newCLI(t)

	c.mustRun("design", "add", "hero")
	c.mustRun("design", "add", "features")
	out := c.mustRun("design", "add", "cta", "--at", "1")

	iCTA := strings.Index(out, "Call to Action")
	iHero := strings.Index(out, "Hero Banner")
	iFeatures := strings.Index(out, "Features")
	if iCTA < 0 || iHero < 0 || iFeatures < 0 || !(iCTA < iHero && iHero < iFeatures) {
		t.Errorf("expected order cta, hero, features:\n%s", out)
	}

	c.mustRun("design", "move", "1", "3")
	c.mustRun("design", "style", "1", "padding:2rem")
	out, _, err := c.runWithInput("<h3>Fresh bread daily</h3>", "design", "edit", "1", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Fresh bread daily") || !strings.Contains(out, "padding:2rem") {
		t.Errorf("expected edited and styled block:\n%s", out)
	}

	out = c.mustRun("design", "remove", "3")
	if strings.Contains(out, "Call to Action") {
		t.Errorf("expected cta removed:\n%s", out)
	}

	if _, _, err := c.run("design", "remove", "9"); !errors.Is(err, project.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, _, err := c.run("design", "move", "0", "1"); err == nil {
		t.Error("expected error for position 0")
	}
}

func TestProjectCmd(t *testing.T) {
	t.Parallel()

	t.Run("show and export", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("lead", "set", "--business-name", "Acme", "--email", "owner@acme.test")
		c.mustRun("estimate", "--type", "business")
		c.mustRun("design", "add", "hero")

		out := c.mustRun("project", "show", "--format", "markdown")
		if !strings.Contains(out, "# SalesQueen Proposal for Acme") {
			t.Errorf("expected markdown title:\n%s", out)
		}

		out = c.mustRun("project", "export", "--section", "lead")
		var l model.Lead
		if err := json.Unmarshal([]byte(out), &l); err != nil {
			t.Fatalf("lead export is not JSON: %v\n%s", err, out)
		}
		if l.BusinessName != "Acme" {
			t.Errorf("expected Acme, got %q", l.BusinessName)
		}

		dir := t.TempDir()
		c.mustRun("project", "export", "-o", dir)
		data, err := os.ReadFile(filepath.Join(dir, export.ProjectFileName))
		if err != nil {
			t.Fatalf("expected %s: %v", export.ProjectFileName, err)
		}
		var doc model.Project
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("project export is not JSON: %v", err)
		}
		if doc.Estimate == nil || doc.Estimate.Type != "business" {
			t.Errorf("expected estimate section, got %+v", doc.Estimate)
		}

		out = c.mustRun("project", "export", "--format", "html")
		if !strings.Contains(out, `data-type="hero"`) {
			t.Errorf("expected hero section in html:\n%s", out)
		}
	})

	t.Run("pdf is not supported", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		_, stderr, err := c.run("project", "export", "--format", "pdf")
		if !errors.Is(err, export.ErrPDFNotSupported) {
			t.Errorf("expected ErrPDFNotSupported, got %v", err)
		}
		if !strings.Contains(stderr, "Print to PDF") {
			t.Errorf("expected print hint, got stderr:\n%s", stderr)
		}
	})

	t.Run("email link uses the lead address", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("lead", "set", "--business-name", "Acme", "--email", "owner@acme.test")
		c.mustRun("estimate", "--type", "portfolio")
		out := c.mustRun("project", "email")
		if !strings.HasPrefix(out, "mailto:owner@acme.test?subject=SalesQueen%20Quote&body=") {
			t.Errorf("unexpected link: %s", out)
		}
		if !strings.Contains(out, "Total%3A%20%E2%82%B917%2C700") {
			t.Errorf("expected escaped total in link: %s", out)
		}
	})

	t.Run("share", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		out, stderr, err := c.run("project", "share")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, export.ShareTitle) && !strings.Contains(stderr, notify.MsgCopied) {
			t.Errorf("expected printed or copied summary, got stdout %q stderr %q", out, stderr)
		}
	})

	t.Run("history and checkout", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("estimate", "--type", "blog")
		c.mustRun("design", "add", "hero")

		out := c.mustRun("project", "history")
		if !strings.Contains(out, "REVISION") {
			t.Fatalf("expected revision table:\n%s", out)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) < 3 {
			t.Fatalf("expected at least two revisions:\n%s", out)
		}
		oldest := strings.Fields(lines[len(lines)-1])[0]

		out = c.mustRun("project", "checkout", oldest)
		if !strings.Contains(out, "Restored revision "+oldest) {
			t.Errorf("unexpected checkout output: %s", out)
		}
		if blocks := c.mustRun("design"); !strings.Contains(blocks, "No blocks yet") {
			t.Errorf("expected the design added later to be gone:\n%s", blocks)
		}

		if _, _, err := c.run("project", "checkout", "no-such-revision"); err == nil {
			t.Error("expected error for unknown revision")
		}
	})

	t.Run("clear starts over", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("estimate", "--type", "blog")
		_, stderr, err := c.run("project", "clear")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, notify.MsgCleared) {
			t.Errorf("expected clear notice, got stderr:\n%s", stderr)
		}
		if out := c.mustRun("progress"); !strings.Contains(out, "Overall: 0%") {
			t.Errorf("expected a fresh project:\n%s", out)
		}
	})
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	t.Run("ephemeral does not save", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		c.mustRun("--ephemeral", "estimate", "--type", "blog")
		if out := c.mustRun("progress"); !strings.Contains(out, "Overall: 0%") {
			t.Errorf("ephemeral change was saved:\n%s", out)
		}
	})

	t.Run("missing explicit config", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "progress"})
		if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid storage", func(t *testing.T) {
		t.Parallel()
		c := newCLI(t)

		if _, _, err := c.run("--storage", "floppy", "progress"); !errors.Is(err, config.ErrInvalidStorage) {
			t.Errorf("expected ErrInvalidStorage, got %v", err)
		}
	})
}
