package crontab_test

import (
	"testing"

	"github.com/glizzus/watchme/internal/crontab"
)

const existing = `# Edit this file to introduce tasks to be run by cron.
SHELL=/bin/sh

30 2 * * * /usr/bin/backup # backup
12 0 * * * watchme run a # watchme-a
0 * * * * watchme run b # watchme-b
`

func openSeeded(t *testing.T, data string) (*crontab.MemoryStore, *crontab.Tab) {
	t.Helper()
	store := crontab.NewMemoryStore()
	if err := store.Write(t.Context(), "", []byte(data)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	tab, err := crontab.Open(t.Context(), store, "")
	if err != nil {
		t.Fatalf("failed to open crontab: %v", err)
	}
	return store, tab
}

func TestTabPreservesUnrelatedLines(t *testing.T) {
	_, tab := openSeeded(t, existing)

	if got := tab.String(); got != existing {
		t.Errorf("String() = %q; want %q", got, existing)
	}
	if got := len(tab.Entries()); got != 3 {
		t.Errorf("len(Entries()) = %d; want 3", got)
	}
}

func TestTabFindComment(t *testing.T) {
	_, tab := openSeeded(t, existing)

	found := tab.FindComment("watchme-a")
	if len(found) != 1 || found[0].Command != "watchme run a" {
		t.Fatalf("FindComment(watchme-a) = %+v", found)
	}

	if found := tab.FindComment("watchme-"); len(found) != 0 {
		t.Errorf("FindComment must match exactly, got %+v", found)
	}
}

func TestTabFindCommentPrefix(t *testing.T) {
	_, tab := openSeeded(t, existing+"0 3 * * * watchme run a/b # watchme-a/b\n5 0 * * * /opt/watchmen # watchmen\n")

	found := tab.FindCommentPrefix("watchme-")
	var comments []string
	for _, e := range found {
		comments = append(comments, e.Comment)
	}
	want := []string{"watchme-a", "watchme-b", "watchme-a/b"}
	if len(comments) != len(want) {
		t.Fatalf("FindCommentPrefix(watchme-) = %v; want %v", comments, want)
	}
	for i := range want {
		if comments[i] != want[i] {
			t.Errorf("FindCommentPrefix(watchme-)[%d] = %q; want %q", i, comments[i], want[i])
		}
	}
}

func TestTabNewAndWrite(t *testing.T) {
	store, tab := openSeeded(t, "")

	entry := tab.New("watchme run site1", "watchme-site1")
	entry.SetAll("12", "0", "*", "*", "*")
	if err := tab.Write(t.Context()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, _ := store.Read(t.Context(), "")
	if got, want := string(data), "12 0 * * * watchme run site1 # watchme-site1\n"; got != want {
		t.Errorf("stored crontab = %q; want %q", got, want)
	}
}

func TestTabAddIgnoresDuplicates(t *testing.T) {
	_, tab := openSeeded(t, existing)

	entry := tab.FindComment("watchme-a")[0]
	tab.Add(entry)
	if got := len(tab.FindComment("watchme-a")); got != 1 {
		t.Errorf("len(FindComment) after re-adding = %d; want 1", got)
	}
}

func TestTabRemoveFlushes(t *testing.T) {
	store, tab := openSeeded(t, existing)

	removed, err := tab.Remove(t.Context(), tab.FindComment("watchme-a")...)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Remove() = %d; want 1", removed)
	}

	reopened, err := crontab.Open(t.Context(), store, "")
	if err != nil {
		t.Fatalf("failed to reopen crontab: %v", err)
	}
	if found := reopened.FindComment("watchme-a"); len(found) != 0 {
		t.Errorf("entry still present after Remove: %+v", found)
	}
	if found := reopened.FindComment("backup"); len(found) != 1 {
		t.Errorf("unrelated entry lost after Remove")
	}
}

func TestTabRemoveAll(t *testing.T) {
	store, tab := openSeeded(t, existing)

	removed, err := tab.RemoveAll(t.Context(), "watchme-")
	if err != nil {
		t.Fatalf("RemoveAll returned error: %v", err)
	}
	if removed != 2 {
		t.Errorf("RemoveAll() = %d; want 2", removed)
	}

	data, _ := store.Read(t.Context(), "")
	want := "# Edit this file to introduce tasks to be run by cron.\nSHELL=/bin/sh\n\n30 2 * * * /usr/bin/backup # backup\n"
	if string(data) != want {
		t.Errorf("stored crontab = %q; want %q", data, want)
	}
}

func TestTabWritesUntouchedLinesVerbatim(t *testing.T) {
	foreign := "0 0 * * * echo \"issue #42\" > /tmp/log\n" +
		"15\t4\t*\t*\t*\t/usr/bin/report\t--daily\n" +
		"0 5 * * * /usr/bin/sync #cmt\n" +
		"#0 6 * * * /usr/bin/paused\n" +
		"## 0 7 * * * /usr/bin/archived\n"
	store, tab := openSeeded(t, foreign)

	entry := tab.New("watchme run s", "watchme-s")
	entry.SetAll("12", "0", "*", "*", "*")
	if err := tab.Write(t.Context()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, _ := store.Read(t.Context(), "")
	want := foreign + "12 0 * * * watchme run s # watchme-s\n"
	if string(data) != want {
		t.Errorf("stored crontab = %q; want %q", data, want)
	}
}

func TestTabRendersMutatedEntries(t *testing.T) {
	store, tab := openSeeded(t, "12\t0 * * * watchme run s   # watchme-s\n")

	entry := tab.FindComment("watchme-s")[0]
	entry.SetAll("30", "6", "*", "*", "*")
	if err := tab.Write(t.Context()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, _ := store.Read(t.Context(), "")
	if got, want := string(data), "30 6 * * * watchme run s # watchme-s\n"; got != want {
		t.Errorf("stored crontab = %q; want %q", got, want)
	}

	entry.Disable()
	if err := tab.Write(t.Context()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, _ = store.Read(t.Context(), "")
	if got, want := string(data), "# 30 6 * * * watchme run s # watchme-s\n"; got != want {
		t.Errorf("stored crontab = %q; want %q", got, want)
	}
}
