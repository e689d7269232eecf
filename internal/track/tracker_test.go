package track

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"internwatch/internal/domain"
)

func posting(id string) domain.ClassifiedPosting {
	return domain.ClassifiedPosting{
		RawPosting: domain.RawPosting{Title: "Software Intern", CompanyName: "Acme"},
		ID:         id,
	}
}

func TestFilterNewAgainstPersistedSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	first.Add("aaa")
	if err := first.Flush(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	fresh := second.FilterNew([]domain.ClassifiedPosting{posting("aaa"), posting("bbb")})
	if len(fresh) != 1 || fresh[0].ID != "bbb" {
		t.Fatalf("fresh = %v, want exactly bbb", fresh)
	}
	if err := second.Flush(); err != nil {
		t.Fatal(err)
	}

	third, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if !third.Contains("aaa") || !third.Contains("bbb") {
		t.Fatal("flushed set missing an id")
	}
}

func TestFilterNewDedupsWithinRun(t *testing.T) {
	tr, err := Open(filepath.Join(t.TempDir(), "seen_jobs.json"))
	if err != nil {
		t.Fatal(err)
	}

	fresh := tr.FilterNew([]domain.ClassifiedPosting{posting("x"), posting("x"), posting("y")})
	if len(fresh) != 2 {
		t.Fatalf("got %d fresh postings, want 2", len(fresh))
	}
	if again := tr.FilterNew([]domain.ClassifiedPosting{posting("y")}); len(again) != 0 {
		t.Fatalf("second FilterNew returned %v, want none", again)
	}
}

func TestFilterNewSkipsEmptyID(t *testing.T) {
	tr, err := Open(filepath.Join(t.TempDir(), "seen_jobs.json"))
	if err != nil {
		t.Fatal(err)
	}
	if fresh := tr.FilterNew([]domain.ClassifiedPosting{posting("")}); len(fresh) != 0 {
		t.Fatalf("posting with empty identity passed the filter: %v", fresh)
	}
}

func TestCorruptFileStartsOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := Open(path)
	if err != nil {
		t.Fatalf("Open on corrupt file: %v", err)
	}
	if tr.Contains("anything") {
		t.Fatal("corrupt file produced a non-empty seen set")
	}
}

func TestFlushWritesSortedWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")
	tr, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	tr.Add("zz")
	tr.Add("aa")
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var f struct {
		SeenJobIDs  []string `json:"seen_job_ids"`
		LastUpdated string   `json:"last_updated"`
	}
	if err := json.Unmarshal(b, &f); err != nil {
		t.Fatal(err)
	}
	if len(f.SeenJobIDs) != 2 || f.SeenJobIDs[0] != "aa" || f.SeenJobIDs[1] != "zz" {
		t.Fatalf("seen_job_ids = %v, want sorted [aa zz]", f.SeenJobIDs)
	}
	if f.LastUpdated == "" {
		t.Fatal("last_updated not set")
	}
}

func TestFlushMergesConcurrentWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")

	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	a.Add("from-a")
	if err := a.Flush(); err != nil {
		t.Fatal(err)
	}

	b.Add("from-b")
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	final, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if !final.Contains("from-a") || !final.Contains("from-b") {
		t.Fatal("merge on flush lost an id")
	}
}
